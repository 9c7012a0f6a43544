package report

import (
	"sort"
	"strings"
)

// DefaultTopN limits the dashboard's service and customer leaderboards.
const DefaultTopN = 3

// TopFrequencies returns the limit highest-count entries in descending order.
// The sort is stable, so ties keep the aggregation's first-occurrence order,
// and ranking an already ranked list returns it unchanged. limit <= 0 means
// unbounded.
func TopFrequencies(entries []FrequencyCount, limit int) []FrequencyCount {
	ranked := make([]FrequencyCount, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// FilterFrequencies keeps entries whose name contains query, matched
// case-insensitively. Filtering happens before ranking so a search narrows
// the candidate set rather than re-ranking a truncated list.
func FilterFrequencies(entries []FrequencyCount, query string) []FrequencyCount {
	if query == "" {
		return entries
	}
	q := strings.ToLower(query)
	var kept []FrequencyCount
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), q) {
			kept = append(kept, e)
		}
	}
	return kept
}

// RankCommissions orders entries by total earned, descending and stable.
// limit <= 0 returns the full list, which is what the commissions table uses.
func RankCommissions(entries []EmployeeCommission, limit int) []EmployeeCommission {
	ranked := make([]EmployeeCommission, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total.GreaterThan(ranked[j].Total)
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// FilterCommissions keeps entries whose display name contains query,
// case-insensitively, preserving order.
func FilterCommissions(entries []EmployeeCommission, query string) []EmployeeCommission {
	if query == "" {
		return entries
	}
	q := strings.ToLower(query)
	var kept []EmployeeCommission
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), q) {
			kept = append(kept, e)
		}
	}
	return kept
}
