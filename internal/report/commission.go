package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeCommission accumulates one employee's earnings over the records in
// scope. Total is always Labor + Referrer. Transactions counts credited
// entries, so an employee appearing as both worker and referrer on the same
// payment is counted twice.
type EmployeeCommission struct {
	EmployeeID   string          `json:"employee_id"`
	Name         string          `json:"name"`
	Labor        decimal.Decimal `json:"labor"`
	Referrer     decimal.Decimal `json:"referrer"`
	Total        decimal.Decimal `json:"total"`
	Transactions int             `json:"transactions"`
}

// CommissionLedger is the output of SplitCommissions. Entries appear in the
// order their employee was first credited; employees with no activity in
// scope never appear.
type CommissionLedger struct {
	Entries []EmployeeCommission `json:"entries"`
	Skipped int                  `json:"skipped_records"`
}

// SplitCommissions folds paid records within rng into per-employee commission
// credit. Employees are keyed by their stable identifier, not display name;
// the stored name comes from the first record referencing that identifier.
// Shares with unparsable amounts are skipped, never credited as zero.
func SplitCommissions(records []PaymentRecord, rng DateRange, loc *time.Location) CommissionLedger {
	var ledger CommissionLedger
	index := make(map[string]int)

	credit := func(id, name string, amount decimal.Decimal, referral bool) {
		i, ok := index[id]
		if !ok {
			i = len(ledger.Entries)
			index[id] = i
			ledger.Entries = append(ledger.Entries, EmployeeCommission{
				EmployeeID: id,
				Name:       name,
				Labor:      decimal.Zero,
				Referrer:   decimal.Zero,
				Total:      decimal.Zero,
			})
		}
		entry := &ledger.Entries[i]
		if referral {
			entry.Referrer = entry.Referrer.Add(amount)
		} else {
			entry.Labor = entry.Labor.Add(amount)
		}
		entry.Total = entry.Total.Add(amount)
		entry.Transactions++
	}

	for _, rec := range records {
		if !rec.Paid {
			continue
		}
		if _, ok := rec.wellFormed(); !ok {
			ledger.Skipped++
			continue
		}
		if !rng.Contains(time.Unix(rec.CreatedAt, 0), loc) {
			continue
		}
		for _, share := range rec.EmployeeShares {
			if share.EmployeeID == "" {
				continue
			}
			amount, err := decimal.NewFromString(share.Commission)
			if err != nil {
				continue
			}
			credit(share.EmployeeID, share.EmployeeName, amount, false)
		}
		if ref := rec.ReferrerShare; ref != nil && ref.EmployeeID != "" {
			amount, err := decimal.NewFromString(ref.Commission)
			if err != nil {
				continue
			}
			credit(ref.EmployeeID, ref.EmployeeName, amount, true)
		}
	}
	return ledger
}
