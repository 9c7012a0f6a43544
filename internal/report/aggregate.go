package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// FrequencyCount is one name's occurrence count. Aggregation keeps entries in
// first-occurrence order, which is also the tie-break order for ranking.
type FrequencyCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ShiftTotals accumulates sales value and transaction count for one shift.
type ShiftTotals struct {
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

func (s *ShiftTotals) add(price decimal.Decimal) {
	s.Total = s.Total.Add(price)
	s.Count++
}

// Aggregation holds the four sales dimensions computed in a single pass:
// overall paid total, service frequency, customer frequency and per-shift
// totals. Skipped counts malformed records excluded from every dimension.
type Aggregation struct {
	Total     decimal.Decimal  `json:"total"`
	Services  []FrequencyCount `json:"services"`
	Customers []FrequencyCount `json:"customers"`
	Shift1    ShiftTotals      `json:"shift1"`
	Shift2    ShiftTotals      `json:"shift2"`
	Skipped   int              `json:"skipped_records"`
}

// Aggregate folds paid records within rng into keyed totals. The input is
// never mutated. Blank service or customer names are excluded from their
// frequency dimension. An open range (zero bounds) covers all records.
func Aggregate(records []PaymentRecord, rng DateRange, loc *time.Location) Aggregation {
	agg := Aggregation{
		Total:  decimal.Zero,
		Shift1: ShiftTotals{Total: decimal.Zero},
		Shift2: ShiftTotals{Total: decimal.Zero},
	}
	serviceIdx := make(map[string]int)
	customerIdx := make(map[string]int)

	for _, rec := range records {
		if !rec.Paid {
			continue
		}
		price, ok := rec.wellFormed()
		if !ok {
			agg.Skipped++
			continue
		}
		t := time.Unix(rec.CreatedAt, 0)
		if !rng.Contains(t, loc) {
			continue
		}

		agg.Total = agg.Total.Add(price)
		if rec.ServiceName != "" {
			bump(serviceIdx, &agg.Services, rec.ServiceName)
		}
		if rec.CustomerName != "" {
			bump(customerIdx, &agg.Customers, rec.CustomerName)
		}
		switch ClassifyShift(t, loc) {
		case Shift1:
			agg.Shift1.add(price)
		case Shift2:
			agg.Shift2.add(price)
		}
	}
	return agg
}

func bump(index map[string]int, entries *[]FrequencyCount, name string) {
	if i, ok := index[name]; ok {
		(*entries)[i].Count++
		return
	}
	index[name] = len(*entries)
	*entries = append(*entries, FrequencyCount{Name: name, Count: 1})
}
