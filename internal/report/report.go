package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidRange is returned when a reporting range is missing a bound or
// has its start after its end. No partial report is produced.
var ErrInvalidRange = errors.New("invalid report date range")

// ReportLine is one detail row of a shift report, in original record order.
type ReportLine struct {
	TransactionID string          `json:"transaction_id"`
	Timestamp     time.Time       `json:"timestamp"`
	CustomerName  string          `json:"customer_name"`
	ServiceName   string          `json:"service_name"`
	Price         decimal.Decimal `json:"price"`
	CashierName   string          `json:"cashier_name"`
	PaymentMethod string          `json:"payment_method"`
}

// ReportSection is the detail listing for one shift. Placeholder is set
// instead of items when no records fall in the shift, so exporters always
// have something to emit.
type ReportSection struct {
	Shift       Shift        `json:"shift"`
	Label       string       `json:"label"`
	Items       []ReportLine `json:"items"`
	Placeholder string       `json:"placeholder,omitempty"`
}

// ReportSummary is the report's header section.
type ReportSummary struct {
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	Shift1        ShiftTotals     `json:"shift1"`
	Shift2        ShiftTotals     `json:"shift2"`
	CombinedTotal decimal.Decimal `json:"combined_total"`
}

// ShiftReport is the assembled report: a summary plus zero, one or two detail
// sections depending on the shift selection. It is a plain data structure
// with no knowledge of how it will be rendered or serialized.
type ShiftReport struct {
	Summary   ReportSummary   `json:"summary"`
	Selection ShiftSelection  `json:"selection"`
	Sections  []ReportSection `json:"sections"`
	Skipped   int             `json:"skipped_records,omitempty"`
}

// BuildShiftReport assembles a shift sales report over the snapshot. It
// validates the range before any aggregation runs and returns a wrapped
// ErrInvalidRange on failure. An empty result set is a valid report with zero
// totals and placeholder detail sections, not an error.
func BuildShiftReport(records []PaymentRecord, rng DateRange, sel ShiftSelection, loc *time.Location) (*ShiftReport, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	agg := Aggregate(records, rng, loc)
	rep := &ShiftReport{
		Summary: ReportSummary{
			StartDate:     rng.Start.Format(time.DateOnly),
			EndDate:       rng.End.Format(time.DateOnly),
			Shift1:        agg.Shift1,
			Shift2:        agg.Shift2,
			CombinedTotal: agg.Shift1.Total.Add(agg.Shift2.Total),
		},
		Selection: sel,
		Skipped:   agg.Skipped,
	}
	if sel == SelectAll || sel == SelectShift1 {
		rep.Sections = append(rep.Sections, buildSection(records, rng, Shift1, loc))
	}
	if sel == SelectAll || sel == SelectShift2 {
		rep.Sections = append(rep.Sections, buildSection(records, rng, Shift2, loc))
	}
	return rep, nil
}

func buildSection(records []PaymentRecord, rng DateRange, shift Shift, loc *time.Location) ReportSection {
	sec := ReportSection{
		Shift: shift,
		Label: fmt.Sprintf("%s Details", shift),
	}
	for _, rec := range records {
		if !rec.Paid {
			continue
		}
		price, ok := rec.wellFormed()
		if !ok {
			continue
		}
		t := time.Unix(rec.CreatedAt, 0).In(loc)
		if PartitionShift(t, rng, loc) != shift {
			continue
		}
		sec.Items = append(sec.Items, ReportLine{
			TransactionID: rec.ID,
			Timestamp:     t,
			CustomerName:  rec.CustomerName,
			ServiceName:   rec.ServiceName,
			Price:         price,
			CashierName:   rec.CashierName,
			PaymentMethod: rec.PaymentMethod,
		})
	}
	if len(sec.Items) == 0 {
		sec.Placeholder = fmt.Sprintf("No sales records for %s in this period.", shift)
	}
	return sec
}
