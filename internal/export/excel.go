// Package export materializes assembled reports as downloadable artifacts.
// It only consumes the report package's data structures; the shape of a
// report never depends on the export format.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"washpoint-system/internal/report"
)

const (
	shift1WindowLabel = "Shift 1 (8 AM - 8 PM)"
	shift2WindowLabel = "Shift 2 (8 PM - 8 AM)"
)

// Filename derives the deterministic workbook download name from the
// report's date range.
func Filename(rep *report.ShiftReport) string {
	return fmt.Sprintf("Shift_Sales_Report_%s_to_%s.xlsx", rep.Summary.StartDate, rep.Summary.EndDate)
}

// ShiftReportWorkbook renders a shift report into an xlsx workbook: a
// Summary sheet always, plus one detail sheet per report section. Empty
// sections produce a sheet holding only the report's placeholder row.
func ShiftReportWorkbook(rep *report.ShiftReport) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return nil, err
	}

	summaryRows := [][]interface{}{
		{"Shift Sales Report Summary"},
		{fmt.Sprintf("Date Range: %s to %s", rep.Summary.StartDate, rep.Summary.EndDate)},
		{},
		{"Shift", "Total Sales", "Transactions"},
		{shift1WindowLabel, rep.Summary.Shift1.Total.StringFixed(2), rep.Summary.Shift1.Count},
		{shift2WindowLabel, rep.Summary.Shift2.Total.StringFixed(2), rep.Summary.Shift2.Count},
		{"Total Sales", rep.Summary.CombinedTotal.StringFixed(2), rep.Summary.Shift1.Count + rep.Summary.Shift2.Count},
	}
	if err := writeRows(f, "Summary", summaryRows); err != nil {
		return nil, err
	}

	for _, sec := range rep.Sections {
		if _, err := f.NewSheet(sec.Label); err != nil {
			return nil, err
		}
		if sec.Placeholder != "" {
			if err := writeRows(f, sec.Label, [][]interface{}{{sec.Placeholder}}); err != nil {
				return nil, err
			}
			continue
		}
		rows := [][]interface{}{
			{"Payment ID", "Date & Time", "Customer Name", "Service Name", "Price", "Cashier", "Payment Method"},
		}
		for _, item := range sec.Items {
			method := item.PaymentMethod
			if method == "" {
				method = "N/A"
			}
			rows = append(rows, []interface{}{
				item.TransactionID,
				item.Timestamp.Format("2006-01-02 15:04:05"),
				item.CustomerName,
				item.ServiceName,
				item.Price.StringFixed(2),
				item.CashierName,
				method,
			})
		}
		if err := writeRows(f, sec.Label, rows); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
