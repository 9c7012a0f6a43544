package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"washpoint-system/internal/report"
)

func buildReport(t *testing.T, records []report.PaymentRecord) *report.ShiftReport {
	t.Helper()
	rng := report.DateRange{
		Start: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
	}
	rep, err := report.BuildShiftReport(records, rng, report.SelectAll, time.UTC)
	require.NoError(t, err)
	return rep
}

func TestFilename(t *testing.T) {
	rep := buildReport(t, nil)
	assert.Equal(t, "Shift_Sales_Report_2024-06-01_to_2024-06-30.xlsx", Filename(rep))
}

func TestShiftReportWorkbookSheets(t *testing.T) {
	records := []report.PaymentRecord{
		{
			ID:           "pay-1",
			CustomerName: "Alona R.",
			ServiceName:  "Premium Wash",
			Price:        "350.00",
			CashierName:  "Dindo",
			CreatedAt:    time.Date(2024, time.June, 10, 10, 0, 0, 0, time.UTC).Unix(),
			Paid:         true,
		},
	}
	rep := buildReport(t, records)

	f, err := ShiftReportWorkbook(rep)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Shift 1 Details", "Shift 2 Details"}, f.GetSheetList())

	title, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Shift Sales Report Summary", title)

	rangeLine, err := f.GetCellValue("Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Date Range: 2024-06-01 to 2024-06-30", rangeLine)

	shift1Total, err := f.GetCellValue("Summary", "B5")
	require.NoError(t, err)
	assert.Equal(t, "350.00", shift1Total)

	combined, err := f.GetCellValue("Summary", "B7")
	require.NoError(t, err)
	assert.Equal(t, "350.00", combined)
}

func TestShiftReportWorkbookDetailRows(t *testing.T) {
	records := []report.PaymentRecord{
		{
			ID:            "pay-1",
			CustomerName:  "Alona R.",
			ServiceName:   "Premium Wash",
			Price:         "350.00",
			CashierName:   "Dindo",
			PaymentMethod: "cash",
			CreatedAt:     time.Date(2024, time.June, 10, 10, 30, 0, 0, time.UTC).Unix(),
			Paid:          true,
		},
		{
			ID:           "pay-2",
			CustomerName: "Ben T.",
			ServiceName:  "Underwash",
			Price:        "180.00",
			CashierName:  "Dindo",
			CreatedAt:    time.Date(2024, time.June, 10, 21, 0, 0, 0, time.UTC).Unix(),
			Paid:         true,
		},
	}
	rep := buildReport(t, records)

	f, err := ShiftReportWorkbook(rep)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Shift 1 Details", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Payment ID", header)

	id, err := f.GetCellValue("Shift 1 Details", "A2")
	require.NoError(t, err)
	assert.Equal(t, "pay-1", id)

	stamp, err := f.GetCellValue("Shift 1 Details", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10 10:30:00", stamp)

	method, err := f.GetCellValue("Shift 1 Details", "G2")
	require.NoError(t, err)
	assert.Equal(t, "cash", method)

	// A missing payment method is rendered explicitly, not left blank.
	fallback, err := f.GetCellValue("Shift 2 Details", "G2")
	require.NoError(t, err)
	assert.Equal(t, "N/A", fallback)
}

func TestShiftReportWorkbookPlaceholder(t *testing.T) {
	rep := buildReport(t, nil)

	f, err := ShiftReportWorkbook(rep)
	require.NoError(t, err)
	defer f.Close()

	cell, err := f.GetCellValue("Shift 2 Details", "A1")
	require.NoError(t, err)
	assert.Equal(t, "No sales records for Shift 2 in this period.", cell)
}
