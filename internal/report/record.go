// Package report implements the sales and commission aggregation engine:
// pure functions that classify payments into shifts, fold them into keyed
// totals, rank the results and assemble exportable shift reports.
//
// The engine performs no IO and holds no references to the record store. It
// operates on snapshots of PaymentRecord supplied by the caller, so any number
// of reports may be computed concurrently over independent snapshots.
package report

import "github.com/shopspring/decimal"

// EmployeeShare credits a single employee with a commission amount on one
// payment. Amounts are fixed-point decimal strings.
type EmployeeShare struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Commission   string `json:"commission"`
}

// PaymentRecord is the engine's read-only view of one transaction. CreatedAt
// is unix seconds and is the sole time axis for all reporting. Only records
// with Paid set participate in any aggregation.
type PaymentRecord struct {
	ID             string          `json:"id"`
	CustomerName   string          `json:"customer_name"`
	CarName        string          `json:"car_name"`
	PlateNumber    string          `json:"plate_number"`
	ServiceName    string          `json:"service_name"`
	Price          string          `json:"price"`
	CashierName    string          `json:"cashier_name"`
	EmployeeShares []EmployeeShare `json:"employee_shares"`
	ReferrerShare  *EmployeeShare  `json:"referrer_share,omitempty"`
	CreatedAt      int64           `json:"created_at"`
	Paid           bool            `json:"paid"`
	PaymentMethod  string          `json:"payment_method"`
	AmountTendered string          `json:"amount_tendered"`
	ChangeGiven    string          `json:"change_given"`
}

// wellFormed parses the record's price and reports whether the record is
// usable for aggregation. Records with no timestamp or an unparsable or
// negative price are skipped rather than aborting the whole computation.
func (p PaymentRecord) wellFormed() (decimal.Decimal, bool) {
	if p.CreatedAt <= 0 {
		return decimal.Zero, false
	}
	price, err := decimal.NewFromString(p.Price)
	if err != nil || price.IsNegative() {
		return decimal.Zero, false
	}
	return price, true
}
