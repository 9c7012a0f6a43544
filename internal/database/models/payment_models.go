package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"washpoint-system/internal/report"
)

// EmployeeShare is one labor commission line inside a payment.
type EmployeeShare struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Commission string `json:"commission"`
}

// ShareList stores the per-payment commission breakdown as a JSON column.
type ShareList []EmployeeShare

func (s *ShareList) Scan(value interface{}) error {
	if value == nil {
		*s = ShareList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan ShareList: %v", value)
	}

	return json.Unmarshal(bytes, s)
}

func (s ShareList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

type Payment struct {
	ID           string `gorm:"type:varchar(64);primaryKey"`
	CustomerName string `gorm:"type:varchar(128);not null"`
	CarName      string `gorm:"type:varchar(128)"`
	PlateNumber  string `gorm:"type:varchar(32)"`
	ServiceName  string `gorm:"type:varchar(128);not null"`
	Price        string `gorm:"type:varchar(32);not null"`

	CashierID   *int64
	CashierName string `gorm:"type:varchar(128)"`

	EmployeeShares ShareList `gorm:"type:text"`

	ReferrerID         *string `gorm:"type:varchar(64)"`
	ReferrerName       string  `gorm:"type:varchar(128)"`
	ReferrerCommission string  `gorm:"type:varchar(32)"`

	Paid            bool   `gorm:"not null;default:false"`
	PaymentMethod   string `gorm:"type:varchar(32)"`
	AmountTendered  string `gorm:"type:varchar(32)"`
	ChangeGiven     string `gorm:"type:varchar(32)"`

	CreatedAt int64     `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// ToRecord flattens a stored payment into the engine's snapshot form.
func (p Payment) ToRecord() report.PaymentRecord {
	rec := report.PaymentRecord{
		ID:             p.ID,
		CustomerName:   p.CustomerName,
		CarName:        p.CarName,
		PlateNumber:    p.PlateNumber,
		ServiceName:    p.ServiceName,
		Price:          p.Price,
		CashierName:    p.CashierName,
		CreatedAt:      p.CreatedAt,
		Paid:           p.Paid,
		PaymentMethod:  p.PaymentMethod,
		AmountTendered: p.AmountTendered,
		ChangeGiven:    p.ChangeGiven,
	}

	for _, share := range p.EmployeeShares {
		rec.EmployeeShares = append(rec.EmployeeShares, report.EmployeeShare{
			EmployeeID:   share.EmployeeID,
			EmployeeName: share.Name,
			Commission:   share.Commission,
		})
	}

	if p.ReferrerID != nil && *p.ReferrerID != "" {
		rec.ReferrerShare = &report.EmployeeShare{
			EmployeeID:   *p.ReferrerID,
			EmployeeName: p.ReferrerName,
			Commission:   p.ReferrerCommission,
		}
	}

	return rec
}

// AuditLog records destructive admin actions such as payment deletions.
type AuditLog struct {
	ID         string     `gorm:"type:varchar(64);primaryKey"`
	Action     string     `gorm:"type:varchar(64);not null"`
	EntityType string     `gorm:"type:varchar(64);not null"`
	EntityID   string     `gorm:"type:varchar(64);not null;index"`
	Actor      string     `gorm:"type:varchar(128)"`
	Details    string     `gorm:"type:text"`
	CreatedAt  *time.Time `gorm:"autoCreateTime"`
}
