package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PriceMap stores per-vehicle-size prices as a JSON column, keyed by size
// label ("small", "medium", "large", ...) with fixed-point amounts.
type PriceMap map[string]string

func (m *PriceMap) Scan(value interface{}) error {
	if value == nil {
		*m = PriceMap{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan PriceMap: %v", value)
	}

	return json.Unmarshal(bytes, m)
}

func (m PriceMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	return json.Marshal(m)
}

// CarList stores a customer's registered vehicles as a JSON column.
type CarList []string

func (c *CarList) Scan(value interface{}) error {
	if value == nil {
		*c = CarList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan CarList: %v", value)
	}

	return json.Unmarshal(bytes, c)
}

func (c CarList) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	return json.Marshal(c)
}

type Service struct {
	ID          string   `gorm:"type:varchar(64);primaryKey"`
	ServiceName string   `gorm:"type:varchar(128);uniqueIndex;not null"`
	Description string   `gorm:"type:text"`
	Prices      PriceMap `gorm:"type:text"`
	IsActive    bool     `gorm:"not null;default:true"`

	CreatedAt *time.Time `gorm:"autoCreateTime"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime"`
}

type Chemical struct {
	ID           string `gorm:"type:varchar(64);primaryKey"`
	ChemicalName string `gorm:"type:varchar(128);not null"`
	Description  string `gorm:"type:text"`
	Unit         string `gorm:"type:varchar(32);not null"`
	Quantity     string `gorm:"type:varchar(32);not null"`
	ReorderLevel string `gorm:"type:varchar(32)"`

	CreatedAt *time.Time `gorm:"autoCreateTime"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime"`
}

type LoyaltyCustomer struct {
	ID           string  `gorm:"type:varchar(64);primaryKey"`
	CustomerName string  `gorm:"type:varchar(128);not null"`
	Phone        string  `gorm:"type:varchar(32)"`
	Cars         CarList `gorm:"type:text"`
	WashCount    int32   `gorm:"not null;default:0"`
	FreeWashes   int32   `gorm:"not null;default:0"`

	CreatedAt *time.Time `gorm:"autoCreateTime"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime"`
}
