// Package domain contains bill entry models and the row reconciliation rule.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Entry is a persisted bill line for a (date, supplier, item). Qty is the
// net quantity (received minus damaged, floored at zero); only lines with a
// positive net quantity are ever persisted.
type Entry struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Date         string       `gorm:"type:text;not null;uniqueIndex:idx_bill_entries_date_supplier_item" json:"date"`
	SupplierID   snowflake.ID `gorm:"not null;uniqueIndex:idx_bill_entries_date_supplier_item" json:"supplier_id"`
	ItemName     string       `gorm:"type:text;not null;uniqueIndex:idx_bill_entries_date_supplier_item" json:"item_name"`
	Qty          float64      `gorm:"not null" json:"qty"`
	VendorRate   float64      `gorm:"not null" json:"vendor_rate"`
	ExpectedRate float64      `gorm:"not null" json:"expected_rate"`
	Variance     float64      `gorm:"not null" json:"variance"`
	Status       string       `gorm:"type:text;not null" json:"status"`
	CreatedAt    time.Time    `gorm:"not null" json:"created_at"`
}

// TableName sets the database table name.
func (Entry) TableName() string { return "bill_entries" }

// Line is an ephemeral reconciled grid row. It is computed in memory per
// reconciliation request and discarded once translated into persisted bill
// and ledger records.
type Line struct {
	ItemName       string  `json:"item_name"`
	QtyReceived    float64 `json:"qty_received"`
	QtyDamaged     float64 `json:"qty_damaged"`
	NetQty         float64 `json:"net_qty"`
	ExpectedRate   float64 `json:"expected_rate"`
	VendorRate     float64 `json:"vendor_rate"`
	ExpectedAmount float64 `json:"expected_amount"`
	VendorAmount   float64 `json:"vendor_amount"`
	Variance       float64 `json:"variance"`
	Status         string  `json:"status"`
}
