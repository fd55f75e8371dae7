// Package domain contains the vendor ledger models. Bills are debits
// (positive amounts), payments are credits stored as negative amounts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Transaction types.
const (
	TypeBill    = "Bill"
	TypePayment = "Payment"
)

// Transaction is one signed ledger row for a supplier.
type Transaction struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	Date       string       `gorm:"type:text;not null;index" json:"date"`
	SupplierID snowflake.ID `gorm:"not null;index" json:"supplier_id"`
	Type       string       `gorm:"column:transaction_type;type:text;not null" json:"transaction_type"`
	Amount     float64      `gorm:"not null" json:"amount"`
	Details    string       `gorm:"type:text" json:"details"`
	CreatedAt  time.Time    `gorm:"not null" json:"created_at"`
}

// TableName sets the database table name.
func (Transaction) TableName() string { return "vendor_ledger" }

// StatementRow is one line of the merged ledger view: bill totals grouped by
// date alongside recorded ledger rows. Amounts are displayed unsigned; the
// type carries the direction.
type StatementRow struct {
	Date    string  `json:"date"`
	Type    string  `json:"type"`
	Amount  float64 `json:"amount"`
	Details string  `json:"details"`
}
