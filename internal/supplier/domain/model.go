// Package domain contains supplier models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Vendor types. Chicken suppliers with markup validation enabled get the
// stock markup rules seeded at creation.
const (
	VendorTypeChicken   = "Chicken"
	VendorTypeVegetable = "Vegetable"
	VendorTypeOther     = "Other"
)

// Supplier is a counterparty the business buys from and is billed by.
type Supplier struct {
	ID                   snowflake.ID `gorm:"primaryKey" json:"id"`
	Name                 string       `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Phone                string       `gorm:"type:text" json:"phone"`
	PreferredPaymentType string       `gorm:"type:text" json:"preferred_payment_type"`
	PaymentFrequency     string       `gorm:"type:text" json:"payment_frequency"`
	VendorType           string       `gorm:"type:text;not null" json:"vendor_type"`
	MarkupRequired       bool         `gorm:"not null;default:true" json:"markup_required"`
	CreatedAt            time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt            time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (Supplier) TableName() string { return "suppliers" }
