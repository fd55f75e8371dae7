package domain

import (
	"context"
	"errors"
)

type CreateSupplierRequest struct {
	Name                 string `json:"name"`
	Phone                string `json:"phone"`
	PreferredPaymentType string `json:"preferred_payment_type"`
	PaymentFrequency     string `json:"payment_frequency"`
	VendorType           string `json:"vendor_type"`
	MarkupRequired       *bool  `json:"markup_required"`
}

type UpdateSupplierRequest struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Phone                string `json:"phone"`
	PreferredPaymentType string `json:"preferred_payment_type"`
	PaymentFrequency     string `json:"payment_frequency"`
	VendorType           string `json:"vendor_type"`
	MarkupRequired       *bool  `json:"markup_required"`
}

type Service interface {
	Create(ctx context.Context, req CreateSupplierRequest) (*Supplier, error)
	Update(ctx context.Context, req UpdateSupplierRequest) (*Supplier, error)
	GetByID(ctx context.Context, id string) (*Supplier, error)
	List(ctx context.Context) ([]Supplier, error)

	// Delete removes the supplier and cascades to its markup rules, bill
	// entries, and ledger transactions in one transaction.
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidSupplierID = errors.New("invalid_supplier_id")
	ErrInvalidName       = errors.New("invalid_supplier_name")
	ErrSupplierNotFound  = errors.New("supplier_not_found")
	ErrSupplierExists    = errors.New("supplier_exists")
)
