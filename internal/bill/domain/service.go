package domain

import (
	"context"
	"errors"
)

// LineInput is an operator-entered grid row before reconciliation.
type LineInput struct {
	ItemName    string  `json:"item_name"`
	QtyReceived float64 `json:"qty_received"`
	QtyDamaged  float64 `json:"qty_damaged"`
	VendorRate  float64 `json:"vendor_rate"`
}

type BuildGridRequest struct {
	SupplierID string `json:"supplier_id"`
	Date       string `json:"date"`
}

type BuildGridResponse struct {
	SupplierID string `json:"supplier_id"`
	Date       string `json:"date"`
	Lines      []Line `json:"lines"`

	// Set when the supplier has no markup rules configured: a valid state
	// surfaced as a warning, not an error.
	Warning string `json:"warning,omitempty"`
}

type ReconcileRequest struct {
	SupplierID string      `json:"supplier_id"`
	Date       string      `json:"date"`
	Lines      []LineInput `json:"lines"`
}

type ReconcileResponse struct {
	Lines     []Line  `json:"lines"`
	TotalBill float64 `json:"total_bill"`
}

type SaveBillRequest struct {
	SupplierID string      `json:"supplier_id"`
	Date       string      `json:"date"`
	Lines      []LineInput `json:"lines"`

	// A bill already saved for this supplier/date is only replaced when the
	// caller explicitly confirms the overwrite.
	ConfirmOverwrite bool `json:"confirm_overwrite"`
}

type SaveBillResponse struct {
	SavedLines int     `json:"saved_lines"`
	TotalBill  float64 `json:"total_bill"`
	Overwrote  bool    `json:"overwrote"`
}

type ListEntriesRequest struct {
	SupplierID string `json:"supplier_id"`
	Date       string `json:"date"`
}

type Service interface {
	BuildGrid(ctx context.Context, req BuildGridRequest) (*BuildGridResponse, error)
	Reconcile(ctx context.Context, req ReconcileRequest) (*ReconcileResponse, error)
	Save(ctx context.Context, req SaveBillRequest) (*SaveBillResponse, error)
	ListEntries(ctx context.Context, req ListEntriesRequest) ([]Entry, error)
}

var (
	ErrInvalidSupplier  = errors.New("invalid_supplier")
	ErrInvalidDate      = errors.New("invalid_date")
	ErrInvalidItemName  = errors.New("invalid_item_name")
	ErrNegativeQuantity = errors.New("negative_quantity")
	ErrNegativeRate     = errors.New("negative_rate")
	ErrNoPositiveLines  = errors.New("no_positive_net_quantity")
	ErrBillExists       = errors.New("bill_exists")
)
