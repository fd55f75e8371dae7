package domain

import (
	"context"
	"errors"
)

// Net-due labels derived from the sign of the balance. Positive means the
// supplier is owed money by the business; negative means the business has
// overpaid.
const (
	BalanceNetDue   = "NET DUE"
	BalanceOverpaid = "OVERPAID"
	BalanceSettled  = "SETTLED"
)

type RecordPaymentRequest struct {
	SupplierID string  `json:"supplier_id"`
	Date       string  `json:"date"`
	Amount     float64 `json:"amount"`
	Details    string  `json:"details"`
}

type NetDueResponse struct {
	SupplierID    string  `json:"supplier_id"`
	TotalBills    float64 `json:"total_bills"`
	TotalPayments float64 `json:"total_payments"`
	NetDue        float64 `json:"net_due"`
	Label         string  `json:"label"`
}

type StatementResponse struct {
	SupplierID string         `json:"supplier_id"`
	Rows       []StatementRow `json:"rows"`
	NetDue     NetDueResponse `json:"net_due"`
}

type Service interface {
	RecordPayment(ctx context.Context, req RecordPaymentRequest) (*Transaction, error)
	NetDue(ctx context.Context, supplierID string) (*NetDueResponse, error)
	Statement(ctx context.Context, supplierID string) (*StatementResponse, error)
	TotalOutstanding(ctx context.Context) (float64, error)
}

var (
	ErrInvalidSupplier = errors.New("invalid_supplier")
	ErrInvalidDate     = errors.New("invalid_date")
	ErrInvalidAmount   = errors.New("invalid_amount")
)
