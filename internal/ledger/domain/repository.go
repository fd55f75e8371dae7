package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Insert(ctx context.Context, tx *Transaction) error
	DeleteBillTransaction(ctx context.Context, supplierID snowflake.ID, date string) error
	List(ctx context.Context, supplierID snowflake.ID) ([]Transaction, error)
	SumByType(ctx context.Context, supplierID snowflake.ID, txType string) (float64, error)

	// BillTotalsByDate aggregates persisted bill rows into per-date debit
	// totals for the statement view.
	BillTotalsByDate(ctx context.Context, supplierID snowflake.ID) ([]StatementRow, error)
}
