package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	CountForSupplierDate(ctx context.Context, supplierID snowflake.ID, date string) (int64, error)
	ListForSupplierDate(ctx context.Context, supplierID snowflake.ID, date string) ([]Entry, error)
	ListForDate(ctx context.Context, date string) ([]Entry, error)
	DeleteForSupplierDate(ctx context.Context, supplierID snowflake.ID, date string) error
	InsertBatch(ctx context.Context, entries []Entry) error
	UpdatePricing(ctx context.Context, id snowflake.ID, expectedRate, variance float64, status string) error
	SumVendorAmount(ctx context.Context, supplierID snowflake.ID) (float64, error)
}
