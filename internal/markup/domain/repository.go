package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	FindByID(ctx context.Context, id snowflake.ID) (*Rule, error)
	FindBySupplierItem(ctx context.Context, supplierID snowflake.ID, itemName string) (*Rule, error)
	ListBySupplier(ctx context.Context, supplierID snowflake.ID) ([]Rule, error)
	Insert(ctx context.Context, rule *Rule) error
	Update(ctx context.Context, rule *Rule) error
	Delete(ctx context.Context, id snowflake.ID) error
}
