package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	FindByID(ctx context.Context, id snowflake.ID) (*Supplier, error)
	FindByName(ctx context.Context, name string) (*Supplier, error)
	List(ctx context.Context) ([]Supplier, error)
	Insert(ctx context.Context, supplier *Supplier) error
	Update(ctx context.Context, supplier *Supplier) error
	Delete(ctx context.Context, id snowflake.ID) error
}
