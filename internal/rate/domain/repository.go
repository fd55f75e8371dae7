package domain

import "context"

type Repository interface {
	Find(ctx context.Context, date string) (*DailyRate, error)
	List(ctx context.Context, from, to string) ([]DailyRate, error)
	Upsert(ctx context.Context, rate *DailyRate) error
	DeleteAll(ctx context.Context) error
	InsertBatch(ctx context.Context, rates []DailyRate) error
}
