package domain

import (
	"context"
	"errors"
	"io"
)

type UpsertRateRequest struct {
	Date        string  `json:"date"`
	TandoorRate float64 `json:"tandoor_rate"`
	BoilerRate  float64 `json:"boiler_rate"`
	EggRate     float64 `json:"egg_rate"`

	// Zero or negative rates are rejected unless the caller explicitly
	// overrides.
	Override bool `json:"override"`
}

type UpsertRateResponse struct {
	Rate          DailyRate `json:"rate"`
	RepricedBills int64     `json:"repriced_bills"`
}

// ColumnMapping names the source columns of a bulk import file.
type ColumnMapping struct {
	Date    string `json:"date"`
	Tandoor string `json:"tandoor"`
	Boiler  string `json:"boiler"`
	Egg     string `json:"egg"`
}

type ImportRequest struct {
	Format  string // "csv" or "xlsx"
	Mapping ColumnMapping
	Reader  io.Reader
}

type ImportResponse struct {
	ImportedRates int64 `json:"imported_rates"`
	RepricedBills int64 `json:"repriced_bills"`
	SkippedRows   int64 `json:"skipped_rows"`
}

type ListRatesRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type Service interface {
	Upsert(ctx context.Context, req UpsertRateRequest) (*UpsertRateResponse, error)
	Get(ctx context.Context, date string) (*DailyRate, error)
	List(ctx context.Context, req ListRatesRequest) ([]DailyRate, error)
	Import(ctx context.Context, req ImportRequest) (*ImportResponse, error)

	// ReplaceHistory swaps the entire rate history. Old bills are not
	// re-priced, matching the history editor of the bookkeeping flow.
	ReplaceHistory(ctx context.Context, rates []DailyRate) error
}

var (
	ErrInvalidDate     = errors.New("invalid_date")
	ErrNegativeRate    = errors.New("negative_rate")
	ErrRateNotFound    = errors.New("rate_not_found")
	ErrInvalidMapping  = errors.New("invalid_column_mapping")
	ErrInvalidFormat   = errors.New("invalid_import_format")
	ErrEmptyImportFile = errors.New("empty_import_file")
)
