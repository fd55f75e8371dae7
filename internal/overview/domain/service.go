// Package domain contains dashboard aggregate types: financial summary,
// variance analysis, and rate trend forecasting.
package domain

import (
	"context"
	"errors"

	ratedomain "github.com/smallbiznis/ratebook/internal/rate/domain"
)

// ForecastMinSamples is the minimum rate history needed before the next-day
// forecast is attempted.
const ForecastMinSamples = 5

type Summary struct {
	TotalOutstanding float64 `json:"total_outstanding"`
	ActiveSuppliers  int64   `json:"active_suppliers"`
}

// VarianceRow is one bill entry whose vendor amount deviated from the
// expected amount.
type VarianceRow struct {
	Date         string  `json:"date"`
	SupplierName string  `json:"supplier_name"`
	ItemName     string  `json:"item_name"`
	Qty          float64 `json:"qty"`
	ExpectedRate float64 `json:"expected_rate"`
	VendorRate   float64 `json:"vendor_rate"`
	Variance     float64 `json:"variance"`
	VariancePct  float64 `json:"variance_pct"`
	Status       string  `json:"status"`
}

// Forecast is the predicted next-day rate per category, from a degree-2
// polynomial fit over the observed history.
type Forecast struct {
	Date        string  `json:"date"`
	TandoorRate float64 `json:"tandoor_rate"`
	BoilerRate  float64 `json:"boiler_rate"`
	EggRate     float64 `json:"egg_rate"`
}

type TrendsResponse struct {
	Rates    []ratedomain.DailyRate `json:"rates"`
	Forecast *Forecast              `json:"forecast,omitempty"`

	// Set when history is too short to forecast.
	Warning string `json:"warning,omitempty"`
}

type VarianceReportRequest struct {
	SupplierID string `json:"supplier_id"`
}

type Service interface {
	Summary(ctx context.Context) (*Summary, error)
	VarianceReport(ctx context.Context, req VarianceReportRequest) ([]VarianceRow, error)
	Trends(ctx context.Context) (*TrendsResponse, error)
}

var ErrInvalidSupplier = errors.New("invalid_supplier")
