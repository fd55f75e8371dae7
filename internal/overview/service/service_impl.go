package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	ledgerdomain "github.com/smallbiznis/ratebook/internal/ledger/domain"
	overviewdomain "github.com/smallbiznis/ratebook/internal/overview/domain"
	ratedomain "github.com/smallbiznis/ratebook/internal/rate/domain"
	raterepository "github.com/smallbiznis/ratebook/internal/rate/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	ledgerSvc ledgerdomain.Service
	rateRepo  ratedomain.Repository
}

type ServiceParam struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	LedgerSvc ledgerdomain.Service
}

func NewService(p ServiceParam) overviewdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("overview.service"),

		ledgerSvc: p.LedgerSvc,
		rateRepo:  raterepository.NewRepository(p.DB),
	}
}

func (s *Service) Summary(ctx context.Context) (*overviewdomain.Summary, error) {
	total, err := s.ledgerSvc.TotalOutstanding(ctx)
	if err != nil {
		return nil, err
	}

	var suppliers int64
	if err := s.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM suppliers`).Scan(&suppliers).Error; err != nil {
		return nil, err
	}

	return &overviewdomain.Summary{
		TotalOutstanding: total,
		ActiveSuppliers:  suppliers,
	}, nil
}

// VarianceReport lists every persisted bill entry with a non-zero variance,
// newest first. The percentage is variance over expected amount
// (qty x expected rate), matching the row classification rule.
func (s *Service) VarianceReport(ctx context.Context, req overviewdomain.VarianceReportRequest) ([]overviewdomain.VarianceRow, error) {
	q := s.db.WithContext(ctx).Raw(
		`SELECT b.date, s.name AS supplier_name, b.item_name, b.qty,
		        b.expected_rate, b.vendor_rate, b.variance, b.status
		 FROM bill_entries b
		 JOIN suppliers s ON s.id = b.supplier_id
		 WHERE b.variance != 0
		 ORDER BY b.date DESC`,
	)
	if id := strings.TrimSpace(req.SupplierID); id != "" {
		parsed, err := snowflake.ParseString(id)
		if err != nil {
			return nil, overviewdomain.ErrInvalidSupplier
		}
		q = s.db.WithContext(ctx).Raw(
			`SELECT b.date, s.name AS supplier_name, b.item_name, b.qty,
			        b.expected_rate, b.vendor_rate, b.variance, b.status
			 FROM bill_entries b
			 JOIN suppliers s ON s.id = b.supplier_id
			 WHERE b.variance != 0 AND b.supplier_id = ?
			 ORDER BY b.date DESC`,
			parsed,
		)
	}

	var rows []overviewdomain.VarianceRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	for i := range rows {
		expAmount := rows[i].Qty * rows[i].ExpectedRate
		if expAmount != 0 {
			rows[i].VariancePct = math.Round(rows[i].Variance/expAmount*100*100) / 100
		}
	}
	return rows, nil
}

func (s *Service) Trends(ctx context.Context) (*overviewdomain.TrendsResponse, error) {
	rates, err := s.rateRepo.List(ctx, "", "")
	if err != nil {
		return nil, err
	}

	resp := &overviewdomain.TrendsResponse{Rates: rates}
	if len(rates) < overviewdomain.ForecastMinSamples {
		resp.Warning = "need at least 5 days of rate history for a forecast"
		return resp, nil
	}

	forecast, err := forecastNextDay(rates)
	if err != nil {
		s.log.Warn("rate forecast failed", zap.Error(err))
		resp.Warning = "rate history is too degenerate to forecast"
		return resp, nil
	}
	resp.Forecast = forecast
	return resp, nil
}

// forecastNextDay fits a degree-2 polynomial per category over day ordinals
// and evaluates it one day past the newest observation.
func forecastNextDay(rates []ratedomain.DailyRate) (*overviewdomain.Forecast, error) {
	xs := make([]float64, len(rates))
	var lastDay time.Time
	for i, rate := range rates {
		t, err := time.Parse(ratedomain.DateLayout, rate.Date)
		if err != nil {
			return nil, err
		}
		xs[i] = float64(t.Unix()) / 86400
		if t.After(lastDay) {
			lastDay = t
		}
	}
	nextX := float64(lastDay.AddDate(0, 0, 1).Unix()) / 86400

	pick := func(get func(ratedomain.DailyRate) float64) []float64 {
		ys := make([]float64, len(rates))
		for i, rate := range rates {
			ys[i] = get(rate)
		}
		return ys
	}

	tandoorYs := pick(func(r ratedomain.DailyRate) float64 { return r.TandoorRate })
	boilerYs := pick(func(r ratedomain.DailyRate) float64 { return r.BoilerRate })
	eggYs := pick(func(r ratedomain.DailyRate) float64 { return r.EggRate })

	tandoor, err := polyfitPredict(xs, tandoorYs, nextX)
	if err != nil {
		return nil, err
	}
	boiler, err := polyfitPredict(xs, boilerYs, nextX)
	if err != nil {
		return nil, err
	}
	egg, err := polyfitPredict(xs, eggYs, nextX)
	if err != nil {
		return nil, err
	}

	return &overviewdomain.Forecast{
		Date:        lastDay.AddDate(0, 0, 1).Format(ratedomain.DateLayout),
		TandoorRate: math.Round(tandoor*100) / 100,
		BoilerRate:  math.Round(boiler*100) / 100,
		EggRate:     math.Round(egg*100) / 100,
	}, nil
}
