package service

import (
	"context"
	"fmt"
	"time"

	billdomain "github.com/smallbiznis/ratebook/internal/bill/domain"
	billrepository "github.com/smallbiznis/ratebook/internal/bill/repository"
	markupdomain "github.com/smallbiznis/ratebook/internal/markup/domain"
	markuprepository "github.com/smallbiznis/ratebook/internal/markup/repository"
	ratedomain "github.com/smallbiznis/ratebook/internal/rate/domain"
	"github.com/smallbiznis/ratebook/internal/rate/ratecache"
	"github.com/smallbiznis/ratebook/internal/rate/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	repo  ratedomain.Repository
	cache *ratecache.Cache
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Cache *ratecache.Cache
}

func NewService(p ServiceParam) ratedomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("rate.service"),

		repo:  repository.NewRepository(p.DB),
		cache: p.Cache,
	}
}

func (s *Service) Upsert(ctx context.Context, req ratedomain.UpsertRateRequest) (*ratedomain.UpsertRateResponse, error) {
	date, err := normalizeDate(req.Date)
	if err != nil {
		return nil, ratedomain.ErrInvalidDate
	}
	if !req.Override && (req.TandoorRate <= 0 || req.BoilerRate <= 0 || req.EggRate <= 0) {
		return nil, ratedomain.ErrNegativeRate
	}

	rate := &ratedomain.DailyRate{
		Date:        date,
		TandoorRate: req.TandoorRate,
		BoilerRate:  req.BoilerRate,
		EggRate:     req.EggRate,
	}

	var repriced int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewRepository(tx).Upsert(ctx, rate); err != nil {
			return err
		}
		n, err := repriceDate(ctx, tx, rate)
		if err != nil {
			return fmt.Errorf("reprice bills for %s: %w", date, err)
		}
		repriced = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate()

	s.log.Info("daily rates saved",
		zap.String("date", date),
		zap.Int64("repriced_bills", repriced),
	)
	return &ratedomain.UpsertRateResponse{Rate: *rate, RepricedBills: repriced}, nil
}

func (s *Service) Get(ctx context.Context, date string) (*ratedomain.DailyRate, error) {
	normalized, err := normalizeDate(date)
	if err != nil {
		return nil, ratedomain.ErrInvalidDate
	}
	rate, err := s.repo.Find(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, ratedomain.ErrRateNotFound
	}
	return rate, nil
}

func (s *Service) List(ctx context.Context, req ratedomain.ListRatesRequest) ([]ratedomain.DailyRate, error) {
	return s.repo.List(ctx, req.From, req.To)
}

// ReplaceHistory swaps the entire rate history without re-pricing old bills.
func (s *Service) ReplaceHistory(ctx context.Context, rates []ratedomain.DailyRate) error {
	for i := range rates {
		date, err := normalizeDate(rates[i].Date)
		if err != nil {
			return ratedomain.ErrInvalidDate
		}
		rates[i].Date = date
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repository.NewRepository(tx)
		if err := repo.DeleteAll(ctx); err != nil {
			return err
		}
		return repo.InsertBatch(ctx, rates)
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate()
	return nil
}

// repriceDate recomputes expected rate, variance, and status for every bill
// entry on the given date against the freshly saved base rates.
func repriceDate(ctx context.Context, tx *gorm.DB, rate *ratedomain.DailyRate) (int64, error) {
	bills := billrepository.NewRepository(tx)
	markups := markuprepository.NewRepository(tx)

	entries, err := bills.ListForDate(ctx, rate.Date)
	if err != nil {
		return 0, err
	}

	var updated int64
	for _, entry := range entries {
		rule, err := markups.FindBySupplierItem(ctx, entry.SupplierID, entry.ItemName)
		if err != nil {
			return updated, err
		}

		var formula *markupdomain.Formula
		if rule != nil {
			f := rule.Formula()
			formula = &f
		}

		expected := ratedomain.ResolveExpectedRate(rate, formula)
		line := billdomain.Reconcile(entry.Qty, 0, entry.VendorRate, expected)
		if err := bills.UpdatePricing(ctx, entry.ID, expected, line.Variance, line.Status); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

func normalizeDate(value string) (string, error) {
	t, err := time.Parse(ratedomain.DateLayout, value)
	if err != nil {
		return "", err
	}
	return t.Format(ratedomain.DateLayout), nil
}
