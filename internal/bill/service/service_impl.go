package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	billdomain "github.com/smallbiznis/ratebook/internal/bill/domain"
	"github.com/smallbiznis/ratebook/internal/bill/repository"
	ledgerdomain "github.com/smallbiznis/ratebook/internal/ledger/domain"
	ledgerrepository "github.com/smallbiznis/ratebook/internal/ledger/repository"
	markupdomain "github.com/smallbiznis/ratebook/internal/markup/domain"
	markuprepository "github.com/smallbiznis/ratebook/internal/markup/repository"
	ratedomain "github.com/smallbiznis/ratebook/internal/rate/domain"
	"github.com/smallbiznis/ratebook/internal/rate/ratecache"
	raterepository "github.com/smallbiznis/ratebook/internal/rate/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID      *snowflake.Node
	repo       billdomain.Repository
	markupRepo markupdomain.Repository
	rateRepo   ratedomain.Repository
	cache      *ratecache.Cache
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Cache *ratecache.Cache
}

func NewService(p ServiceParam) billdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("bill.service"),

		genID:      p.GenID,
		repo:       repository.NewRepository(p.DB),
		markupRepo: markuprepository.NewRepository(p.DB),
		rateRepo:   raterepository.NewRepository(p.DB),
		cache:      p.Cache,
	}
}

// BuildGrid loads the supplier's items with their resolved expected rates.
// The memo cache is cleared first: a grid build is a selection change or a
// full reload, both of which invalidate the previous session's rates.
func (s *Service) BuildGrid(ctx context.Context, req billdomain.BuildGridRequest) (*billdomain.BuildGridResponse, error) {
	supplierID, date, err := s.resolveTarget(ctx, req.SupplierID, req.Date)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate()

	rules, err := s.markupRepo.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	resp := &billdomain.BuildGridResponse{
		SupplierID: supplierID.String(),
		Date:       date,
	}
	if len(rules) == 0 {
		resp.Warning = "no markup rules configured for this supplier"
		return resp, nil
	}

	rates, err := s.rateRepo.Find(ctx, date)
	if err != nil {
		return nil, err
	}

	for _, rule := range rules {
		expected := s.expectedRate(date, supplierID, rule, rates)

		status := billdomain.StatusOkay
		if expected == 0 {
			status = billdomain.StatusNoRateData
		}
		resp.Lines = append(resp.Lines, billdomain.Line{
			ItemName:     rule.ItemName,
			ExpectedRate: expected,
			Status:       status,
		})
	}
	return resp, nil
}

// Reconcile recomputes the full derived row set for the given inputs. Pure
// apart from expected-rate lookups, which go through the memo cache.
func (s *Service) Reconcile(ctx context.Context, req billdomain.ReconcileRequest) (*billdomain.ReconcileResponse, error) {
	supplierID, date, err := s.resolveTarget(ctx, req.SupplierID, req.Date)
	if err != nil {
		return nil, err
	}

	lines, total, err := s.reconcileLines(ctx, supplierID, date, req.Lines)
	if err != nil {
		return nil, err
	}
	return &billdomain.ReconcileResponse{Lines: lines, TotalBill: total}, nil
}

// Save persists the bill all-or-nothing: rows with positive net quantity,
// plus exactly one aggregated "Bill" ledger transaction. A bill already on
// file for this supplier/date is only replaced when the caller confirmed the
// overwrite, and replacement deletes the prior rows and the prior bill
// ledger transaction first.
func (s *Service) Save(ctx context.Context, req billdomain.SaveBillRequest) (*billdomain.SaveBillResponse, error) {
	supplierID, date, err := s.resolveTarget(ctx, req.SupplierID, req.Date)
	if err != nil {
		return nil, err
	}

	lines, total, err := s.reconcileLines(ctx, supplierID, date, req.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var entries []billdomain.Entry
	for _, line := range lines {
		if line.NetQty <= 0 {
			continue
		}
		entries = append(entries, billdomain.Entry{
			ID:           s.genID.Generate(),
			Date:         date,
			SupplierID:   supplierID,
			ItemName:     line.ItemName,
			Qty:          line.NetQty,
			VendorRate:   line.VendorRate,
			ExpectedRate: line.ExpectedRate,
			Variance:     line.Variance,
			Status:       line.Status,
			CreatedAt:    now,
		})
	}
	if len(entries) == 0 {
		return nil, billdomain.ErrNoPositiveLines
	}

	resp := &billdomain.SaveBillResponse{SavedLines: len(entries), TotalBill: total}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := repository.NewRepository(tx)
		ledgerTx := ledgerrepository.NewRepository(tx)

		existing, err := repoTx.CountForSupplierDate(ctx, supplierID, date)
		if err != nil {
			return err
		}
		if existing > 0 {
			if !req.ConfirmOverwrite {
				return billdomain.ErrBillExists
			}
			if err := repoTx.DeleteForSupplierDate(ctx, supplierID, date); err != nil {
				return err
			}
			if err := ledgerTx.DeleteBillTransaction(ctx, supplierID, date); err != nil {
				return err
			}
			resp.Overwrote = true
		}

		if err := repoTx.InsertBatch(ctx, entries); err != nil {
			return err
		}
		return ledgerTx.Insert(ctx, &ledgerdomain.Transaction{
			ID:         s.genID.Generate(),
			Date:       date,
			SupplierID: supplierID,
			Type:       ledgerdomain.TypeBill,
			Amount:     total,
			Details:    fmt.Sprintf("Total Bill Amount for %s", date),
			CreatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("bill saved",
		zap.String("supplier_id", supplierID.String()),
		zap.String("date", date),
		zap.Int("lines", resp.SavedLines),
		zap.Float64("total_bill", resp.TotalBill),
		zap.Bool("overwrote", resp.Overwrote),
	)
	return resp, nil
}

func (s *Service) ListEntries(ctx context.Context, req billdomain.ListEntriesRequest) ([]billdomain.Entry, error) {
	supplierID, date, err := s.resolveTarget(ctx, req.SupplierID, req.Date)
	if err != nil {
		return nil, err
	}
	return s.repo.ListForSupplierDate(ctx, supplierID, date)
}

func (s *Service) reconcileLines(ctx context.Context, supplierID snowflake.ID, date string, inputs []billdomain.LineInput) ([]billdomain.Line, float64, error) {
	rates, err := s.rateRepo.Find(ctx, date)
	if err != nil {
		return nil, 0, err
	}

	var lines []billdomain.Line
	var total float64
	for _, input := range inputs {
		itemName := strings.TrimSpace(input.ItemName)
		if itemName == "" {
			return nil, 0, billdomain.ErrInvalidItemName
		}
		if input.QtyReceived < 0 || input.QtyDamaged < 0 {
			return nil, 0, billdomain.ErrNegativeQuantity
		}
		if input.VendorRate < 0 {
			return nil, 0, billdomain.ErrNegativeRate
		}

		rule, err := s.markupRepo.FindBySupplierItem(ctx, supplierID, itemName)
		if err != nil {
			return nil, 0, err
		}

		expected := s.cache.GetOrCompute(date, supplierID, itemName, func() float64 {
			var formula *markupdomain.Formula
			if rule != nil {
				f := rule.Formula()
				formula = &f
			}
			return ratedomain.ResolveExpectedRate(rates, formula)
		})

		line := billdomain.Reconcile(input.QtyReceived, input.QtyDamaged, input.VendorRate, expected)
		line.ItemName = itemName
		lines = append(lines, line)
		total += line.VendorAmount
	}
	return lines, math.Round(total*100) / 100, nil
}

func (s *Service) expectedRate(date string, supplierID snowflake.ID, rule markupdomain.Rule, rates *ratedomain.DailyRate) float64 {
	return s.cache.GetOrCompute(date, supplierID, rule.ItemName, func() float64 {
		formula := rule.Formula()
		return ratedomain.ResolveExpectedRate(rates, &formula)
	})
}

// resolveTarget validates the supplier reference and the bill date shared by
// every operation.
func (s *Service) resolveTarget(ctx context.Context, supplierID, date string) (snowflake.ID, string, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(supplierID))
	if err != nil {
		return 0, "", billdomain.ErrInvalidSupplier
	}

	var count int64
	if err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM suppliers WHERE id = ?`, id,
	).Scan(&count).Error; err != nil {
		return 0, "", err
	}
	if count == 0 {
		return 0, "", billdomain.ErrInvalidSupplier
	}

	t, err := time.Parse(ratedomain.DateLayout, strings.TrimSpace(date))
	if err != nil {
		return 0, "", billdomain.ErrInvalidDate
	}
	return id, t.Format(ratedomain.DateLayout), nil
}
