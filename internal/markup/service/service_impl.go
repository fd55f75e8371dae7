package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	markupdomain "github.com/smallbiznis/ratebook/internal/markup/domain"
	"github.com/smallbiznis/ratebook/internal/markup/repository"
	"github.com/smallbiznis/ratebook/internal/rate/ratecache"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID *snowflake.Node
	repo  markupdomain.Repository
	cache *ratecache.Cache
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Cache *ratecache.Cache
}

func NewService(p ServiceParam) markupdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("markup.service"),

		genID: p.GenID,
		repo:  repository.NewRepository(p.DB),
		cache: p.Cache,
	}
}

// Upsert saves a rule directly, without an overwrite confirmation. Only a
// different rule already claiming the same (supplier, item) pair is a
// conflict.
func (s *Service) Upsert(ctx context.Context, req markupdomain.UpsertRuleRequest) (*markupdomain.Rule, error) {
	supplierID, err := parseID(req.SupplierID)
	if err != nil {
		return nil, markupdomain.ErrInvalidSupplier
	}

	itemName := strings.TrimSpace(req.ItemName)
	if itemName == "" {
		return nil, markupdomain.ErrInvalidItemName
	}
	if !req.BaseRate.Valid() {
		return nil, markupdomain.ErrInvalidBaseRate
	}
	if req.Operator1 != nil && !req.Operator1.Valid() {
		return nil, markupdomain.ErrInvalidOperator
	}
	if req.Operator2 != nil && !req.Operator2.Valid() {
		return nil, markupdomain.ErrInvalidOperator
	}

	var supplierCount int64
	if err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM suppliers WHERE id = ?`, supplierID,
	).Scan(&supplierCount).Error; err != nil {
		return nil, err
	}
	if supplierCount == 0 {
		return nil, markupdomain.ErrInvalidSupplier
	}

	var rule *markupdomain.Rule
	if strings.TrimSpace(req.ID) != "" {
		id, err := parseID(req.ID)
		if err != nil {
			return nil, markupdomain.ErrInvalidRuleID
		}
		rule, err = s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if rule == nil {
			return nil, markupdomain.ErrRuleNotFound
		}
	}

	claimed, err := s.repo.FindBySupplierItem(ctx, supplierID, itemName)
	if err != nil {
		return nil, err
	}
	if claimed != nil && (rule == nil || claimed.ID != rule.ID) {
		return nil, markupdomain.ErrRuleExists
	}

	created := rule == nil
	if created {
		rule = &markupdomain.Rule{ID: s.genID.Generate()}
	}
	rule.SupplierID = supplierID
	rule.ItemName = itemName
	rule.BaseRate = req.BaseRate
	rule.Operator1 = req.Operator1
	rule.Value1 = req.Value1
	rule.Operator2 = req.Operator2
	rule.Value2 = req.Value2

	if created {
		err = s.repo.Insert(ctx, rule)
	} else {
		err = s.repo.Update(ctx, rule)
	}
	if err != nil {
		return nil, err
	}

	// Expected rates derived from the old rule are stale now.
	s.cache.Invalidate()

	s.log.Info("markup rule saved",
		zap.String("supplier_id", supplierID.String()),
		zap.String("item_name", itemName),
	)
	return rule, nil
}

func (s *Service) List(ctx context.Context, req markupdomain.ListRulesRequest) ([]markupdomain.Rule, error) {
	supplierID, err := parseID(req.SupplierID)
	if err != nil {
		return nil, markupdomain.ErrInvalidSupplier
	}
	return s.repo.ListBySupplier(ctx, supplierID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return markupdomain.ErrInvalidRuleID
	}

	rule, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		return err
	}
	if rule == nil {
		return markupdomain.ErrRuleNotFound
	}

	if err := s.repo.Delete(ctx, parsed); err != nil {
		return err
	}
	s.cache.Invalidate()
	return nil
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
