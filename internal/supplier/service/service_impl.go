package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	markupdomain "github.com/smallbiznis/ratebook/internal/markup/domain"
	supplierdomain "github.com/smallbiznis/ratebook/internal/supplier/domain"
	"github.com/smallbiznis/ratebook/internal/supplier/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID *snowflake.Node
	repo  supplierdomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

func NewService(p ServiceParam) supplierdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("supplier.service"),

		genID: p.GenID,
		repo:  repository.NewRepository(p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req supplierdomain.CreateSupplierRequest) (*supplierdomain.Supplier, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, supplierdomain.ErrInvalidName
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, supplierdomain.ErrSupplierExists
	}

	vendorType := strings.TrimSpace(req.VendorType)
	if vendorType == "" {
		vendorType = supplierdomain.VendorTypeChicken
	}
	markupRequired := true
	if req.MarkupRequired != nil {
		markupRequired = *req.MarkupRequired
	}

	supplier := &supplierdomain.Supplier{
		ID:                   s.genID.Generate(),
		Name:                 name,
		Phone:                strings.TrimSpace(req.Phone),
		PreferredPaymentType: req.PreferredPaymentType,
		PaymentFrequency:     req.PaymentFrequency,
		VendorType:           vendorType,
		MarkupRequired:       markupRequired,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewRepository(tx).Insert(ctx, supplier); err != nil {
			return err
		}
		// Markup-required chicken suppliers start from the stock rule set.
		if markupRequired && vendorType == supplierdomain.VendorTypeChicken {
			rules := markupdomain.DefaultChickenRules(supplier.ID, s.genID)
			if err := tx.WithContext(ctx).Create(&rules).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("supplier created",
		zap.String("supplier_id", supplier.ID.String()),
		zap.String("name", supplier.Name),
		zap.String("vendor_type", supplier.VendorType),
	)
	return supplier, nil
}

func (s *Service) Update(ctx context.Context, req supplierdomain.UpdateSupplierRequest) (*supplierdomain.Supplier, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, supplierdomain.ErrInvalidSupplierID
	}

	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, supplierdomain.ErrSupplierNotFound
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, supplierdomain.ErrInvalidName
	}
	if name != supplier.Name {
		clash, err := s.repo.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if clash != nil {
			return nil, supplierdomain.ErrSupplierExists
		}
	}

	supplier.Name = name
	supplier.Phone = strings.TrimSpace(req.Phone)
	supplier.PreferredPaymentType = req.PreferredPaymentType
	supplier.PaymentFrequency = req.PaymentFrequency
	if vendorType := strings.TrimSpace(req.VendorType); vendorType != "" {
		supplier.VendorType = vendorType
	}
	if req.MarkupRequired != nil {
		supplier.MarkupRequired = *req.MarkupRequired
	}

	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*supplierdomain.Supplier, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, supplierdomain.ErrInvalidSupplierID
	}
	supplier, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, supplierdomain.ErrSupplierNotFound
	}
	return supplier, nil
}

func (s *Service) List(ctx context.Context) ([]supplierdomain.Supplier, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return supplierdomain.ErrInvalidSupplierID
	}

	supplier, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		return err
	}
	if supplier == nil {
		return supplierdomain.ErrSupplierNotFound
	}

	// Cascade across ledger, bills, and markup rules so no orphans survive.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Exec(`DELETE FROM vendor_ledger WHERE supplier_id = ?`, parsed).Error; err != nil {
			return err
		}
		if err := tx.WithContext(ctx).Exec(`DELETE FROM bill_entries WHERE supplier_id = ?`, parsed).Error; err != nil {
			return err
		}
		if err := tx.WithContext(ctx).Exec(`DELETE FROM markup_rules WHERE supplier_id = ?`, parsed).Error; err != nil {
			return err
		}
		return repository.NewRepository(tx).Delete(ctx, parsed)
	})
	if err != nil {
		return err
	}

	s.log.Info("supplier deleted",
		zap.String("supplier_id", parsed.String()),
		zap.String("name", supplier.Name),
	)
	return nil
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
