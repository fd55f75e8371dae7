package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	markupdomain "github.com/smallbiznis/ratebook/internal/markup/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) markupdomain.Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*markupdomain.Rule, error) {
	var rule markupdomain.Rule
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rule).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *repository) FindBySupplierItem(ctx context.Context, supplierID snowflake.ID, itemName string) (*markupdomain.Rule, error) {
	var rule markupdomain.Rule
	err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND item_name = ?", supplierID, itemName).
		First(&rule).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *repository) ListBySupplier(ctx context.Context, supplierID snowflake.ID) ([]markupdomain.Rule, error) {
	var rules []markupdomain.Rule
	err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("item_name").
		Find(&rules).Error
	return rules, err
}

func (r *repository) Insert(ctx context.Context, rule *markupdomain.Rule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *repository) Update(ctx context.Context, rule *markupdomain.Rule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *repository) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&markupdomain.Rule{}).Error
}
