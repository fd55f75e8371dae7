package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	supplierdomain "github.com/smallbiznis/ratebook/internal/supplier/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) supplierdomain.Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*supplierdomain.Supplier, error) {
	var supplier supplierdomain.Supplier
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&supplier).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &supplier, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (*supplierdomain.Supplier, error) {
	var supplier supplierdomain.Supplier
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&supplier).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &supplier, nil
}

func (r *repository) List(ctx context.Context) ([]supplierdomain.Supplier, error) {
	var suppliers []supplierdomain.Supplier
	err := r.db.WithContext(ctx).Order("name").Find(&suppliers).Error
	return suppliers, err
}

func (r *repository) Insert(ctx context.Context, supplier *supplierdomain.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *repository) Update(ctx context.Context, supplier *supplierdomain.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

func (r *repository) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&supplierdomain.Supplier{}).Error
}
