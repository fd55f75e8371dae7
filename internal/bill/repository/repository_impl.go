package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	billdomain "github.com/smallbiznis/ratebook/internal/bill/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) billdomain.Repository {
	return &repository{db: db}
}

func (r *repository) CountForSupplierDate(ctx context.Context, supplierID snowflake.ID, date string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&billdomain.Entry{}).
		Where("supplier_id = ? AND date = ?", supplierID, date).
		Count(&count).Error
	return count, err
}

func (r *repository) ListForSupplierDate(ctx context.Context, supplierID snowflake.ID, date string) ([]billdomain.Entry, error) {
	var entries []billdomain.Entry
	err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND date = ?", supplierID, date).
		Order("item_name").
		Find(&entries).Error
	return entries, err
}

func (r *repository) ListForDate(ctx context.Context, date string) ([]billdomain.Entry, error) {
	var entries []billdomain.Entry
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Find(&entries).Error
	return entries, err
}

func (r *repository) DeleteForSupplierDate(ctx context.Context, supplierID snowflake.ID, date string) error {
	return r.db.WithContext(ctx).
		Where("supplier_id = ? AND date = ?", supplierID, date).
		Delete(&billdomain.Entry{}).Error
}

func (r *repository) InsertBatch(ctx context.Context, entries []billdomain.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

func (r *repository) UpdatePricing(ctx context.Context, id snowflake.ID, expectedRate, variance float64, status string) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE bill_entries SET expected_rate = ?, variance = ?, status = ? WHERE id = ?`,
		expectedRate, variance, status, id,
	).Error
}

func (r *repository) SumVendorAmount(ctx context.Context, supplierID snowflake.ID) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(qty * vendor_rate), 0) FROM bill_entries WHERE supplier_id = ?`,
		supplierID,
	).Scan(&total).Error
	return total, err
}
