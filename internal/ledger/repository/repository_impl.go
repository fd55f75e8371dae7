package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	ledgerdomain "github.com/smallbiznis/ratebook/internal/ledger/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ledgerdomain.Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, tx *ledgerdomain.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *repository) DeleteBillTransaction(ctx context.Context, supplierID snowflake.ID, date string) error {
	return r.db.WithContext(ctx).
		Where("supplier_id = ? AND date = ? AND transaction_type = ?", supplierID, date, ledgerdomain.TypeBill).
		Delete(&ledgerdomain.Transaction{}).Error
}

func (r *repository) List(ctx context.Context, supplierID snowflake.ID) ([]ledgerdomain.Transaction, error) {
	var txs []ledgerdomain.Transaction
	err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("date DESC").
		Find(&txs).Error
	return txs, err
}

func (r *repository) SumByType(ctx context.Context, supplierID snowflake.ID, txType string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(amount), 0) FROM vendor_ledger WHERE supplier_id = ? AND transaction_type = ?`,
		supplierID, txType,
	).Scan(&total).Error
	return total, err
}

func (r *repository) BillTotalsByDate(ctx context.Context, supplierID snowflake.ID) ([]ledgerdomain.StatementRow, error) {
	var rows []ledgerdomain.StatementRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT date, 'Bill' AS type, SUM(qty * vendor_rate) AS amount, 'Bill Total' AS details
		 FROM bill_entries
		 WHERE supplier_id = ?
		 GROUP BY date`,
		supplierID,
	).Scan(&rows).Error
	return rows, err
}
