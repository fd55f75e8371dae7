package repository

import (
	"context"

	ratedomain "github.com/smallbiznis/ratebook/internal/rate/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ratedomain.Repository {
	return &repository{db: db}
}

func (r *repository) Find(ctx context.Context, date string) (*ratedomain.DailyRate, error) {
	var rate ratedomain.DailyRate
	err := r.db.WithContext(ctx).Where("date = ?", date).First(&rate).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rate, nil
}

func (r *repository) List(ctx context.Context, from, to string) ([]ratedomain.DailyRate, error) {
	q := r.db.WithContext(ctx).Model(&ratedomain.DailyRate{})
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}

	var rates []ratedomain.DailyRate
	err := q.Order("date").Find(&rates).Error
	return rates, err
}

func (r *repository) Upsert(ctx context.Context, rate *ratedomain.DailyRate) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"tandoor_rate", "boiler_rate", "egg_rate", "updated_at"}),
	}).Create(rate).Error
}

func (r *repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM daily_rates`).Error
}

func (r *repository) InsertBatch(ctx context.Context, rates []ratedomain.DailyRate) error {
	if len(rates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rates).Error
}
