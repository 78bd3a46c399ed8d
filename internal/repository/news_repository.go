package repository

import (
	"context"
	"newspulse/internal/model"

	"gorm.io/gorm"
)

type NewsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// SaveBatch inserts items in order inside a single transaction. Either every
// item is stored and receives its ID, or none is.
func (r *NewsRepository) SaveBatch(ctx context.Context, items []model.NewsItem) error {
	if len(items) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range items {
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *NewsRepository) ListAll(ctx context.Context) ([]model.NewsItem, error) {
	items := make([]model.NewsItem, 0)
	err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *NewsRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.NewsItem{}).Count(&total).Error
	return total, err
}

func (r *NewsRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
