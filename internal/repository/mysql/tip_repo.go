package mysql

import (
	"context"

	"SafeCampus/internal/model"

	"gorm.io/gorm"
)

type TipRepository struct {
	DB *gorm.DB
}

func (r *TipRepository) Create(ctx context.Context, tip *model.Tip) error {
	return r.DB.WithContext(ctx).Create(tip).Error
}

func (r *TipRepository) ListAll(ctx context.Context) ([]model.Tip, error) {
	var list []model.Tip
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&list).Error
	return list, err
}
