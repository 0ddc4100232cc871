package mysql

import (
	"context"

	"SafeCampus/internal/model"

	"gorm.io/gorm"
)

type ReportRepository struct {
	DB *gorm.DB
}

func (r *ReportRepository) Create(ctx context.Context, report *model.Report) error {
	return r.DB.WithContext(ctx).Create(report).Error
}

func (r *ReportRepository) FindByID(ctx context.Context, id uint64) (*model.Report, error) {
	var report model.Report
	err := r.DB.WithContext(ctx).First(&report, id).Error
	return &report, err
}

func (r *ReportRepository) ListByUser(ctx context.Context, userID uint64) ([]model.Report, error) {
	var list []model.Report
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *ReportRepository) ListAll(ctx context.Context) ([]model.Report, error) {
	var list []model.Report
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *ReportRepository) Acknowledge(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.Report{}).
		Where("id = ?", id).
		Update("is_acknowledged", true).Error
}
