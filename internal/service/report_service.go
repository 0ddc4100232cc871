package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"SafeCampus/internal/model"
	"SafeCampus/internal/pkg"
	"SafeCampus/internal/repository/mysql"
)

type ReportService struct {
	repo *mysql.ReportRepository
}

func NewReportService() *ReportService {
	return &ReportService{repo: &mysql.ReportRepository{DB: mysql.DB}}
}

func (s *ReportService) Create(ctx context.Context, userID uint64, location, details, image, video string, date time.Time) (*model.Report, error) {
	if date.IsZero() {
		return nil, pkg.Invalid("invalid date provided")
	}
	if details == "" {
		return nil, pkg.Invalid("details are required")
	}

	report := &model.Report{
		UserID:   userID,
		Location: location,
		Details:  details,
		Image:    image,
		Video:    video,
		Date:     date,
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, pkg.Internal(err)
	}
	return report, nil
}

// ListMine returns the caller's own reports.
func (s *ReportService) ListMine(ctx context.Context, userID uint64) ([]model.Report, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkg.Internal(err)
	}
	return list, nil
}

// ListAll returns every report; admin only, enforced by the router.
func (s *ReportService) ListAll(ctx context.Context) ([]model.Report, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkg.Internal(err)
	}
	return list, nil
}

func (s *ReportService) Acknowledge(ctx context.Context, id uint64) (*model.Report, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NotFound("report not found")
		}
		return nil, pkg.Internal(err)
	}
	if err := s.repo.Acknowledge(ctx, id); err != nil {
		return nil, pkg.Internal(err)
	}
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkg.Internal(err)
	}
	return report, nil
}
