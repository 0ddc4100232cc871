package service

import (
	"context"

	"SafeCampus/internal/model"
	"SafeCampus/internal/pkg"
	"SafeCampus/internal/repository/mysql"
)

type TipService struct {
	repo *mysql.TipRepository
}

func NewTipService() *TipService {
	return &TipService{repo: &mysql.TipRepository{DB: mysql.DB}}
}

func (s *TipService) List(ctx context.Context) ([]model.Tip, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkg.Internal(err)
	}
	return list, nil
}

func (s *TipService) Create(ctx context.Context, title, body string) (*model.Tip, error) {
	if title == "" {
		return nil, pkg.Invalid("title is required")
	}
	tip := &model.Tip{Title: title, Body: body}
	if err := s.repo.Create(ctx, tip); err != nil {
		return nil, pkg.Internal(err)
	}
	return tip, nil
}
