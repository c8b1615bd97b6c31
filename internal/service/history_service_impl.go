package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/spelltree/internal/app"
	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/repository"
)

type historyService struct {
	runs repository.RunRepo
}

func NewHistoryService(runs repository.RunRepo) app.HistoryUseCase {
	return &historyService{runs: runs}
}

func (s *historyService) ListRuns(ctx context.Context, limit int) ([]*domain.BuildRun, error) {
	runs, err := s.runs.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// GetRun accepts a full id or the short prefix shown by `history`.
func (s *historyService) GetRun(ctx context.Context, id string) (*domain.BuildRun, error) {
	run, err := s.runs.GetByID(ctx, id)
	if err == nil {
		return run, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.runs.GetByPrefix(ctx, id)
}
