// Package app declares the use cases the CLI drives. Services implement
// them; commands depend only on these ports.
package app

import (
	"context"

	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/prereq"
)

type BuildUseCase interface {
	Build(ctx context.Context, req BuildRequest) (*BuildResponse, error)
}

type CompareUseCase interface {
	Compare(ctx context.Context, req CompareRequest) (*CompareResponse, error)
}

type ValidateTreeUseCase interface {
	ValidateTree(ctx context.Context, req ValidateTreeRequest) (*domain.TreeData, error)
}

type HistoryUseCase interface {
	ListRuns(ctx context.Context, limit int) ([]*domain.BuildRun, error)
	GetRun(ctx context.Context, id string) (*domain.BuildRun, error)
}

type ScorePrereqsUseCase interface {
	ScorePrereqs(ctx context.Context, req prereq.Request) (*prereq.Response, error)
}
