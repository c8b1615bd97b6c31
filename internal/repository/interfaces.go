package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/spelltree/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrAmbiguousID is returned when an id prefix matches more than one run.
var ErrAmbiguousID = errors.New("ambiguous id prefix")

type RunRepo interface {
	Create(ctx context.Context, r *domain.BuildRun) error
	GetByID(ctx context.Context, id string) (*domain.BuildRun, error)
	GetByPrefix(ctx context.Context, prefix string) (*domain.BuildRun, error)
	List(ctx context.Context, limit int) ([]*domain.BuildRun, error)
	Delete(ctx context.Context, id string) error
}
