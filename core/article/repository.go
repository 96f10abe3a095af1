package article

import (
	"context"

	"github.com/rs/zerolog/log"

	"stocktrack/core"
)

func rollback(ctx context.Context, tx core.Transaction, err error) {
	if tx == nil {
		return
	}
	e := tx.Rollback(ctx)
	if e != nil {
		log.Warn().Err(err).Msg("failed to rollback")
	}
}

type Transactional interface {
	BeginTransaction(ctx context.Context) (core.Transaction, error)
}

// Repository is the persistence contract the service depends on. Adapters
// report a missing record as core.ErrNotFound and a write that collides
// with an existing record as core.ErrConflict; the material type uniqueness
// must be enforced by the store itself so concurrent creates cannot both
// slip past the service's duplicate check.
type Repository interface {
	Transactional

	GetAll(ctx context.Context, options ...core.QueryOptions) ([]Article, error)
	Get(ctx context.Context, id string, options ...core.QueryOptions) (Article, error)
	GetByMaterialType(ctx context.Context, materialType string, options ...core.QueryOptions) (Article, error)

	Create(ctx context.Context, article *Article, options ...core.UpdateOptions) error
	Update(ctx context.Context, article *Article, options ...core.UpdateOptions) error
	Delete(ctx context.Context, id string, options ...core.UpdateOptions) error
}

// Queue publishes stock level changes for downstream consumers.
type Queue interface {
	PublishStockUpdate(ctx context.Context, article Article) error
}
