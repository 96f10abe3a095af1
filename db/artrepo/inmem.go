package artrepo

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"stocktrack/core"
	"stocktrack/core/article"
)

// memRepo is a map-backed article.Repository used for local profiles and
// tests. It enforces the same material type uniqueness the database index
// does, so the service sees identical conflict behavior against either
// adapter. Listing order is insertion order.
type memRepo struct {
	mu    sync.RWMutex
	byID  map[string]article.Article
	order []string
}

func NewMemoryRepo() article.Repository {
	return &memRepo{byID: make(map[string]article.Article)}
}

func (r *memRepo) BeginTransaction(_ context.Context) (core.Transaction, error) {
	return memTx{}, nil
}

func (r *memRepo) GetAll(_ context.Context, _ ...core.QueryOptions) ([]article.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	articles := make([]article.Article, 0, len(r.order))
	for _, id := range r.order {
		articles = append(articles, r.byID[id])
	}
	return articles, nil
}

func (r *memRepo) Get(_ context.Context, id string, _ ...core.QueryOptions) (article.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return article.Article{}, errors.WithStack(core.ErrNotFound)
	}
	return a, nil
}

func (r *memRepo) GetByMaterialType(_ context.Context, materialType string, _ ...core.QueryOptions) (article.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if strings.EqualFold(r.byID[id].MaterialType, materialType) {
			return r.byID[id], nil
		}
	}
	return article.Article{}, errors.WithStack(core.ErrNotFound)
}

func (r *memRepo) Create(_ context.Context, a *article.Article, _ ...core.UpdateOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[a.ID]; ok {
		return errors.WithStack(core.ErrConflict)
	}
	for _, id := range r.order {
		if strings.EqualFold(r.byID[id].MaterialType, a.MaterialType) {
			return errors.WithStack(core.ErrConflict)
		}
	}

	r.byID[a.ID] = *a
	r.order = append(r.order, a.ID)
	return nil
}

func (r *memRepo) Update(_ context.Context, a *article.Article, _ ...core.UpdateOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[a.ID]; !ok {
		return errors.WithStack(core.ErrNotFound)
	}
	for _, id := range r.order {
		if id != a.ID && strings.EqualFold(r.byID[id].MaterialType, a.MaterialType) {
			return errors.WithStack(core.ErrConflict)
		}
	}

	r.byID[a.ID] = *a
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string, _ ...core.UpdateOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return errors.WithStack(core.ErrNotFound)
	}

	delete(r.byID, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type memTx struct {
	MockTransaction
}
