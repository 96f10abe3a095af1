package artrepo

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"stocktrack/core"
	"stocktrack/core/article"
	"stocktrack/test"
)

type MockRepo struct {
	GetAllFunc            func(ctx context.Context, options ...core.QueryOptions) ([]article.Article, error)
	GetFunc               func(ctx context.Context, id string, options ...core.QueryOptions) (article.Article, error)
	GetByMaterialTypeFunc func(ctx context.Context, materialType string, options ...core.QueryOptions) (article.Article, error)

	CreateFunc func(ctx context.Context, a *article.Article, options ...core.UpdateOptions) error
	UpdateFunc func(ctx context.Context, a *article.Article, options ...core.UpdateOptions) error
	DeleteFunc func(ctx context.Context, id string, options ...core.UpdateOptions) error

	BeginTransactionFunc func(ctx context.Context) (core.Transaction, error)

	*test.CallWatcher
}

func NewMockRepo() MockRepo {
	return MockRepo{
		GetAllFunc: func(ctx context.Context, options ...core.QueryOptions) ([]article.Article, error) {
			return nil, nil
		},
		GetFunc: func(ctx context.Context, id string, options ...core.QueryOptions) (article.Article, error) {
			return article.Article{}, core.ErrNotFound
		},
		GetByMaterialTypeFunc: func(ctx context.Context, materialType string, options ...core.QueryOptions) (article.Article, error) {
			return article.Article{}, core.ErrNotFound
		},
		CreateFunc: func(ctx context.Context, a *article.Article, options ...core.UpdateOptions) error { return nil },
		UpdateFunc: func(ctx context.Context, a *article.Article, options ...core.UpdateOptions) error { return nil },
		DeleteFunc: func(ctx context.Context, id string, options ...core.UpdateOptions) error { return nil },
		BeginTransactionFunc: func(ctx context.Context) (core.Transaction, error) {
			return MockTransaction{}, nil
		},
		CallWatcher: test.NewCallWatcher(),
	}
}

func (r MockRepo) GetAll(ctx context.Context, options ...core.QueryOptions) ([]article.Article, error) {
	r.AddCall(ctx)
	return r.GetAllFunc(ctx, options...)
}

func (r MockRepo) Get(ctx context.Context, id string, options ...core.QueryOptions) (article.Article, error) {
	r.AddCall(ctx, id)
	return r.GetFunc(ctx, id, options...)
}

func (r MockRepo) GetByMaterialType(ctx context.Context, materialType string, options ...core.QueryOptions) (article.Article, error) {
	r.AddCall(ctx, materialType)
	return r.GetByMaterialTypeFunc(ctx, materialType, options...)
}

func (r MockRepo) Create(ctx context.Context, a *article.Article, options ...core.UpdateOptions) error {
	r.AddCall(ctx, a)
	return r.CreateFunc(ctx, a, options...)
}

func (r MockRepo) Update(ctx context.Context, a *article.Article, options ...core.UpdateOptions) error {
	r.AddCall(ctx, a)
	return r.UpdateFunc(ctx, a, options...)
}

func (r MockRepo) Delete(ctx context.Context, id string, options ...core.UpdateOptions) error {
	r.AddCall(ctx, id)
	return r.DeleteFunc(ctx, id, options...)
}

func (r MockRepo) BeginTransaction(ctx context.Context) (core.Transaction, error) {
	return r.BeginTransactionFunc(ctx)
}

type MockTransaction struct {
}

func (m MockTransaction) Commit(_ context.Context) error {
	return nil
}

func (m MockTransaction) Rollback(_ context.Context) error {
	return nil
}

func (m MockTransaction) Query(_ context.Context, _ string, _ ...interface{}) (pgx.Rows, error) {
	return nil, nil
}

func (m MockTransaction) QueryRow(_ context.Context, _ string, _ ...interface{}) pgx.Row {
	return nil
}

func (m MockTransaction) Exec(_ context.Context, _ string, _ ...interface{}) (pgconn.CommandTag, error) {
	return nil, nil
}

func (m MockTransaction) Begin(_ context.Context) (pgx.Tx, error) {
	return nil, nil
}
