package queue

import (
	"context"

	"stocktrack/core/article"
	"stocktrack/test"
)

type MockQueue struct {
	PublishStockUpdateFunc func(ctx context.Context, a article.Article) error
	*test.CallWatcher
}

func NewMockQueue() *MockQueue {
	return &MockQueue{
		PublishStockUpdateFunc: func(ctx context.Context, a article.Article) error {
			return nil
		},
		CallWatcher: test.NewCallWatcher(),
	}
}

func (m *MockQueue) PublishStockUpdate(ctx context.Context, a article.Article) error {
	m.AddCall(ctx, a)
	return m.PublishStockUpdateFunc(ctx, a)
}
