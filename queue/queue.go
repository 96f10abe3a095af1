package queue

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sksmith/bunnyq"

	"stocktrack/core/article"
)

type stockQueue struct {
	queue         *bunnyq.BunnyQ
	stockExchange string
}

// New returns an article.Queue that publishes stock level snapshots to the
// configured exchange whenever an article is mutated.
func New(bq *bunnyq.BunnyQ, stockExchange string) article.Queue {
	return &stockQueue{queue: bq, stockExchange: stockExchange}
}

func (q *stockQueue) PublishStockUpdate(ctx context.Context, a article.Article) error {
	body, err := json.Marshal(a)
	if err != nil {
		return errors.WithMessage(err, "failed to serialize stock update for queue")
	}
	if err = q.queue.Publish(ctx, q.stockExchange, body); err != nil {
		return errors.WithMessage(err, "failed to send stock update to queue")
	}
	return nil
}
