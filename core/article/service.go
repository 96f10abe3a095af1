package article

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"stocktrack/core"
)

func NewService(repo Repository, q Queue) *service {
	return &service{repo: repo, queue: q}
}

type Service interface {
	Create(ctx context.Context, req ArticleRequest) (Article, error)
	Update(ctx context.Context, id string, req ArticleRequest) (Article, error)
	Delete(ctx context.Context, id string) (string, error)

	Get(ctx context.Context, id string) (Article, error)
	GetAll(ctx context.Context) ([]Article, error)

	Order(ctx context.Context, id string, amount int) (OrderReceipt, error)
}

// service holds no state between calls; it is safe to share across requests.
type service struct {
	repo  Repository
	queue Queue
}

// validateRequest applies the required and range checks in a fixed order so
// the first violated rule is the one reported.
func validateRequest(req ArticleRequest) error {
	if strings.TrimSpace(req.MaterialType) == "" {
		return ValidationError{"MaterialType is required."}
	}
	if req.Amount < 0 {
		return ValidationError{"Amount must be zero or greater."}
	}
	if req.FullAmount < 0 {
		return ValidationError{"FullAmount must be zero or greater."}
	}
	return nil
}

func (s *service) Create(ctx context.Context, req ArticleRequest) (Article, error) {
	const funcName = "Create"

	if err := validateRequest(req); err != nil {
		return Article{}, err
	}
	if req.Amount > req.FullAmount {
		log.Error().
			Str("func", funcName).
			Str("materialType", req.MaterialType).
			Int("amount", req.Amount).
			Int("fullAmount", req.FullAmount).
			Msg("amount exceeds full amount")
		return Article{}, ConflictError{"Amount cannot exceed FullAmount."}
	}

	materialType := NormalizeMaterialType(req.MaterialType)
	unit := req.Unit
	if unit == "" {
		unit = UnitPiece
	}

	log.Info().
		Str("func", funcName).
		Str("materialType", materialType).
		Msg("creating article")

	_, err := s.repo.GetByMaterialType(ctx, materialType)
	if err == nil {
		log.Error().Str("func", funcName).Str("materialType", materialType).Msg("article already exists")
		return Article{}, ConflictError{fmt.Sprintf("Article with MaterialType %s already exists.", materialType)}
	}
	if !errors.Is(err, core.ErrNotFound) {
		return Article{}, errors.WithStack(err)
	}

	now := time.Now().UTC()
	a := Article{
		ID:           uuid.NewString(),
		MaterialType: materialType,
		Amount:       req.Amount,
		FullAmount:   req.FullAmount,
		Unit:         unit,
		IsOrdered:    req.IsOrdered,
		Status:       StatusFor(req.Amount, req.FullAmount),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err = s.repo.Create(ctx, &a); err != nil {
		// A concurrent create may beat the duplicate check above; the
		// unique index reports it as a conflict and it reads the same.
		if errors.Is(err, core.ErrConflict) {
			return Article{}, ConflictError{fmt.Sprintf("Article with MaterialType %s already exists.", materialType)}
		}
		log.Error().Err(err).Str("func", funcName).Str("materialType", materialType).Msg("failed to create article")
		return Article{}, PersistenceError{fmt.Sprintf("Failed to add the Article: %s.", materialType)}
	}

	s.publishStockUpdate(ctx, a)
	return a, nil
}

func (s *service) Update(ctx context.Context, id string, req ArticleRequest) (Article, error) {
	const funcName = "Update"

	if strings.TrimSpace(id) == "" {
		return Article{}, ValidationError{"Valid Id is required."}
	}
	if err := validateRequest(req); err != nil {
		return Article{}, err
	}

	log.Info().
		Str("func", funcName).
		Str("id", id).
		Msg("updating article")

	tx, err := s.repo.BeginTransaction(ctx)
	if err != nil {
		return Article{}, errors.WithStack(err)
	}

	defer func() {
		if err != nil {
			rollback(ctx, tx, err)
		}
	}()

	existing, err := s.repo.Get(ctx, id, core.QueryOptions{Tx: tx, ForUpdate: true})
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			log.Error().Str("func", funcName).Str("id", id).Msg("article not found")
			err = NotFoundError{fmt.Sprintf("Article with Id %s not found.", id)}
			return Article{}, err
		}
		return Article{}, errors.WithStack(err)
	}

	// Capacity is not mutable through update; the stored full amount is
	// the one the new amount is checked against.
	if req.Amount > existing.FullAmount {
		log.Error().
			Str("func", funcName).
			Str("id", id).
			Int("amount", req.Amount).
			Int("fullAmount", existing.FullAmount).
			Msg("amount exceeds full amount")
		err = ConflictError{"Amount cannot exceed FullAmount."}
		return Article{}, err
	}

	unit := req.Unit
	if unit == "" {
		unit = UnitPiece
	}

	existing.MaterialType = NormalizeMaterialType(req.MaterialType)
	existing.Amount = req.Amount
	existing.Unit = unit
	existing.IsOrdered = req.IsOrdered
	existing.Status = StatusFor(existing.Amount, existing.FullAmount)
	existing.UpdatedAt = time.Now().UTC()

	if err = s.repo.Update(ctx, &existing, core.UpdateOptions{Tx: tx}); err != nil {
		if errors.Is(err, core.ErrConflict) {
			err = ConflictError{fmt.Sprintf("Article with MaterialType %s already exists.", existing.MaterialType)}
			return Article{}, err
		}
		log.Error().Err(err).Str("func", funcName).Str("id", id).Msg("failed to update article")
		err = PersistenceError{fmt.Sprintf("Failed to update the Article with Id: %s.", id)}
		return Article{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return Article{}, errors.WithStack(err)
	}

	s.publishStockUpdate(ctx, existing)
	return existing, nil
}

func (s *service) Delete(ctx context.Context, id string) (string, error) {
	const funcName = "Delete"

	log.Info().
		Str("func", funcName).
		Str("id", id).
		Msg("deleting article")

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			log.Error().Str("func", funcName).Str("id", id).Msg("article not found")
			return "", NotFoundError{fmt.Sprintf("Article with Id %s not found.", id)}
		}
		return "", errors.WithStack(err)
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("func", funcName).Str("id", id).Msg("failed to delete article")
		return "", PersistenceError{fmt.Sprintf("Failed to delete Article %s.", existing.MaterialType)}
	}

	log.Info().Str("func", funcName).Str("id", id).Msg("article deleted")
	return fmt.Sprintf("Article %s was deleted successfully.", existing.MaterialType), nil
}

func (s *service) Get(ctx context.Context, id string) (Article, error) {
	const funcName = "Get"

	if strings.TrimSpace(id) == "" {
		return Article{}, ValidationError{"Valid Article ID is required."}
	}

	log.Info().
		Str("func", funcName).
		Str("id", id).
		Msg("getting article")

	a, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return Article{}, NotFoundError{"Article not found."}
		}
		return Article{}, errors.WithStack(err)
	}
	return a, nil
}

func (s *service) GetAll(ctx context.Context) ([]Article, error) {
	const funcName = "GetAll"

	log.Info().
		Str("func", funcName).
		Msg("getting all articles")

	articles, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if len(articles) == 0 {
		log.Info().Str("func", funcName).Msg("no articles found")
		return nil, NotFoundError{"No articles found."}
	}

	// Most depleted first; the stable sort keeps repository order for ties.
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Status.severity() > articles[j].Status.severity()
	})

	return articles, nil
}

func (s *service) Order(ctx context.Context, id string, amount int) (OrderReceipt, error) {
	const funcName = "Order"

	log.Info().
		Str("func", funcName).
		Str("id", id).
		Int("amount", amount).
		Msg("ordering article")

	if amount < 1 {
		return OrderReceipt{}, ValidationError{"Order amount must be greater than zero."}
	}

	tx, err := s.repo.BeginTransaction(ctx)
	if err != nil {
		return OrderReceipt{}, errors.WithStack(err)
	}

	defer func() {
		if err != nil {
			rollback(ctx, tx, err)
		}
	}()

	found, err := s.repo.Get(ctx, id, core.QueryOptions{Tx: tx, ForUpdate: true})
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			log.Error().Str("func", funcName).Str("id", id).Msg("article not found")
			err = NotFoundError{"Article with the given Id was not found."}
			return OrderReceipt{}, err
		}
		return OrderReceipt{}, errors.WithStack(err)
	}

	spaceLeft := found.FullAmount - found.Amount
	if amount > spaceLeft {
		log.Error().
			Str("func", funcName).
			Str("id", id).
			Int("amount", amount).
			Int("spaceLeft", spaceLeft).
			Msg("order exceeds remaining capacity")
		err = ConflictError{fmt.Sprintf("Cannot order %d %s. Only %d %s can be ordered to reach full capacity.",
			amount, found.Unit, spaceLeft, found.Unit)}
		return OrderReceipt{}, err
	}

	now := time.Now().UTC()
	found.Amount += amount
	found.IsOrdered = true
	found.Status = StatusFor(found.Amount, found.FullAmount)
	found.UpdatedAt = now

	if err = s.repo.Update(ctx, &found, core.UpdateOptions{Tx: tx}); err != nil {
		log.Error().Err(err).Str("func", funcName).Str("id", id).Msg("failed to order article")
		err = PersistenceError{fmt.Sprintf("Failed to order the Article with Id: %s.", id)}
		return OrderReceipt{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return OrderReceipt{}, errors.WithStack(err)
	}

	s.publishStockUpdate(ctx, found)
	return OrderReceipt{OrderedAt: now, Article: found}, nil
}

// publishStockUpdate notifies downstream consumers after a committed
// mutation. The write already succeeded, so a publish failure is logged
// rather than failing the operation.
func (s *service) publishStockUpdate(ctx context.Context, a Article) {
	if s.queue == nil {
		return
	}
	if err := s.queue.PublishStockUpdate(ctx, a); err != nil {
		log.Warn().Err(err).Str("materialType", a.MaterialType).Msg("failed to publish stock update")
	}
}
