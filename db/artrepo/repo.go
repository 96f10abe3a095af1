package artrepo

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"stocktrack/core"
	"stocktrack/core/article"
	"stocktrack/db"

	lru "github.com/hashicorp/golang-lru"
)

const uniqueViolation = "23505"

type dbRepo struct {
	conn core.Conn
	c    *lru.Cache
}

func NewPostgresRepo(conn core.Conn) article.Repository {
	l, err := lru.New(256)
	if err != nil {
		log.Warn().Err(err).Msg("unable to configure cache")
	}
	return &dbRepo{
		conn: conn,
		c:    l,
	}
}

func (d *dbRepo) BeginTransaction(ctx context.Context) (core.Transaction, error) {
	tx, err := d.conn.Begin(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return tx, nil
}

func (d *dbRepo) Create(ctx context.Context, a *article.Article, options ...core.UpdateOptions) error {
	m := db.StartMetric("CreateArticle")
	tx := db.GetUpdateOptions(d.conn, options...)

	_, err := tx.Exec(ctx, `
		INSERT INTO articles (id, material_type, amount, full_amount, unit, is_ordered, status, created_at, updated_at)
		              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		a.ID, a.MaterialType, a.Amount, a.FullAmount, a.Unit, a.IsOrdered, a.Status, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		m.Complete(err)
		if isUniqueViolation(err) {
			return errors.WithStack(core.ErrConflict)
		}
		return errors.WithStack(err)
	}

	d.cache(*a)
	m.Complete(nil)
	return nil
}

func (d *dbRepo) Update(ctx context.Context, a *article.Article, options ...core.UpdateOptions) error {
	m := db.StartMetric("UpdateArticle")
	tx := db.GetUpdateOptions(d.conn, options...)

	ct, err := tx.Exec(ctx, `
		UPDATE articles
		   SET material_type = $2, amount = $3, full_amount = $4, unit = $5, is_ordered = $6, status = $7, updated_at = $8
		 WHERE id = $1;`,
		a.ID, a.MaterialType, a.Amount, a.FullAmount, a.Unit, a.IsOrdered, a.Status, a.UpdatedAt)
	if err != nil {
		m.Complete(err)
		if isUniqueViolation(err) {
			return errors.WithStack(core.ErrConflict)
		}
		return errors.WithStack(err)
	}
	if ct.RowsAffected() == 0 {
		m.Complete(core.ErrNotFound)
		return errors.WithStack(core.ErrNotFound)
	}

	d.cache(*a)
	m.Complete(nil)
	return nil
}

func (d *dbRepo) Delete(ctx context.Context, id string, options ...core.UpdateOptions) error {
	m := db.StartMetric("DeleteArticle")
	tx := db.GetUpdateOptions(d.conn, options...)

	ct, err := tx.Exec(ctx, `DELETE FROM articles WHERE id = $1;`, id)
	if err != nil {
		m.Complete(err)
		return errors.WithStack(err)
	}
	if ct.RowsAffected() == 0 {
		m.Complete(core.ErrNotFound)
		return errors.WithStack(core.ErrNotFound)
	}

	d.uncache(id)
	m.Complete(nil)
	return nil
}

func (d *dbRepo) Get(ctx context.Context, id string, options ...core.QueryOptions) (article.Article, error) {
	m := db.StartMetric("GetArticle")
	tx, forUpdate := db.GetQueryOptions(d.conn, options...)

	// The cache is only good for plain reads; anything inside a
	// transaction or row lock has to hit the store.
	if len(options) == 0 {
		if a, ok := d.getcache(id); ok {
			m.Complete(nil)
			return a, nil
		}
	}

	a := article.Article{}
	err := tx.QueryRow(ctx, `
		SELECT id, material_type, amount, full_amount, unit, is_ordered, status, created_at, updated_at
		  FROM articles WHERE id = $1 `+forUpdate, id).
		Scan(&a.ID, &a.MaterialType, &a.Amount, &a.FullAmount, &a.Unit, &a.IsOrdered, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		m.Complete(err)
		if err == pgx.ErrNoRows {
			return a, errors.WithStack(core.ErrNotFound)
		}
		return a, errors.WithStack(err)
	}

	if len(options) == 0 {
		d.cache(a)
	}
	m.Complete(nil)
	return a, nil
}

func (d *dbRepo) GetByMaterialType(ctx context.Context, materialType string, options ...core.QueryOptions) (article.Article, error) {
	m := db.StartMetric("GetArticleByMaterialType")
	tx, forUpdate := db.GetQueryOptions(d.conn, options...)

	a := article.Article{}
	err := tx.QueryRow(ctx, `
		SELECT id, material_type, amount, full_amount, unit, is_ordered, status, created_at, updated_at
		  FROM articles WHERE material_type = $1 `+forUpdate, materialType).
		Scan(&a.ID, &a.MaterialType, &a.Amount, &a.FullAmount, &a.Unit, &a.IsOrdered, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		m.Complete(err)
		if err == pgx.ErrNoRows {
			return a, errors.WithStack(core.ErrNotFound)
		}
		return a, errors.WithStack(err)
	}

	m.Complete(nil)
	return a, nil
}

func (d *dbRepo) GetAll(ctx context.Context, options ...core.QueryOptions) ([]article.Article, error) {
	m := db.StartMetric("GetAllArticles")
	tx, forUpdate := db.GetQueryOptions(d.conn, options...)

	articles := make([]article.Article, 0)
	rows, err := tx.Query(ctx, `
		SELECT id, material_type, amount, full_amount, unit, is_ordered, status, created_at, updated_at
		  FROM articles ORDER BY material_type `+forUpdate)
	if err != nil {
		m.Complete(err)
		if err == pgx.ErrNoRows {
			return articles, nil
		}
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	for rows.Next() {
		a := article.Article{}
		err = rows.Scan(&a.ID, &a.MaterialType, &a.Amount, &a.FullAmount, &a.Unit, &a.IsOrdered, &a.Status, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			m.Complete(err)
			return nil, errors.WithStack(err)
		}
		articles = append(articles, a)
	}

	m.Complete(nil)
	return articles, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}

func (d *dbRepo) cache(a article.Article) {
	if d.c == nil {
		return
	}
	d.c.Add(a.ID, a)
}

func (d *dbRepo) uncache(id string) {
	if d.c == nil {
		return
	}
	d.c.Remove(id)
}

func (d *dbRepo) getcache(id string) (article.Article, bool) {
	if d.c == nil {
		return article.Article{}, false
	}

	v, ok := d.c.Get(id)
	if !ok {
		return article.Article{}, false
	}
	a, ok := v.(article.Article)
	return a, ok
}
