package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/rs/zerolog/log"

	"stocktrack/core/article"
)

type ArticleService interface {
	Create(ctx context.Context, req article.ArticleRequest) (article.Article, error)
	Update(ctx context.Context, id string, req article.ArticleRequest) (article.Article, error)
	Delete(ctx context.Context, id string) (string, error)

	Get(ctx context.Context, id string) (article.Article, error)
	GetAll(ctx context.Context) ([]article.Article, error)

	Order(ctx context.Context, id string, amount int) (article.OrderReceipt, error)
}

type ArticleApi struct {
	service ArticleService
}

func NewArticleApi(service ArticleService) *ArticleApi {
	return &ArticleApi{service: service}
}

func (a *ArticleApi) ConfigureRouter(r chi.Router) {
	r.Get("/", a.List)
	r.Post("/", a.Create)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", a.Get)
		r.Put("/", a.Update)
		r.Delete("/", a.Delete)
		r.Put("/order", a.Order)
	})
}

func (a *ArticleApi) List(w http.ResponseWriter, r *http.Request) {
	articles, err := a.service.GetAll(r.Context())
	if err != nil {
		RenderErr(w, r, err)
		return
	}

	RenderList(w, r, NewArticleListResponse(articles))
}

func (a *ArticleApi) Create(w http.ResponseWriter, r *http.Request) {
	data := &CreateArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		Render(w, r, ErrInvalidRequest(err))
		return
	}

	created, err := a.service.Create(r.Context(), *data.ArticleRequest)
	if err != nil {
		RenderErr(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	Render(w, r, NewArticleResponse(created))
}

func (a *ArticleApi) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := a.service.Get(r.Context(), id)
	if err != nil {
		RenderErr(w, r, err)
		return
	}

	Render(w, r, NewArticleResponse(found))
}

func (a *ArticleApi) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	data := &CreateArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		Render(w, r, ErrInvalidRequest(err))
		return
	}

	updated, err := a.service.Update(r.Context(), id, *data.ArticleRequest)
	if err != nil {
		RenderErr(w, r, err)
		return
	}

	Render(w, r, NewArticleResponse(updated))
}

func (a *ArticleApi) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	msg, err := a.service.Delete(r.Context(), id)
	if err != nil {
		RenderErr(w, r, err)
		return
	}

	Render(w, r, &MessageResponse{Message: msg})
}

func (a *ArticleApi) Order(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	data := &OrderArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		Render(w, r, ErrInvalidRequest(err))
		return
	}

	receipt, err := a.service.Order(r.Context(), id, data.Amount)
	if err != nil {
		RenderErr(w, r, err)
		return
	}

	log.Debug().Str("id", id).Int("amount", data.Amount).Msg("restock order placed")
	Render(w, r, NewOrderReceiptResponse(receipt))
}
