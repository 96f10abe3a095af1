package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"stocktrack/core/article"
)

type CreateArticleRequest struct {
	*article.ArticleRequest

	// Derived and assigned fields are not writable through the API.
	ProtectedID        string    `json:"id"`
	ProtectedStatus    string    `json:"status"`
	ProtectedCreatedAt time.Time `json:"createdAt"`
	ProtectedUpdatedAt time.Time `json:"updatedAt"`
}

func (p *CreateArticleRequest) Bind(_ *http.Request) error {
	if p.ArticleRequest == nil {
		return errors.New("missing required Article fields")
	}
	if p.Unit != "" {
		if _, err := article.ParseUnit(string(p.Unit)); err != nil {
			return err
		}
	}

	return nil
}

type OrderArticleRequest struct {
	Amount int `json:"amount"`
}

func (p *OrderArticleRequest) Bind(_ *http.Request) error {
	return nil
}

type ArticleResponse struct {
	article.Article
}

func NewArticleResponse(a article.Article) *ArticleResponse {
	return &ArticleResponse{Article: a}
}

func (rd *ArticleResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

func NewArticleListResponse(articles []article.Article) []render.Renderer {
	list := make([]render.Renderer, 0)
	for _, a := range articles {
		list = append(list, NewArticleResponse(a))
	}
	return list
}

type OrderReceiptResponse struct {
	article.OrderReceipt
}

func NewOrderReceiptResponse(receipt article.OrderReceipt) *OrderReceiptResponse {
	return &OrderReceiptResponse{OrderReceipt: receipt}
}

func (rd *OrderReceiptResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (rd *MessageResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}
