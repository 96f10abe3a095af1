package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-chi/chi"

	"stocktrack/api"
	"stocktrack/core/article"
)

func setupArticleTestServer() (*httptest.Server, *article.MockArticleService) {
	mockSvc := article.NewMockArticleService()
	artApi := api.NewArticleApi(&mockSvc)
	r := chi.NewRouter()
	artApi.ConfigureRouter(r)
	ts := httptest.NewServer(r)

	return ts, &mockSvc
}

func TestArticleList(t *testing.T) {
	ts, mockSvc := setupArticleTestServer()
	defer ts.Close()

	tests := []struct {
		name string

		articles   []article.Article
		serviceErr error

		wantArticles   []article.Article
		wantErr        *api.ErrResponse
		wantStatusCode int
	}{
		{
			name:           "articles are listed",
			articles:       getTestArticles(),
			wantArticles:   getTestArticles(),
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "no articles",
			serviceErr:     article.NotFoundError{Reason: "No articles found."},
			wantErr:        errResponse("Resource not found.", "No articles found."),
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "unexpected service error",
			serviceErr:     errors.New("something bad happened"),
			wantErr:        api.ErrInternalServer,
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mockSvc.GetAllFunc = func(ctx context.Context) ([]article.Article, error) {
				return test.articles, test.serviceErr
			}

			res, err := http.Get(ts.URL)
			if err != nil {
				t.Fatal(err)
			}

			if res.StatusCode != test.wantStatusCode {
				t.Errorf("status code got=%d want=%d", res.StatusCode, test.wantStatusCode)
			}

			if test.wantErr == nil {
				got := []article.Article{}
				unmarshal(res, &got, t)

				if !reflect.DeepEqual(got, test.wantArticles) {
					t.Errorf("articles\n got=%+v\nwant=%+v", got, test.wantArticles)
				}
			} else {
				verifyErrResponse(res, test.wantErr, t)
			}
		})
	}
}

func TestArticleCreate(t *testing.T) {
	ts, mockSvc := setupArticleTestServer()
	defer ts.Close()

	tests := []struct {
		name string

		request    interface{}
		created    article.Article
		serviceErr error

		wantArticle    *article.Article
		wantErr        *api.ErrResponse
		wantStatusCode int
	}{
		{
			name:           "article is created",
			request:        createArticleRequest("Steel", 7, 10, "kg"),
			created:        getTestArticles()[0],
			wantArticle:    ptrArticle(getTestArticles()[0]),
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "empty body",
			request:        map[string]interface{}{},
			wantErr:        errResponse("Invalid request.", "missing required Article fields"),
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "unknown unit",
			request:        createArticleRequest("Steel", 7, 10, "bucket"),
			wantErr:        errResponse("Invalid request.", "invalid unit"),
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "missing material type",
			request:        createArticleRequest("", 7, 10, "kg"),
			serviceErr:     article.ValidationError{Reason: "MaterialType is required."},
			wantErr:        errResponse("Invalid request.", "MaterialType is required."),
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "duplicate material type",
			request:        createArticleRequest("Steel", 7, 10, "kg"),
			serviceErr:     article.ConflictError{Reason: "Article with MaterialType Steel already exists."},
			wantErr:        errResponse("Conflict.", "Article with MaterialType Steel already exists."),
			wantStatusCode: http.StatusConflict,
		},
		{
			name:           "storage failure",
			request:        createArticleRequest("Steel", 7, 10, "kg"),
			serviceErr:     article.PersistenceError{Reason: "Failed to add the Article: Steel."},
			wantErr:        errResponse("Internal server error.", "Failed to add the Article: Steel."),
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mockSvc.CreateFunc = func(ctx context.Context, req article.ArticleRequest) (article.Article, error) {
				return test.created, test.serviceErr
			}

			res := post(ts.URL, test.request, t)

			if res.StatusCode != test.wantStatusCode {
				t.Errorf("status code got=%d want=%d", res.StatusCode, test.wantStatusCode)
			}

			if test.wantErr == nil {
				got := article.Article{}
				unmarshal(res, &got, t)

				if !reflect.DeepEqual(got, *test.wantArticle) {
					t.Errorf("article\n got=%+v\nwant=%+v", got, *test.wantArticle)
				}
			} else {
				verifyErrResponse(res, test.wantErr, t)
			}
		})
	}
}

func TestArticleGet(t *testing.T) {
	ts, mockSvc := setupArticleTestServer()
	defer ts.Close()

	tests := []struct {
		name string

		id         string
		found      article.Article
		serviceErr error

		wantArticle    *article.Article
		wantErr        *api.ErrResponse
		wantStatusCode int
	}{
		{
			name:           "article is found",
			id:             "id1",
			found:          getTestArticles()[0],
			wantArticle:    ptrArticle(getTestArticles()[0]),
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "article not found",
			id:             "missing",
			serviceErr:     article.NotFoundError{Reason: "Article not found."},
			wantErr:        errResponse("Resource not found.", "Article not found."),
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "unexpected service error",
			id:             "id1",
			serviceErr:     errors.New("something bad happened"),
			wantErr:        api.ErrInternalServer,
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mockSvc.GetFunc = func(ctx context.Context, id string) (article.Article, error) {
				return test.found, test.serviceErr
			}

			res, err := http.Get(ts.URL + "/" + test.id)
			if err != nil {
				t.Fatal(err)
			}

			if res.StatusCode != test.wantStatusCode {
				t.Errorf("status code got=%d want=%d", res.StatusCode, test.wantStatusCode)
			}

			if test.wantErr == nil {
				got := article.Article{}
				unmarshal(res, &got, t)

				if !reflect.DeepEqual(got, *test.wantArticle) {
					t.Errorf("article\n got=%+v\nwant=%+v", got, *test.wantArticle)
				}
			} else {
				verifyErrResponse(res, test.wantErr, t)
			}
		})
	}
}

func TestArticleUpdate(t *testing.T) {
	ts, mockSvc := setupArticleTestServer()
	defer ts.Close()

	tests := []struct {
		name string

		id         string
		request    interface{}
		updated    article.Article
		serviceErr error

		wantErr        *api.ErrResponse
		wantStatusCode int
	}{
		{
			name:           "article is updated",
			id:             "id1",
			request:        createArticleRequest("Steel", 10, 10, "kg"),
			updated:        getTestArticles()[0],
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "article not found",
			id:             "missing",
			request:        createArticleRequest("Steel", 10, 10, "kg"),
			serviceErr:     article.NotFoundError{Reason: "Article with Id missing not found."},
			wantErr:        errResponse("Resource not found.", "Article with Id missing not found."),
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "amount exceeds capacity",
			id:             "id1",
			request:        createArticleRequest("Steel", 11, 10, "kg"),
			serviceErr:     article.ConflictError{Reason: "Amount cannot exceed FullAmount."},
			wantErr:        errResponse("Conflict.", "Amount cannot exceed FullAmount."),
			wantStatusCode: http.StatusConflict,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mockSvc.UpdateFunc = func(ctx context.Context, id string, req article.ArticleRequest) (article.Article, error) {
				return test.updated, test.serviceErr
			}

			res := put(ts.URL+"/"+test.id, test.request, t)

			if res.StatusCode != test.wantStatusCode {
				t.Errorf("status code got=%d want=%d", res.StatusCode, test.wantStatusCode)
			}

			if test.wantErr != nil {
				verifyErrResponse(res, test.wantErr, t)
			}
		})
	}
}

func TestArticleDelete(t *testing.T) {
	ts, mockSvc := setupArticleTestServer()
	defer ts.Close()

	tests := []struct {
		name string

		id         string
		message    string
		serviceErr error

		wantErr        *api.ErrResponse
		wantStatusCode int
	}{
		{
			name:           "article is deleted",
			id:             "id1",
			message:        "Article Steel was deleted successfully.",
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "article not found",
			id:             "missing",
			serviceErr:     article.NotFoundError{Reason: "Article with Id missing not found."},
			wantErr:        errResponse("Resource not found.", "Article with Id missing not found."),
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "storage failure",
			id:             "id1",
			serviceErr:     article.PersistenceError{Reason: "Failed to delete Article Steel."},
			wantErr:        errResponse("Internal server error.", "Failed to delete Article Steel."),
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mockSvc.DeleteFunc = func(ctx context.Context, id string) (string, error) {
				return test.message, test.serviceErr
			}

			req, err := http.NewRequest(http.MethodDelete, ts.URL+"/"+test.id, nil)
			if err != nil {
				t.Fatal(err)
			}
			res, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatal(err)
			}

			if res.StatusCode != test.wantStatusCode {
				t.Errorf("status code got=%d want=%d", res.StatusCode, test.wantStatusCode)
			}

			if test.wantErr == nil {
				got := api.MessageResponse{}
				unmarshal(res, &got, t)

				if got.Message != test.message {
					t.Errorf("message got=%q want=%q", got.Message, test.message)
				}
			} else {
				verifyErrResponse(res, test.wantErr, t)
			}
		})
	}
}

func TestArticleOrder(t *testing.T) {
	ts, mockSvc := setupArticleTestServer()
	defer ts.Close()

	tests := []struct {
		name string

		id         string
		amount     int
		receipt    article.OrderReceipt
		serviceErr error

		wantErr        *api.ErrResponse
		wantStatusCode int
	}{
		{
			name:           "order is placed",
			id:             "id1",
			amount:         1,
			receipt:        article.OrderReceipt{Article: getTestArticles()[0]},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "zero amount",
			id:             "id1",
			amount:         0,
			serviceErr:     article.ValidationError{Reason: "Order amount must be greater than zero."},
			wantErr:        errResponse("Invalid request.", "Order amount must be greater than zero."),
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "article not found",
			id:             "missing",
			amount:         1,
			serviceErr:     article.NotFoundError{Reason: "Article with the given Id was not found."},
			wantErr:        errResponse("Resource not found.", "Article with the given Id was not found."),
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:       "order exceeds remaining capacity",
			id:         "id1",
			amount:     5,
			serviceErr: article.ConflictError{Reason: "Cannot order 5 piece. Only 3 piece can be ordered to reach full capacity."},
			wantErr: errResponse("Conflict.",
				"Cannot order 5 piece. Only 3 piece can be ordered to reach full capacity."),
			wantStatusCode: http.StatusConflict,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			gotAmount := -1
			mockSvc.OrderFunc = func(ctx context.Context, id string, amount int) (article.OrderReceipt, error) {
				gotAmount = amount
				return test.receipt, test.serviceErr
			}

			res := put(ts.URL+"/"+test.id+"/order", api.OrderArticleRequest{Amount: test.amount}, t)

			if res.StatusCode != test.wantStatusCode {
				t.Errorf("status code got=%d want=%d", res.StatusCode, test.wantStatusCode)
			}
			if gotAmount != test.amount {
				t.Errorf("amount got=%d want=%d", gotAmount, test.amount)
			}

			if test.wantErr == nil {
				got := article.OrderReceipt{}
				unmarshal(res, &got, t)

				if !reflect.DeepEqual(got.Article, test.receipt.Article) {
					t.Errorf("receipt article\n got=%+v\nwant=%+v", got.Article, test.receipt.Article)
				}
			} else {
				verifyErrResponse(res, test.wantErr, t)
			}
		})
	}
}

func createArticleRequest(materialType string, amount, fullAmount int, unit string) api.CreateArticleRequest {
	return api.CreateArticleRequest{
		ArticleRequest: &article.ArticleRequest{
			MaterialType: materialType,
			Amount:       amount,
			FullAmount:   fullAmount,
			Unit:         article.Unit(unit),
		},
	}
}

func errResponse(statusText, errorText string) *api.ErrResponse {
	return &api.ErrResponse{StatusText: statusText, ErrorText: errorText}
}

func ptrArticle(a article.Article) *article.Article {
	return &a
}

func getTestArticles() []article.Article {
	return []article.Article{
		{ID: "id1", MaterialType: "Steel", Amount: 7, FullAmount: 10, Unit: article.UnitKilogram, Status: article.StatusGood},
		{ID: "id2", MaterialType: "Copper wire", Amount: 0, FullAmount: 50, Unit: article.UnitMeter, Status: article.StatusEmpty},
		{ID: "id3", MaterialType: "Bolts", Amount: 200, FullAmount: 200, Unit: article.UnitPiece, Status: article.StatusFull},
	}
}

func verifyErrResponse(res *http.Response, want *api.ErrResponse, t *testing.T) {
	t.Helper()

	got := &api.ErrResponse{}
	unmarshal(res, got, t)

	if got.StatusText != want.StatusText {
		t.Errorf("status text got=%s want=%s", got.StatusText, want.StatusText)
	}
	if got.ErrorText != want.ErrorText {
		t.Errorf("error text got=%s want=%s", got.ErrorText, want.ErrorText)
	}
}

func unmarshal(res *http.Response, v interface{}, t *testing.T) {
	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	err = json.Unmarshal(body, v)
	if err != nil {
		t.Fatal(err)
	}
}

func put(url string, request interface{}, t *testing.T) *http.Response {
	return sendRequest(http.MethodPut, url, request, t)
}

func post(url string, request interface{}, t *testing.T) *http.Response {
	return sendRequest(http.MethodPost, url, request, t)
}

func sendRequest(method, url string, request interface{}, t *testing.T) *http.Response {
	body, err := json.Marshal(request)
	if err != nil {
		t.Fatal(err)
	}

	req, err := http.NewRequest(method, url, bytes.NewBuffer(body))
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return res
}
