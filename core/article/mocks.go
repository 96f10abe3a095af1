package article

import "context"

type MockArticleService struct {
	CreateFunc func(ctx context.Context, req ArticleRequest) (Article, error)
	UpdateFunc func(ctx context.Context, id string, req ArticleRequest) (Article, error)
	DeleteFunc func(ctx context.Context, id string) (string, error)
	GetFunc    func(ctx context.Context, id string) (Article, error)
	GetAllFunc func(ctx context.Context) ([]Article, error)
	OrderFunc  func(ctx context.Context, id string, amount int) (OrderReceipt, error)
}

func NewMockArticleService() MockArticleService {
	return MockArticleService{
		CreateFunc: func(ctx context.Context, req ArticleRequest) (Article, error) { return Article{}, nil },
		UpdateFunc: func(ctx context.Context, id string, req ArticleRequest) (Article, error) { return Article{}, nil },
		DeleteFunc: func(ctx context.Context, id string) (string, error) { return "", nil },
		GetFunc:    func(ctx context.Context, id string) (Article, error) { return Article{}, nil },
		GetAllFunc: func(ctx context.Context) ([]Article, error) { return []Article{}, nil },
		OrderFunc:  func(ctx context.Context, id string, amount int) (OrderReceipt, error) { return OrderReceipt{}, nil },
	}
}

func (m *MockArticleService) Create(ctx context.Context, req ArticleRequest) (Article, error) {
	return m.CreateFunc(ctx, req)
}

func (m *MockArticleService) Update(ctx context.Context, id string, req ArticleRequest) (Article, error) {
	return m.UpdateFunc(ctx, id, req)
}

func (m *MockArticleService) Delete(ctx context.Context, id string) (string, error) {
	return m.DeleteFunc(ctx, id)
}

func (m *MockArticleService) Get(ctx context.Context, id string) (Article, error) {
	return m.GetFunc(ctx, id)
}

func (m *MockArticleService) GetAll(ctx context.Context) ([]Article, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockArticleService) Order(ctx context.Context, id string, amount int) (OrderReceipt, error) {
	return m.OrderFunc(ctx, id, amount)
}
