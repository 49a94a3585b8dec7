package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "conduit/internal/errors"
	"conduit/internal/model"
	"conduit/internal/repository"
)

// MockArticleRepository is a mock implementation of ArticleRepository.
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) Create(ctx context.Context, article *model.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) FindBySlug(ctx context.Context, slug string) (*model.Article, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Article), args.Error(1)
}

func (m *MockArticleRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockArticleRepository) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

func (m *MockArticleRepository) List(ctx context.Context, filter repository.ListFilter) ([]model.Article, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Article), args.Get(1).(int64), args.Error(2)
}

func (m *MockArticleRepository) AddFavorite(ctx context.Context, userID, articleID uint) (bool, error) {
	args := m.Called(ctx, userID, articleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockArticleRepository) RemoveFavorite(ctx context.Context, userID, articleID uint) (bool, error) {
	args := m.Called(ctx, userID, articleID)
	return args.Bool(0), args.Error(1)
}

// MockTagService is a mock implementation of TagService.
type MockTagService struct {
	mock.Mock
}

func (m *MockTagService) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTagService) Ensure(ctx context.Context, names []string) error {
	args := m.Called(ctx, names)
	return args.Error(0)
}

func TestSlug(t *testing.T) {
	slug := Slug("Hello World")
	assert.True(t, strings.HasPrefix(slug, "hello-world_"), "slug %q should start with hello-world_", slug)

	suffix := strings.TrimPrefix(slug, "hello-world_")
	assert.NotEmpty(t, suffix)
	for _, r := range suffix {
		assert.True(t, r >= '0' && r <= '9' || r >= 'a' && r <= 'z', "suffix %q should be base36", suffix)
	}

	assert.True(t, strings.HasPrefix(Slug("  Go, Go & Go!  "), "go-go-go_"))
	assert.NotEqual(t, Slug("Hello World"), Slug("Hello World"), "suffix should randomize")
}

func TestArticleService_Create(t *testing.T) {
	articles := new(MockArticleRepository)
	users := new(MockUserRepository)
	tags := new(MockTagService)

	var createdSlug string
	articles.On("Create", mock.Anything, mock.AnythingOfType("*model.Article")).
		Run(func(args mock.Arguments) {
			article := args.Get(1).(*model.Article)
			article.ID = 10
			createdSlug = article.Slug
		}).Return(nil)
	tags.On("Ensure", mock.Anything, []string{"intro", "golang"}).Return(nil)
	articles.On("FindBySlug", mock.Anything, mock.AnythingOfType("string")).
		Return(&model.Article{ID: 10, Title: "Hello World", AuthorID: 1, Author: model.User{ID: 1, Username: "jane"}}, nil)

	svc := NewArticleService(articles, users, tags)
	article, err := svc.Create(context.Background(), 1, ArticleInput{
		Title:       "Hello World",
		Description: "desc",
		Body:        "body",
		TagList:     []string{"intro", "golang"},
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(1), article.AuthorID)
	assert.True(t, strings.HasPrefix(createdSlug, "hello-world_"))
	articles.AssertExpectations(t)
	tags.AssertExpectations(t)
}

func TestArticleService_GetBySlug_NotFound(t *testing.T) {
	articles := new(MockArticleRepository)
	articles.On("FindBySlug", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	svc := NewArticleService(articles, new(MockUserRepository), new(MockTagService))
	article, err := svc.GetBySlug(context.Background(), "missing")

	assert.ErrorIs(t, err, apperrors.ErrArticleNotFound)
	assert.Nil(t, article)
}

func TestArticleService_Update(t *testing.T) {
	owned := &model.Article{ID: 5, Slug: "hello_abc", Title: "Hello", AuthorID: 1}

	tests := []struct {
		name          string
		userID        uint
		setupMock     func(*MockArticleRepository)
		expectedError error
	}{
		{
			name:   "owner updates",
			userID: 1,
			setupMock: func(m *MockArticleRepository) {
				m.On("FindBySlug", mock.Anything, "hello_abc").Return(owned, nil)
				m.On("UpdateFields", mock.Anything, uint(5), map[string]interface{}{"title": "New Title"}).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:   "non-owner is forbidden",
			userID: 2,
			setupMock: func(m *MockArticleRepository) {
				m.On("FindBySlug", mock.Anything, "hello_abc").Return(owned, nil)
			},
			expectedError: apperrors.ErrNotArticleAuthor,
		},
		{
			name:   "unknown slug",
			userID: 1,
			setupMock: func(m *MockArticleRepository) {
				m.On("FindBySlug", mock.Anything, "hello_abc").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrArticleNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			articles := new(MockArticleRepository)
			tt.setupMock(articles)

			svc := NewArticleService(articles, new(MockUserRepository), new(MockTagService))
			title := "New Title"
			_, err := svc.Update(context.Background(), "hello_abc", ArticleUpdate{Title: &title}, tt.userID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			articles.AssertExpectations(t)
		})
	}
}

func TestArticleService_Delete(t *testing.T) {
	owned := &model.Article{ID: 5, Slug: "hello_abc", AuthorID: 1}

	t.Run("owner deletes", func(t *testing.T) {
		articles := new(MockArticleRepository)
		articles.On("FindBySlug", mock.Anything, "hello_abc").Return(owned, nil)
		articles.On("DeleteBySlug", mock.Anything, "hello_abc").Return(nil)

		svc := NewArticleService(articles, new(MockUserRepository), new(MockTagService))
		assert.NoError(t, svc.Delete(context.Background(), "hello_abc", 1))
		articles.AssertExpectations(t)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		articles := new(MockArticleRepository)
		articles.On("FindBySlug", mock.Anything, "hello_abc").Return(owned, nil)

		svc := NewArticleService(articles, new(MockUserRepository), new(MockTagService))
		assert.ErrorIs(t, svc.Delete(context.Background(), "hello_abc", 2), apperrors.ErrNotArticleAuthor)
		articles.AssertExpectations(t)
	})

	t.Run("unknown slug", func(t *testing.T) {
		articles := new(MockArticleRepository)
		articles.On("FindBySlug", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

		svc := NewArticleService(articles, new(MockUserRepository), new(MockTagService))
		assert.ErrorIs(t, svc.Delete(context.Background(), "missing", 1), apperrors.ErrArticleNotFound)
	})
}

func TestArticleService_List(t *testing.T) {
	page := []model.Article{
		{ID: 5, Slug: "e_x", AuthorID: 1},
		{ID: 4, Slug: "d_x", AuthorID: 1},
	}

	t.Run("limit and offset pass through, count stays total", func(t *testing.T) {
		articles := new(MockArticleRepository)
		limit, offset := 2, 0
		articles.On("List", mock.Anything, repository.ListFilter{Limit: &limit, Offset: &offset}).
			Return(page, int64(5), nil)

		svc := NewArticleService(articles, new(MockUserRepository), new(MockTagService))
		got, total, err := svc.List(context.Background(), ListQuery{Limit: &limit, Offset: &offset})

		assert.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, int64(5), total)
		articles.AssertExpectations(t)
	})

	t.Run("author filter resolves username", func(t *testing.T) {
		articles := new(MockArticleRepository)
		users := new(MockUserRepository)
		users.On("FindByUsername", mock.Anything, "jane").Return(&model.User{ID: 1, Username: "jane"}, nil)
		authorID := uint(1)
		articles.On("List", mock.Anything, repository.ListFilter{AuthorID: &authorID}).
			Return(page, int64(2), nil)

		svc := NewArticleService(articles, users, new(MockTagService))
		_, total, err := svc.List(context.Background(), ListQuery{Author: "jane"})

		assert.NoError(t, err)
		assert.Equal(t, int64(2), total)
		articles.AssertExpectations(t)
	})

	t.Run("unknown author yields empty result", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

		svc := NewArticleService(new(MockArticleRepository), users, new(MockTagService))
		got, total, err := svc.List(context.Background(), ListQuery{Author: "ghost"})

		assert.NoError(t, err)
		assert.Empty(t, got)
		assert.Zero(t, total)
	})

	t.Run("favorited filter restricts to favorite ids", func(t *testing.T) {
		articles := new(MockArticleRepository)
		users := new(MockUserRepository)
		users.On("FindByUsername", mock.Anything, "john").Return(&model.User{ID: 2, Username: "john"}, nil)
		users.On("FavoriteArticleIDs", mock.Anything, uint(2)).Return([]uint{4, 5}, nil)
		articles.On("List", mock.Anything, repository.ListFilter{IDs: []uint{4, 5}}).
			Return(page, int64(2), nil)

		svc := NewArticleService(articles, users, new(MockTagService))
		_, total, err := svc.List(context.Background(), ListQuery{Favorited: "john"})

		assert.NoError(t, err)
		assert.Equal(t, int64(2), total)
		articles.AssertExpectations(t)
	})

	t.Run("favoriting user with no favorites yields empty result", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByUsername", mock.Anything, "john").Return(&model.User{ID: 2, Username: "john"}, nil)
		users.On("FavoriteArticleIDs", mock.Anything, uint(2)).Return([]uint{}, nil)

		svc := NewArticleService(new(MockArticleRepository), users, new(MockTagService))
		got, total, err := svc.List(context.Background(), ListQuery{Favorited: "john"})

		assert.NoError(t, err)
		assert.Empty(t, got)
		assert.Zero(t, total)
	})
}
