package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"conduit/internal/model"
)

// MockTagRepository is a mock implementation of TagRepository.
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) List(ctx context.Context) ([]model.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockTagRepository) UpsertNames(ctx context.Context, names []string) error {
	args := m.Called(ctx, names)
	return args.Error(0)
}

func TestTagService_List(t *testing.T) {
	repo := new(MockTagRepository)
	repo.On("List", mock.Anything).Return([]model.Tag{{Name: "golang"}, {Name: "intro"}}, nil)

	svc := NewTagService(repo, nil)
	names, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"golang", "intro"}, names)
	repo.AssertExpectations(t)
}

func TestTagService_Ensure(t *testing.T) {
	repo := new(MockTagRepository)
	repo.On("UpsertNames", mock.Anything, []string{"golang"}).Return(nil)

	svc := NewTagService(repo, nil)
	assert.NoError(t, svc.Ensure(context.Background(), []string{"golang"}))
	assert.NoError(t, svc.Ensure(context.Background(), nil), "empty input is a no-op")
	repo.AssertExpectations(t)
}
