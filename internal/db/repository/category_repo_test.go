package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/question"
)

type mockCategoryStore struct {
	mock.Mock
}

func (m *mockCategoryStore) ListCategories(ctx context.Context) ([]sqlcgen.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]sqlcgen.Category), args.Error(1)
}

func (m *mockCategoryStore) GetCategory(ctx context.Context, id int64) (sqlcgen.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(sqlcgen.Category), args.Error(1)
}

func TestCategoryRepository_List(t *testing.T) {
	store := new(mockCategoryStore)
	repo := NewCategoryRepository(store)

	rows := []sqlcgen.Category{{ID: 2, Type: "Art"}, {ID: 1, Type: "Science"}}
	store.On("ListCategories", mock.Anything).Return(rows, nil)

	got, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []question.Category{{ID: 2, Type: "Art"}, {ID: 1, Type: "Science"}}, got)
	store.AssertExpectations(t)
}

func TestCategoryRepository_Get(t *testing.T) {
	store := new(mockCategoryStore)
	repo := NewCategoryRepository(store)

	store.On("GetCategory", mock.Anything, int64(3)).Return(sqlcgen.Category{ID: 3, Type: "Geography"}, nil)
	store.On("GetCategory", mock.Anything, int64(9)).Return(sqlcgen.Category{}, pgx.ErrNoRows)
	store.On("GetCategory", mock.Anything, int64(10)).Return(sqlcgen.Category{}, errors.New("broken pipe"))

	got, err := repo.Get(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, question.Category{ID: 3, Type: "Geography"}, got)

	_, err = repo.Get(context.Background(), 9)
	assert.ErrorIs(t, err, question.ErrCategoryNotFound)

	_, err = repo.Get(context.Background(), 10)
	assert.ErrorIs(t, err, question.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, question.ErrNotFound)
	store.AssertExpectations(t)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "plain", escapeLike("plain"))
	assert.Equal(t, `a\%b\_c\\d`, escapeLike(`a%b_c\d`))
}
