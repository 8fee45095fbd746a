package repository

import (
	"context"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/question"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]sqlcgen.Category, error)
	GetCategory(ctx context.Context, id int64) (sqlcgen.Category, error)
}

// CategoryRepository wraps sqlc queries for the read-only category table.
type CategoryRepository struct {
	store categoryStore
}

// NewCategoryRepository wraps the sqlc category queries.
func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// List returns every category ordered by type.
func (r *CategoryRepository) List(ctx context.Context) ([]question.Category, error) {
	rows, err := r.store.ListCategories(ctx)
	if err != nil {
		return nil, translate("list categories", err, nil)
	}
	out := make([]question.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, question.Category{ID: row.ID, Type: row.Type})
	}
	return out, nil
}

// Get fetches a single category.
func (r *CategoryRepository) Get(ctx context.Context, id int64) (question.Category, error) {
	row, err := r.store.GetCategory(ctx, id)
	if err != nil {
		return question.Category{}, translate("get category", err, question.ErrCategoryNotFound)
	}
	return question.Category{ID: row.ID, Type: row.Type}, nil
}
