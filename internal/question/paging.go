package question

import (
	"context"
	"fmt"
)

// Pager windows question listings into fixed-size pages ordered by id.
type Pager struct {
	store    Store
	pageSize int
}

// NewPager builds a pager; non-positive sizes fall back to DefaultPageSize.
func NewPager(store Store, pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager{store: store, pageSize: pageSize}
}

// PageSize reports the configured window size.
func (p *Pager) PageSize() int {
	return p.pageSize
}

// Window returns the [start, end) bounds of a 1-indexed page.
func Window(page, pageSize int) (start, end int) {
	start = pageSize * (page - 1)
	return start, start + pageSize
}

// TotalPages is ceil(count / pageSize).
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := count / pageSize
	if count%pageSize > 0 {
		pages++
	}
	return pages
}

// ValidatePage rejects pages outside [1, TotalPages]. With no eligible rows
// there are zero pages, so page 1 is rejected too.
func ValidatePage(page, count, pageSize int) error {
	if page < 1 || page > TotalPages(count, pageSize) {
		return fmt.Errorf("page %d of %d: %w", page, TotalPages(count, pageSize), ErrPageOutOfRange)
	}
	return nil
}

// Count returns the number of questions matching searchTerm (all when nil).
func (p *Pager) Count(ctx context.Context, searchTerm *string) (int, error) {
	return p.store.CountQuestions(ctx, Filter{SearchTerm: searchTerm})
}

// FetchPage returns one page of questions matching searchTerm.
func (p *Pager) FetchPage(ctx context.Context, searchTerm *string, page int) ([]Question, error) {
	return p.fetch(ctx, Filter{SearchTerm: searchTerm}, page)
}

// CountByCategory returns the number of questions in a category.
func (p *Pager) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	return p.store.CountQuestions(ctx, Filter{CategoryID: &categoryID})
}

// FetchPageByCategory returns one page of a category's questions.
func (p *Pager) FetchPageByCategory(ctx context.Context, categoryID int64, page int) ([]Question, error) {
	return p.fetch(ctx, Filter{CategoryID: &categoryID}, page)
}

func (p *Pager) fetch(ctx context.Context, filter Filter, page int) ([]Question, error) {
	if page < 1 {
		return nil, fmt.Errorf("page %d: %w", page, ErrPageOutOfRange)
	}
	start, end := Window(page, p.pageSize)
	return p.store.ListQuestions(ctx, filter, end-start, start)
}
