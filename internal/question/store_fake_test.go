package question

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// memoryStore is an in-process Store used by the package tests.
type memoryStore struct {
	mu         sync.Mutex
	nextID     int64
	questions  []Question
	categories []Category

	failWrites error
	failReads  error
}

func newMemoryStore(categories ...Category) *memoryStore {
	return &memoryStore{nextID: 1, categories: categories}
}

func defaultCategories() []Category {
	return []Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
		{ID: 4, Type: "History"},
		{ID: 5, Type: "Entertainment"},
		{ID: 6, Type: "Sports"},
	}
}

// seed inserts n questions cycling through the first three categories.
func (m *memoryStore) seed(n int) {
	for i := 0; i < n; i++ {
		_, _ = m.InsertQuestion(context.Background(), NewQuestion{
			Question:   fmt.Sprintf("Question number %d?", i+1),
			Answer:     fmt.Sprintf("Answer %d", i+1),
			Category:   int64(i%3 + 1),
			Difficulty: i%5 + 1,
		})
	}
}

func (m *memoryStore) ListCategories(ctx context.Context) ([]Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads != nil {
		return nil, m.failReads
	}
	out := slices.Clone(m.categories)
	slices.SortFunc(out, func(a, b Category) int { return strings.Compare(a.Type, b.Type) })
	return out, nil
}

func (m *memoryStore) GetCategory(ctx context.Context, id int64) (Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrCategoryNotFound
}

func (m *memoryStore) GetQuestion(ctx context.Context, id int64) (Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range m.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return Question{}, ErrQuestionNotFound
}

func (m *memoryStore) filtered(filter Filter) []Question {
	var out []Question
	for _, q := range m.questions {
		if filter.SearchTerm != nil && !strings.Contains(strings.ToLower(q.Question), strings.ToLower(*filter.SearchTerm)) {
			continue
		}
		if filter.CategoryID != nil && q.Category != *filter.CategoryID {
			continue
		}
		out = append(out, q)
	}
	return out
}

func (m *memoryStore) CountQuestions(ctx context.Context, filter Filter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads != nil {
		return 0, m.failReads
	}
	return len(m.filtered(filter)), nil
}

func (m *memoryStore) ListQuestions(ctx context.Context, filter Filter, limit, offset int) ([]Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads != nil {
		return nil, m.failReads
	}
	all := m.filtered(filter)
	if offset >= len(all) {
		return nil, nil
	}
	end := min(offset+limit, len(all))
	return slices.Clone(all[offset:end]), nil
}

func (m *memoryStore) ListQuizCandidates(ctx context.Context, categoryID int64, excluded []int64) ([]Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Question
	for _, q := range m.questions {
		if categoryID != AllCategories && q.Category != categoryID {
			continue
		}
		if slices.Contains(excluded, q.ID) {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (m *memoryStore) InsertQuestion(ctx context.Context, nq NewQuestion) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites != nil {
		return 0, m.failWrites
	}
	if !slices.ContainsFunc(m.categories, func(c Category) bool { return c.ID == nq.Category }) {
		return 0, fmt.Errorf("category %d: %w", nq.Category, ErrConstraint)
	}
	id := m.nextID
	m.nextID++
	m.questions = append(m.questions, Question{
		ID:         id,
		Question:   nq.Question,
		Answer:     nq.Answer,
		Category:   nq.Category,
		Difficulty: nq.Difficulty,
	})
	return id, nil
}

func (m *memoryStore) DeleteQuestion(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites != nil {
		return m.failWrites
	}
	idx := slices.IndexFunc(m.questions, func(q Question) bool { return q.ID == id })
	if idx < 0 {
		return ErrQuestionNotFound
	}
	m.questions = slices.Delete(m.questions, idx, idx+1)
	return nil
}

func (m *memoryStore) Ping(ctx context.Context) error {
	return nil
}
