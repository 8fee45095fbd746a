package question

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRecorder struct {
	draws     int
	exhausted int
}

func (r *recordingRecorder) ObserveQuizDraw(exhausted bool) {
	r.draws++
	if exhausted {
		r.exhausted++
	}
}

func newTestService(store Store, opts ServiceOptions) *Service {
	return NewService(store, zerolog.New(io.Discard), opts)
}

func TestNewServiceZeroOptions(t *testing.T) {
	store := newMemoryStore(defaultCategories()...)
	store.seed(3)
	svc := newTestService(store, ServiceOptions{})
	assert.Equal(t, DefaultPageSize, svc.PageSize())

	q, err := svc.NextQuizQuestion(context.Background(), AllCategories, nil)
	require.NoError(t, err)
	require.NotNil(t, q)
}

func TestListQuestionsSeededExample(t *testing.T) {
	store := newMemoryStore(defaultCategories()...)
	store.seed(18)
	svc := newTestService(store, ServiceOptions{PageSize: 10})
	ctx := context.Background()

	page1, err := svc.ListQuestions(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, page1.Questions, 10)
	assert.Equal(t, 18, page1.Total)

	page2, err := svc.ListQuestions(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, page2.Questions, 8)
	assert.Greater(t, page2.Questions[0].ID, page1.Questions[9].ID)

	_, err = svc.ListQuestions(ctx, 3)
	assert.ErrorIs(t, err, ErrPageOutOfRange)

	_, err = svc.ListQuestions(ctx, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchWithNoMatchesRejectsFirstPage(t *testing.T) {
	store := newMemoryStore(defaultCategories()...)
	store.seed(5)
	svc := newTestService(store, ServiceOptions{})

	_, err := svc.Search(context.Background(), "zebra", 1)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
}

func TestSearchFindsSubstring(t *testing.T) {
	store := newMemoryStore(defaultCategories()...)
	store.seed(3)
	_, err := store.InsertQuestion(context.Background(), NewQuestion{Question: "What is the Title of Maya's autobiography?", Answer: "I Know Why", Category: 4, Difficulty: 2})
	require.NoError(t, err)
	svc := newTestService(store, ServiceOptions{})

	page, err := svc.Search(context.Background(), "title", 1)
	require.NoError(t, err)
	require.Len(t, page.Questions, 1)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, int64(4), page.Questions[0].ID)
}

func TestSearchEmptyTermMatchesAll(t *testing.T) {
	store := newMemoryStore(defaultCategories()...)
	store.seed(7)
	svc := newTestService(store, ServiceOptions{})

	page, err := svc.Search(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Equal(t, 7, page.Total)
}

func TestCreateIncreasesCountWithFreshID(t *testing.T) {
	store := newMemoryStore(defaultCategories()...)
	store.seed(4)
	svc := newTestService(store, ServiceOptions{})
	ctx := context.Background()

	before, err := svc.ListQuestions(ctx, 1)
	require.NoError(t, err)

	id, err := svc.Create(ctx, NewQuestion{Question: "X?", Answer: "Y", Difficulty: 1, Category: 1})
	require.NoError(t, err)
	for _, q := range before.Questions {
		assert.NotEqual(t, q.ID, id)
	}

	after, err := svc.ListQuestions(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, before.Total+1, after.Total)
}

func TestCreateSurfacesConstraintKind(t *testing.T) {
	svc := newTestService(newMemoryStore(defaultCategories()...), ServiceOptions{})

	_, err := svc.Create(context.Background(), NewQuestion{Question: "X?", Answer: "Y", Difficulty: 1, Category: 99})
	assert.ErrorIs(t, err, ErrConstraint)
	assert.Equal(t, "constraint", ErrorKind(err))
}

func TestDeleteRemovesQuestion(t *testing.T) {
	store := newMemoryStore(defaultCategories()...)
	store.seed(5)
	svc := newTestService(store, ServiceOptions{})
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, 3))

	_, err := store.GetQuestion(ctx, 3)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
	page, err := svc.ListQuestions(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)

	err = svc.Delete(ctx, 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePropagatesStoreFailure(t *testing.T) {
	store := newMemoryStore(defaultCategories()...)
	store.seed(1)
	store.failWrites = ErrStoreUnavailable
	svc := newTestService(store, ServiceOptions{})

	err := svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestQuestionsByCategory(t *testing.T) {
	store := newMemoryStore(defaultCategories()...)
	store.seed(30)
	svc := newTestService(store, ServiceOptions{PageSize: 10})
	ctx := context.Background()

	page, err := svc.QuestionsByCategory(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, page.Questions, 10)
	assert.Equal(t, 10, page.Total)

	page, err = svc.QuestionsByCategory(ctx, 6)
	require.NoError(t, err)
	assert.Empty(t, page.Questions)
	assert.Zero(t, page.Total)

	_, err = svc.QuestionsByCategory(ctx, 42)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestQuizDrawsExhaustPoolExactlyOnce(t *testing.T) {
	store := newMemoryStore(defaultCategories()...)
	store.seed(9)
	rec := &recordingRecorder{}
	svc := newTestService(store, ServiceOptions{Recorder: rec})
	ctx := context.Background()

	var previous []int64
	visited := map[int64]int{}
	for {
		q, err := svc.NextQuizQuestion(ctx, 2, previous)
		require.NoError(t, err)
		if q == nil {
			break
		}
		assert.Equal(t, int64(2), q.Category)
		visited[q.ID]++
		previous = append(previous, q.ID)
		require.LessOrEqual(t, len(previous), 3, "category 2 only holds three questions")
	}

	assert.Len(t, visited, 3)
	for id, n := range visited {
		assert.Equal(t, 1, n, "question %d drawn more than once", id)
	}
	assert.Equal(t, 4, rec.draws)
	assert.Equal(t, 1, rec.exhausted)
}

func TestQuizAllCategoriesExcludedReturnsNone(t *testing.T) {
	store := newMemoryStore(defaultCategories()...)
	store.seed(4)
	svc := newTestService(store, ServiceOptions{})

	q, err := svc.NextQuizQuestion(context.Background(), AllCategories, []int64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestQuizUnknownCategory(t *testing.T) {
	svc := newTestService(newMemoryStore(defaultCategories()...), ServiceOptions{})

	_, err := svc.NextQuizQuestion(context.Background(), 77, nil)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestQuizUsesInjectedSelector(t *testing.T) {
	store := newMemoryStore(defaultCategories()...)
	store.seed(6)
	svc := newTestService(store, ServiceOptions{
		Selector: NewSelector(WithRandom(func(n int) int { return n - 1 })),
	})

	q, err := svc.NextQuizQuestion(context.Background(), AllCategories, []int64{6})
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, int64(5), q.ID)
}
