package repository

import (
	"context"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/question"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Store is the Postgres-backed question.Store.
type Store struct {
	questions  *QuestionRepository
	categories *CategoryRepository
	db         pinger
}

var _ question.Store = (*Store)(nil)

// NewStore wires the repositories over one sqlc Queries handle. db is
// usually the *pgxpool.Pool the queries run on.
func NewStore(queries *sqlcgen.Queries, db pinger) *Store {
	return &Store{
		questions:  NewQuestionRepository(queries),
		categories: NewCategoryRepository(queries),
		db:         db,
	}
}

func (s *Store) ListCategories(ctx context.Context) ([]question.Category, error) {
	return s.categories.List(ctx)
}

func (s *Store) GetCategory(ctx context.Context, id int64) (question.Category, error) {
	return s.categories.Get(ctx, id)
}

func (s *Store) GetQuestion(ctx context.Context, id int64) (question.Question, error) {
	return s.questions.Get(ctx, id)
}

func (s *Store) CountQuestions(ctx context.Context, filter question.Filter) (int, error) {
	return s.questions.Count(ctx, filter)
}

func (s *Store) ListQuestions(ctx context.Context, filter question.Filter, limit, offset int) ([]question.Question, error) {
	return s.questions.List(ctx, filter, limit, offset)
}

func (s *Store) ListQuizCandidates(ctx context.Context, categoryID int64, excluded []int64) ([]question.Question, error) {
	return s.questions.QuizCandidates(ctx, categoryID, excluded)
}

func (s *Store) InsertQuestion(ctx context.Context, q question.NewQuestion) (int64, error) {
	return s.questions.Insert(ctx, q)
}

func (s *Store) DeleteQuestion(ctx context.Context, id int64) error {
	return s.questions.Delete(ctx, id)
}

func (s *Store) Ping(ctx context.Context) error {
	return translate("ping", s.db.Ping(ctx), nil)
}
