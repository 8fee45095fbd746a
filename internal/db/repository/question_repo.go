package repository

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5/pgtype"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/question"
)

type questionStore interface {
	GetQuestion(ctx context.Context, id int64) (sqlcgen.Question, error)
	CountQuestions(ctx context.Context, arg sqlcgen.CountQuestionsParams) (int64, error)
	ListQuestions(ctx context.Context, arg sqlcgen.ListQuestionsParams) ([]sqlcgen.Question, error)
	ListQuizCandidates(ctx context.Context, arg sqlcgen.ListQuizCandidatesParams) ([]sqlcgen.Question, error)
	InsertQuestion(ctx context.Context, arg sqlcgen.InsertQuestionParams) (int64, error)
	DeleteQuestion(ctx context.Context, id int64) (int64, error)
}

// QuestionRepository wraps sqlc queries for question access.
type QuestionRepository struct {
	store questionStore
}

// NewQuestionRepository wraps the sqlc question queries.
func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// Get fetches a question by id.
func (r *QuestionRepository) Get(ctx context.Context, id int64) (question.Question, error) {
	row, err := r.store.GetQuestion(ctx, id)
	if err != nil {
		return question.Question{}, translate("get question", err, question.ErrQuestionNotFound)
	}
	return toDomain(row), nil
}

// Count returns the number of questions matching filter.
func (r *QuestionRepository) Count(ctx context.Context, filter question.Filter) (int, error) {
	search, category := filterParams(filter)
	n, err := r.store.CountQuestions(ctx, sqlcgen.CountQuestionsParams{
		Search:   search,
		Category: category,
	})
	if err != nil {
		return 0, translate("count questions", err, nil)
	}
	return int(n), nil
}

// List returns up to limit questions matching filter, skipping offset, by ascending id.
func (r *QuestionRepository) List(ctx context.Context, filter question.Filter, limit, offset int) ([]question.Question, error) {
	search, category := filterParams(filter)
	rows, err := r.store.ListQuestions(ctx, sqlcgen.ListQuestionsParams{
		Search:   search,
		Category: category,
		Limit:    int32(limit),
		Offset:   int32(offset),
	})
	if err != nil {
		return nil, translate("list questions", err, nil)
	}
	return toDomainList(rows), nil
}

// QuizCandidates returns every question in category (all when zero) whose
// id is not in excluded.
func (r *QuestionRepository) QuizCandidates(ctx context.Context, categoryID int64, excluded []int64) ([]question.Question, error) {
	if excluded == nil {
		// pgx encodes a nil slice as NULL, which would exclude every row
		excluded = []int64{}
	}
	rows, err := r.store.ListQuizCandidates(ctx, sqlcgen.ListQuizCandidatesParams{
		Category: categoryID,
		Excluded: excluded,
	})
	if err != nil {
		return nil, translate("list quiz candidates", err, nil)
	}
	return toDomainList(rows), nil
}

// Insert stores a new question and returns its id. A difficulty the
// INTEGER column cannot hold is ErrConstraint.
func (r *QuestionRepository) Insert(ctx context.Context, q question.NewQuestion) (int64, error) {
	if q.Difficulty < math.MinInt32 || q.Difficulty > math.MaxInt32 {
		return 0, fmt.Errorf("insert question: difficulty %d out of range: %w", q.Difficulty, question.ErrConstraint)
	}
	id, err := r.store.InsertQuestion(ctx, sqlcgen.InsertQuestionParams{
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: int32(q.Difficulty),
	})
	if err != nil {
		return 0, translate("insert question", err, nil)
	}
	return id, nil
}

// Delete removes a question; a missing row is ErrQuestionNotFound.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.store.DeleteQuestion(ctx, id)
	if err != nil {
		return translate("delete question", err, nil)
	}
	if n == 0 {
		return fmt.Errorf("delete question %d: %w", id, question.ErrQuestionNotFound)
	}
	return nil
}

func filterParams(filter question.Filter) (pgtype.Text, pgtype.Int8) {
	var (
		search   pgtype.Text
		category pgtype.Int8
	)
	if filter.SearchTerm != nil {
		search = pgtype.Text{String: escapeLike(*filter.SearchTerm), Valid: true}
	}
	if filter.CategoryID != nil {
		category = pgtype.Int8{Int64: *filter.CategoryID, Valid: true}
	}
	return search, category
}

func toDomain(row sqlcgen.Question) question.Question {
	return question.Question{
		ID:         row.ID,
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   row.Category,
		Difficulty: int(row.Difficulty),
	}
}

func toDomainList(rows []sqlcgen.Question) []question.Question {
	out := make([]question.Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out
}
