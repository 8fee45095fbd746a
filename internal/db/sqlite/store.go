// Package sqlite is the single-file question.Store used for local runs and
// store-level tests.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

//go:embed schema.sql
var schemaSQL string

//go:embed seed.sql
var seedSQL string

// driverName is go-sqlite3 plus a Unicode-aware casefold(text) function.
// sqlite's LOWER folds ASCII only.
const driverName = "sqlite3_trivia"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(c *sqlite3.SQLiteConn) error {
			return c.RegisterFunc("casefold", strings.ToLower, true)
		},
	})
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

// Store implements question.Store over database/sql via sqlx.
type Store struct {
	db *sqlx.DB
}

var _ question.Store = (*Store)(nil)

type questionRow struct {
	ID         int64  `db:"id"`
	Question   string `db:"question"`
	Answer     string `db:"answer"`
	Category   int64  `db:"category"`
	Difficulty int    `db:"difficulty"`
}

type categoryRow struct {
	ID   int64  `db:"id"`
	Type string `db:"type"`
}

// Open connects to the database at path (":memory:" works), creates the
// schema and, when seed is set, loads the default categories and questions
// into an empty database.
func Open(ctx context.Context, path string, seed bool) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		path = "trivia.db"
	}
	db, err := sqlx.ConnectContext(ctx, driverName, path)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	// sqlite allows one writer; :memory: databases are also per-connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{"PRAGMA foreign_keys = ON", "PRAGMA busy_timeout = 5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	if seed {
		if _, err := db.ExecContext(ctx, seedSQL); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("seed trivia: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ListCategories(ctx context.Context) ([]question.Category, error) {
	var rows []categoryRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT id, type FROM categories ORDER BY type`); err != nil {
		return nil, translate("list categories", err, nil)
	}
	out := make([]question.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, question.Category{ID: row.ID, Type: row.Type})
	}
	return out, nil
}

func (s *Store) GetCategory(ctx context.Context, id int64) (question.Category, error) {
	var row categoryRow
	if err := s.db.GetContext(ctx, &row, `SELECT id, type FROM categories WHERE id = ?`, id); err != nil {
		return question.Category{}, translate("get category", err, question.ErrCategoryNotFound)
	}
	return question.Category{ID: row.ID, Type: row.Type}, nil
}

func (s *Store) GetQuestion(ctx context.Context, id int64) (question.Question, error) {
	var row questionRow
	err := s.db.GetContext(ctx, &row,
		`SELECT id, question, answer, category, difficulty FROM questions WHERE id = ?`, id)
	if err != nil {
		return question.Question{}, translate("get question", err, question.ErrQuestionNotFound)
	}
	return row.toDomain(), nil
}

func (s *Store) CountQuestions(ctx context.Context, filter question.Filter) (int, error) {
	where, args := filterClause(filter)
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT count(*) FROM questions`+where, args...); err != nil {
		return 0, translate("count questions", err, nil)
	}
	return n, nil
}

func (s *Store) ListQuestions(ctx context.Context, filter question.Filter, limit, offset int) ([]question.Question, error) {
	where, args := filterClause(filter)
	query := `SELECT id, question, answer, category, difficulty FROM questions` + where +
		` ORDER BY id LIMIT ? OFFSET ?`
	var rows []questionRow
	if err := s.db.SelectContext(ctx, &rows, query, append(args, limit, offset)...); err != nil {
		return nil, translate("list questions", err, nil)
	}
	return toDomainList(rows), nil
}

func (s *Store) ListQuizCandidates(ctx context.Context, categoryID int64, excluded []int64) ([]question.Question, error) {
	var (
		clauses []string
		args    []interface{}
	)
	if categoryID != question.AllCategories {
		clauses = append(clauses, "category = ?")
		args = append(args, categoryID)
	}
	query := `SELECT id, question, answer, category, difficulty FROM questions`
	if len(excluded) > 0 {
		// sqlx.In rejects empty slices, so the clause only exists when needed
		inQuery, inArgs, err := sqlx.In("id NOT IN (?)", excluded)
		if err != nil {
			return nil, fmt.Errorf("list quiz candidates: %w", err)
		}
		clauses = append(clauses, inQuery)
		args = append(args, inArgs...)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id"

	var rows []questionRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, translate("list quiz candidates", err, nil)
	}
	return toDomainList(rows), nil
}

func (s *Store) InsertQuestion(ctx context.Context, q question.NewQuestion) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO questions (question, answer, category, difficulty) VALUES (?, ?, ?, ?)`,
		q.Question, q.Answer, q.Category, q.Difficulty)
	if err != nil {
		return 0, translate("insert question", err, nil)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, translate("insert question", err, nil)
	}
	return id, nil
}

func (s *Store) DeleteQuestion(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return translate("delete question", err, nil)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return translate("delete question", err, nil)
	}
	if n == 0 {
		return fmt.Errorf("delete question %d: %w", id, question.ErrQuestionNotFound)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return translate("ping", s.db.PingContext(ctx), nil)
}

func filterClause(filter question.Filter) (string, []interface{}) {
	var (
		clauses []string
		args    []interface{}
	)
	if filter.SearchTerm != nil {
		clauses = append(clauses, `casefold(question) LIKE '%' || casefold(?) || '%' ESCAPE '\'`)
		args = append(args, escapeLike(*filter.SearchTerm))
	}
	if filter.CategoryID != nil {
		clauses = append(clauses, "category = ?")
		args = append(args, *filter.CategoryID)
	}
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func translate(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, notFound)
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%s: %s: %w", op, sqliteErr.Error(), question.ErrConstraint)
	}
	return fmt.Errorf("%s: %w: %w", op, question.ErrStoreUnavailable, err)
}

func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}

func (r questionRow) toDomain() question.Question {
	return question.Question{
		ID:         r.ID,
		Question:   r.Question,
		Answer:     r.Answer,
		Category:   r.Category,
		Difficulty: r.Difficulty,
	}
}

func toDomainList(rows []questionRow) []question.Question {
	out := make([]question.Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
