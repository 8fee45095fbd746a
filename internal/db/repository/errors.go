package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

// integrityViolationClass is the SQLSTATE class for constraint failures.
const integrityViolationClass = "23"

// translate maps driver errors onto the question error kinds. notFound is
// returned for pgx.ErrNoRows when non-nil.
func translate(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, notFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, integrityViolationClass) {
		return fmt.Errorf("%s: %s (%s): %w", op, pgErr.ConstraintName, pgErr.Code, question.ErrConstraint)
	}
	return fmt.Errorf("%s: %w: %w", op, question.ErrStoreUnavailable, err)
}

// escapeLike makes term match literally inside an ILIKE pattern.
func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}
