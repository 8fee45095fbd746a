package external

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

// categoryAliases folds OpenTDB categories without a local namesake onto
// the closest seeded category.
var categoryAliases = map[string]string{
	"celebrities": "entertainment",
	"mythology":   "history",
	"politics":    "history",
	"animals":     "science",
}

var difficulties = map[string]int{
	"easy":   1,
	"medium": 2,
	"hard":   3,
}

// Source yields questions to import.
type Source interface {
	Fetch(ctx context.Context, opts FetchOptions) ([]OpenTDBQuestion, error)
}

// Target is the part of question.Store the importer writes through.
type Target interface {
	ListCategories(ctx context.Context) ([]question.Category, error)
	InsertQuestion(ctx context.Context, q question.NewQuestion) (int64, error)
}

// ImportResult counts what happened to each fetched question.
type ImportResult struct {
	Fetched         int
	Inserted        int
	SkippedCategory int
	SkippedInvalid  int
	Rejected        int
}

// Importer copies OpenTDB questions into the local store.
type Importer struct {
	source Source
	target Target
	logger zerolog.Logger
}

// NewImporter copies questions from source into target.
func NewImporter(source Source, target Target, logger zerolog.Logger) *Importer {
	return &Importer{
		source: source,
		target: target,
		logger: logger.With().Str("component", "opentdb_importer").Logger(),
	}
}

// Run fetches one batch and inserts every question whose category maps
// onto an existing one. Store rejections are counted; an unavailable
// store aborts the run.
func (im *Importer) Run(ctx context.Context, opts FetchOptions) (ImportResult, error) {
	var res ImportResult

	categories, err := im.target.ListCategories(ctx)
	if err != nil {
		return res, fmt.Errorf("list categories: %w", err)
	}
	batch, err := im.source.Fetch(ctx, opts)
	if err != nil {
		return res, fmt.Errorf("fetch questions: %w", err)
	}
	res.Fetched = len(batch)

	for _, q := range batch {
		categoryID, ok := MatchCategory(q.Category, categories)
		if !ok {
			res.SkippedCategory++
			im.logger.Debug().Str("opentdb_category", q.Category).Msg("no matching category")
			continue
		}
		difficulty, ok := difficulties[strings.ToLower(q.Difficulty)]
		if !ok || strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.CorrectAnswer) == "" {
			res.SkippedInvalid++
			continue
		}

		_, err := im.target.InsertQuestion(ctx, question.NewQuestion{
			Question:   q.Question,
			Answer:     q.CorrectAnswer,
			Category:   categoryID,
			Difficulty: difficulty,
		})
		switch {
		case err == nil:
			res.Inserted++
		case errors.Is(err, question.ErrConstraint):
			res.Rejected++
			im.logger.Warn().Err(err).Str("question", q.Question).Msg("store rejected question")
		default:
			return res, fmt.Errorf("insert question: %w", err)
		}
	}
	return res, nil
}

// MatchCategory maps an OpenTDB category name such as "Science & Nature"
// or "Entertainment: Film" onto a local category by case-insensitive
// prefix, then by alias.
func MatchCategory(name string, categories []question.Category) (int64, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return 0, false
	}
	for _, c := range categories {
		if t := strings.ToLower(c.Type); t != "" && strings.HasPrefix(lower, t) {
			return c.ID, true
		}
	}
	for prefix, alias := range categoryAliases {
		if !strings.HasPrefix(lower, prefix) {
			continue
		}
		for _, c := range categories {
			if strings.EqualFold(c.Type, alias) {
				return c.ID, true
			}
		}
	}
	return 0, false
}
