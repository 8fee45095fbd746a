package question

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// DrawRecorder observes quiz draws (implemented by the metrics package).
type DrawRecorder interface {
	ObserveQuizDraw(exhausted bool)
}

// ServiceOptions tunes the question service.
type ServiceOptions struct {
	PageSize int
	Selector *Selector
	Recorder DrawRecorder
}

// Service orchestrates paging, search and quiz selection over a Store.
type Service struct {
	store    Store
	pager    *Pager
	selector *Selector
	recorder DrawRecorder
	logger   zerolog.Logger
}

// NewService builds the trivia use cases over store. Zero-value options
// fall back to DefaultPageSize and a uniform random selector.
func NewService(store Store, logger zerolog.Logger, opts ServiceOptions) *Service {
	selector := opts.Selector
	if selector == nil {
		selector = NewSelector()
	}
	return &Service{
		store:    store,
		pager:    NewPager(store, opts.PageSize),
		selector: selector,
		recorder: opts.Recorder,
		logger:   logger.With().Str("component", "question_service").Logger(),
	}
}

// PageSize reports the listing window size.
func (s *Service) PageSize() int {
	return s.pager.PageSize()
}

// Categories returns every category ordered by type.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// ListQuestions returns one page of all questions.
func (s *Service) ListQuestions(ctx context.Context, page int) (Page, error) {
	return s.page(ctx, nil, page)
}

// Search returns one page of questions whose text contains term,
// ignoring case.
func (s *Service) Search(ctx context.Context, term string, page int) (Page, error) {
	return s.page(ctx, &term, page)
}

func (s *Service) page(ctx context.Context, term *string, page int) (Page, error) {
	total, err := s.pager.Count(ctx, term)
	if err != nil {
		return Page{}, fmt.Errorf("count questions: %w", err)
	}
	if err := ValidatePage(page, total, s.pager.PageSize()); err != nil {
		return Page{}, err
	}
	questions, err := s.pager.FetchPage(ctx, term, page)
	if err != nil {
		return Page{}, fmt.Errorf("fetch page %d: %w", page, err)
	}
	return Page{Questions: questions, Total: total}, nil
}

// QuestionsByCategory returns the first page of a category's questions and
// the total count in that category.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID int64) (Page, error) {
	if _, err := s.store.GetCategory(ctx, categoryID); err != nil {
		return Page{}, fmt.Errorf("category %d: %w", categoryID, err)
	}
	questions, err := s.pager.FetchPageByCategory(ctx, categoryID, 1)
	if err != nil {
		return Page{}, fmt.Errorf("fetch category %d: %w", categoryID, err)
	}
	total, err := s.pager.CountByCategory(ctx, categoryID)
	if err != nil {
		return Page{}, fmt.Errorf("count category %d: %w", categoryID, err)
	}
	return Page{Questions: questions, Total: total}, nil
}

// Create inserts a question and returns its generated id.
func (s *Service) Create(ctx context.Context, q NewQuestion) (int64, error) {
	id, err := s.store.InsertQuestion(ctx, q)
	if err != nil {
		s.logger.Warn().Err(err).Str("error_kind", ErrorKind(err)).Int64("category", q.Category).Msg("insert question failed")
		return 0, fmt.Errorf("insert question: %w", err)
	}
	s.logger.Info().Int64("question_id", id).Msg("question created")
	return id, nil
}

// Delete removes a question by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteQuestion(ctx, id); err != nil {
		if kind := ErrorKind(err); kind != "not_found" {
			s.logger.Warn().Err(err).Str("error_kind", kind).Int64("question_id", id).Msg("delete question failed")
		}
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	s.logger.Info().Int64("question_id", id).Msg("question deleted")
	return nil
}

// NextQuizQuestion draws a random question not in previous, optionally
// restricted to categoryID. A nil question means the pool is exhausted.
func (s *Service) NextQuizQuestion(ctx context.Context, categoryID int64, previous []int64) (*Question, error) {
	if categoryID != AllCategories {
		if _, err := s.store.GetCategory(ctx, categoryID); err != nil {
			return nil, fmt.Errorf("quiz category %d: %w", categoryID, err)
		}
	}
	candidates, err := s.store.ListQuizCandidates(ctx, categoryID, previous)
	if err != nil {
		return nil, fmt.Errorf("quiz candidates: %w", err)
	}
	q, ok := s.selector.Pick(candidates)
	if s.recorder != nil {
		s.recorder.ObserveQuizDraw(!ok)
	}
	if !ok {
		return nil, nil
	}
	return &q, nil
}
