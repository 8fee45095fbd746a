package question

import "context"

// DefaultPageSize mirrors QUESTIONS_PER_PAGE when nothing is configured.
const DefaultPageSize = 10

// AllCategories selects the whole pool in quiz draws.
const AllCategories int64 = 0

// Question is the stored trivia question as delivered to clients.
type Question struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int64  `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Category is a pre-seeded question category.
type Category struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// NewQuestion carries the fields required to insert a question.
type NewQuestion struct {
	Question   string
	Answer     string
	Category   int64
	Difficulty int
}

// Filter narrows listings and counts. A nil field means "no filter".
type Filter struct {
	SearchTerm *string
	CategoryID *int64
}

// Store is the storage accessor contract. Every method is a single
// round-trip; no transaction spans calls.
type Store interface {
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id int64) (Category, error)
	GetQuestion(ctx context.Context, id int64) (Question, error)
	CountQuestions(ctx context.Context, filter Filter) (int, error)
	ListQuestions(ctx context.Context, filter Filter, limit, offset int) ([]Question, error)
	ListQuizCandidates(ctx context.Context, categoryID int64, excluded []int64) ([]Question, error)
	InsertQuestion(ctx context.Context, q NewQuestion) (int64, error)
	DeleteQuestion(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// Page is one window of a question listing.
type Page struct {
	Questions []Question
	Total     int
}
