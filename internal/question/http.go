package question

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandler exposes the trivia REST endpoints.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs the trivia HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "question_http").Logger(),
	}
}

// Register mounts the trivia routes on mux. Method checks happen inside the
// handlers so that mismatches answer with the JSON envelope.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/categories", h.HandleCategories)
	mux.HandleFunc("/categories/{id}/questions", h.HandleCategoryQuestions)
	mux.HandleFunc("/questions", h.HandleQuestions)
	mux.HandleFunc("/questions/{id}", h.HandleQuestion)
	mux.HandleFunc("/quizzes", h.HandleQuizzes)
}

type categoriesResponse struct {
	Success    bool             `json:"success"`
	Categories map[int64]string `json:"categories"`
}

type listQuestionsResponse struct {
	Success         bool             `json:"success"`
	Questions       []Question       `json:"questions"`
	TotalQuestions  int              `json:"total_questions"`
	CurrentCategory []int64          `json:"current_category"`
	Categories      map[int64]string `json:"categories"`
}

type searchResponse struct {
	Success        bool             `json:"success"`
	Questions      []Question       `json:"questions"`
	TotalQuestions int              `json:"total_questions"`
	Categories     map[int64]string `json:"categories"`
}

type categoryQuestionsResponse struct {
	Success         bool       `json:"success"`
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"total_questions"`
	CurrentCategory int64      `json:"current_category"`
}

type createdResponse struct {
	Success bool  `json:"success"`
	Created int64 `json:"created"`
}

type deletedResponse struct {
	Success bool  `json:"success"`
	Deleted int64 `json:"deleted"`
}

type quizResponse struct {
	Success  bool      `json:"success"`
	Question *Question `json:"question"`
}

// HandleCategories serves GET /categories.
func (h *HTTPHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w, http.MethodGet)
		return
	}
	categories, err := h.categoryMap(r)
	if err != nil {
		h.respondError(w, r, err, httperrors.RespondInternalError)
		return
	}
	writeJSON(w, categoriesResponse{Success: true, Categories: categories})
}

// HandleQuestions serves GET /questions (paged listing) and POST /questions
// (search or insert, depending on the body).
func (h *HTTPHandler) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listQuestions(w, r)
	case http.MethodPost:
		h.postQuestions(w, r)
	default:
		httperrors.RespondMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (h *HTTPHandler) listQuestions(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListQuestions(r.Context(), pageParam(r))
	if err != nil {
		h.respondError(w, r, err, httperrors.RespondInternalError)
		return
	}
	categories, err := h.categoryMap(r)
	if err != nil {
		h.respondError(w, r, err, httperrors.RespondInternalError)
		return
	}
	writeJSON(w, listQuestionsResponse{
		Success:         true,
		Questions:       nonNil(page.Questions),
		TotalQuestions:  page.Total,
		CurrentCategory: distinctCategories(page.Questions),
		Categories:      categories,
	})
}

func (h *HTTPHandler) postQuestions(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuestionsRequest(r.Body)
	if err != nil {
		h.respondError(w, r, err, httperrors.RespondBadRequest)
		return
	}

	switch req := req.(type) {
	case SearchRequest:
		h.search(w, r, req)
	case InsertRequest:
		id, err := h.svc.Create(r.Context(), req.Question)
		if err != nil {
			h.respondError(w, r, err, httperrors.RespondUnprocessable)
			return
		}
		writeJSON(w, createdResponse{Success: true, Created: id})
	}
}

func (h *HTTPHandler) search(w http.ResponseWriter, r *http.Request, req SearchRequest) {
	var (
		page Page
		err  error
	)
	if req.Term == nil {
		page, err = h.svc.ListQuestions(r.Context(), pageParam(r))
	} else {
		page, err = h.svc.Search(r.Context(), *req.Term, pageParam(r))
	}
	if err != nil {
		h.respondError(w, r, err, httperrors.RespondInternalError)
		return
	}
	categories, err := h.categoryMap(r)
	if err != nil {
		h.respondError(w, r, err, httperrors.RespondInternalError)
		return
	}
	writeJSON(w, searchResponse{
		Success:        true,
		Questions:      nonNil(page.Questions),
		TotalQuestions: page.Total,
		Categories:     categories,
	})
}

// HandleQuestion serves DELETE /questions/{id}.
func (h *HTTPHandler) HandleQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}
	if r.Method != http.MethodDelete {
		httperrors.RespondMethodNotAllowed(w, http.MethodDelete)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, err, httperrors.RespondBadRequest)
		return
	}
	writeJSON(w, deletedResponse{Success: true, Deleted: id})
}

// HandleCategoryQuestions serves GET /categories/{id}/questions.
func (h *HTTPHandler) HandleCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w, http.MethodGet)
		return
	}
	page, err := h.svc.QuestionsByCategory(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err, httperrors.RespondInternalError)
		return
	}
	writeJSON(w, categoryQuestionsResponse{
		Success:         true,
		Questions:       nonNil(page.Questions),
		TotalQuestions:  page.Total,
		CurrentCategory: id,
	})
}

// HandleQuizzes serves POST /quizzes.
func (h *HTTPHandler) HandleQuizzes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w, http.MethodPost)
		return
	}
	req, err := parseQuizRequest(r.Body)
	if err != nil {
		h.respondError(w, r, err, httperrors.RespondBadRequest)
		return
	}
	q, err := h.svc.NextQuizQuestion(r.Context(), req.CategoryID, req.PreviousQuestions)
	if err != nil {
		h.respondError(w, r, err, httperrors.RespondInternalError)
		return
	}
	writeJSON(w, quizResponse{Success: true, Question: q})
}

// HandleNotFound answers unknown routes with the 404 envelope.
func (h *HTTPHandler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	httperrors.RespondNotFound(w)
}

func (h *HTTPHandler) categoryMap(r *http.Request) (map[int64]string, error) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		return nil, err
	}
	out := make(map[int64]string, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Type
	}
	return out, nil
}

// respondError maps not-found and bad-request kinds to their statuses and
// everything else to fallback. Store details are logged, never returned.
func (h *HTTPHandler) respondError(w http.ResponseWriter, r *http.Request, err error, fallback func(http.ResponseWriter)) {
	logger := logging.FromContextOr(r.Context(), h.logger)
	switch {
	case errors.Is(err, ErrNotFound):
		logger.Debug().Err(err).Msg("not found")
		httperrors.RespondNotFound(w)
	case errors.Is(err, ErrBadRequest):
		logger.Debug().Err(err).Msg("bad request")
		httperrors.RespondBadRequest(w)
	default:
		logger.Error().Err(err).Str("error_kind", ErrorKind(err)).Msg("request failed")
		fallback(w)
	}
}

// pageParam reads ?page, defaulting to 1 when absent or not an integer.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return page
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

func distinctCategories(questions []Question) []int64 {
	out := make([]int64, 0, len(questions))
	for _, q := range questions {
		out = append(out, q.Category)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func nonNil(questions []Question) []Question {
	if questions == nil {
		return []Question{}
	}
	return questions
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
