package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const maxBodyBytes = 1 << 20

// questionsRequest is the body of POST /questions, discriminated by key
// presence before any field is parsed.
type questionsRequest interface {
	isQuestionsRequest()
}

// SearchRequest asks for a page of questions containing Term. A nil Term
// (explicit JSON null) matches every question.
type SearchRequest struct {
	Term *string
}

// InsertRequest asks for a new question to be stored.
type InsertRequest struct {
	Question NewQuestion
}

func (SearchRequest) isQuestionsRequest() {}
func (InsertRequest) isQuestionsRequest() {}

var insertFields = []string{"question", "answer", "difficulty", "category"}

func decodeObject(body io.Reader) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(io.LimitReader(body, maxBodyBytes)).Decode(&fields); err != nil {
		return nil, fmt.Errorf("decode body: %v: %w", err, ErrBadRequest)
	}
	if fields == nil {
		return nil, fmt.Errorf("body is not an object: %w", ErrBadRequest)
	}
	return fields, nil
}

func parseQuestionsRequest(body io.Reader) (questionsRequest, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	if raw, ok := fields["searchTerm"]; ok {
		if isNull(raw) {
			return SearchRequest{}, nil
		}
		var term string
		if err := json.Unmarshal(raw, &term); err != nil {
			return nil, fmt.Errorf("searchTerm must be a string: %w", ErrBadRequest)
		}
		return SearchRequest{Term: &term}, nil
	}

	for _, name := range insertFields {
		if _, ok := fields[name]; !ok {
			return nil, fmt.Errorf("missing field %q: %w", name, ErrBadRequest)
		}
	}

	var req InsertRequest
	if err := json.Unmarshal(fields["question"], &req.Question.Question); err != nil || isNull(fields["question"]) {
		return nil, fmt.Errorf("question must be a string: %w", ErrBadRequest)
	}
	if err := json.Unmarshal(fields["answer"], &req.Question.Answer); err != nil || isNull(fields["answer"]) {
		return nil, fmt.Errorf("answer must be a string: %w", ErrBadRequest)
	}
	difficulty, err := parseInt(fields["difficulty"])
	if err != nil {
		return nil, fmt.Errorf("difficulty: %w", err)
	}
	if difficulty < math.MinInt32 || difficulty > math.MaxInt32 {
		return nil, fmt.Errorf("difficulty %d out of range: %w", difficulty, ErrBadRequest)
	}
	req.Question.Difficulty = int(difficulty)
	if req.Question.Category, err = parseInt(fields["category"]); err != nil {
		return nil, fmt.Errorf("category: %w", err)
	}
	return req, nil
}

// QuizRequest is the body of POST /quizzes.
type QuizRequest struct {
	PreviousQuestions []int64
	CategoryID        int64
}

func parseQuizRequest(body io.Reader) (QuizRequest, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return QuizRequest{}, err
	}
	rawPrevious, ok := fields["previous_questions"]
	if !ok {
		return QuizRequest{}, fmt.Errorf("missing previous_questions: %w", ErrBadRequest)
	}
	rawCategory, ok := fields["quiz_category"]
	if !ok {
		return QuizRequest{}, fmt.Errorf("missing quiz_category: %w", ErrBadRequest)
	}

	var previous []json.RawMessage
	if err := json.Unmarshal(rawPrevious, &previous); err != nil || isNull(rawPrevious) {
		return QuizRequest{}, fmt.Errorf("previous_questions must be a list: %w", ErrBadRequest)
	}
	req := QuizRequest{PreviousQuestions: make([]int64, 0, len(previous))}
	for _, raw := range previous {
		id, err := parseInt(raw)
		if err != nil {
			return QuizRequest{}, fmt.Errorf("previous_questions: %w", err)
		}
		req.PreviousQuestions = append(req.PreviousQuestions, id)
	}

	var category map[string]json.RawMessage
	if err := json.Unmarshal(rawCategory, &category); err != nil || category == nil {
		return QuizRequest{}, fmt.Errorf("quiz_category must be an object: %w", ErrBadRequest)
	}
	rawID, ok := category["id"]
	if !ok {
		return QuizRequest{}, fmt.Errorf("missing quiz_category.id: %w", ErrBadRequest)
	}
	if req.CategoryID, err = parseInt(rawID); err != nil {
		return QuizRequest{}, fmt.Errorf("quiz_category.id: %w", err)
	}
	return req, nil
}

// parseInt accepts an integral JSON number or a numeric string.
func parseInt(raw json.RawMessage) (int64, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, fmt.Errorf("invalid integer: %w", ErrBadRequest)
	}
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		// float64(MaxInt64) rounds up to 2^63, which int64 cannot hold
		if err != nil || f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
			return 0, fmt.Errorf("invalid integer %s: %w", n, ErrBadRequest)
		}
		return int64(f), nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid integer %q: %w", n, ErrBadRequest)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("invalid integer: %w", ErrBadRequest)
	}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
