package external

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// OpenTDB response codes other than success.
var (
	ErrNoResults     = errors.New("opentdb: not enough questions for query")
	ErrInvalidParam  = errors.New("opentdb: invalid parameter")
	ErrRateLimited   = errors.New("opentdb: rate limited")
	ErrUnexpectedAPI = errors.New("opentdb: unexpected response")
)

// OpenTDBClient fetches questions from the Open Trivia DB (no API key).
type OpenTDBClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOpenTDBClient targets baseURL, defaulting to the public Open Trivia DB
// and a 5s HTTP client.
func NewOpenTDBClient(baseURL string, httpClient *http.Client) *OpenTDBClient {
	if baseURL == "" {
		baseURL = "https://opentdb.com"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &OpenTDBClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// FetchOptions narrows an OpenTDB query. Zero values mean "any".
type FetchOptions struct {
	Amount     int
	Difficulty string
	Category   int
}

// OpenTDBQuestion is one question as returned by the API, with HTML
// entities already decoded.
type OpenTDBQuestion struct {
	Category        string   `json:"category"`
	Type            string   `json:"type"`
	Difficulty      string   `json:"difficulty"`
	Question        string   `json:"question"`
	CorrectAnswer   string   `json:"correct_answer"`
	IncorrectAnswer []string `json:"incorrect_answers"`
}

type openTDBResponse struct {
	ResponseCode int               `json:"response_code"`
	Results      []OpenTDBQuestion `json:"results"`
}

// Fetch runs one query against /api.php.
func (c *OpenTDBClient) Fetch(ctx context.Context, opts FetchOptions) ([]OpenTDBQuestion, error) {
	values := url.Values{}
	values.Set("amount", strconv.Itoa(opts.Amount))
	if opts.Difficulty != "" {
		values.Set("difficulty", opts.Difficulty)
	}
	if opts.Category > 0 {
		values.Set("category", strconv.Itoa(opts.Category))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api.php?%s", c.baseURL, values.Encode()), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("opentdb request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUnexpectedAPI, resp.StatusCode)
	}

	var payload openTDBResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode opentdb response: %w", err)
	}
	switch payload.ResponseCode {
	case 0:
	case 1:
		return nil, ErrNoResults
	case 2:
		return nil, ErrInvalidParam
	case 5:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("%w: response code %d", ErrUnexpectedAPI, payload.ResponseCode)
	}

	for i := range payload.Results {
		q := &payload.Results[i]
		q.Category = html.UnescapeString(q.Category)
		q.Question = html.UnescapeString(q.Question)
		q.CorrectAnswer = html.UnescapeString(q.CorrectAnswer)
		for j, a := range q.IncorrectAnswer {
			q.IncorrectAnswer[j] = html.UnescapeString(a)
		}
	}
	return payload.Results, nil
}
