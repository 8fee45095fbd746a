//go:build integration
// +build integration

package integration

import (
	"net/http"
	"testing"
)

func TestErrorEnvelopes(t *testing.T) {
	baseURL := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")

	cases := []struct {
		name    string
		method  string
		path    string
		payload interface{}
		want    int
	}{
		{"unknown route", http.MethodGet, "/nowhere", nil, http.StatusNotFound},
		{"wrong method", http.MethodPatch, "/categories", nil, http.StatusMethodNotAllowed},
		{"missing insert fields", http.MethodPost, "/questions", map[string]interface{}{"question": "X?"}, http.StatusBadRequest},
		{"unknown category on insert", http.MethodPost, "/questions", map[string]interface{}{
			"question": "X?", "answer": "Y", "difficulty": 1, "category": 99999,
		}, http.StatusUnprocessableEntity},
		{"quiz without category", http.MethodPost, "/quizzes", map[string]interface{}{"previous_questions": []int{}}, http.StatusBadRequest},
		{"delete unknown question", http.MethodDelete, "/questions/99999999", nil, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doJSON(t, tc.method, baseURL+tc.path, tc.payload)
			expectFailure(t, status, body, tc.want)
		})
	}
}
