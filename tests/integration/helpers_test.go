//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"testing"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// doJSON sends payload (if any) as JSON and decodes the JSON object reply.
func doJSON(t *testing.T, method, url string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s %s response failed: %v", method, url, err)
	}
	return resp.StatusCode, out
}

func expectFailure(t *testing.T, status int, body map[string]interface{}, want int) {
	t.Helper()

	if status != want {
		t.Fatalf("expected %d, got %d: %v", want, status, body)
	}
	if body["success"] != false {
		t.Fatalf("success should be false: %v", body)
	}
	if code, _ := body["error"].(float64); int(code) != want {
		t.Fatalf("error field should be %d: %v", want, body)
	}
	if msg, _ := body["message"].(string); msg == "" {
		t.Fatalf("message is missing: %v", body)
	}
}

func insertQuestion(t *testing.T, baseURL string, category int) int64 {
	t.Helper()

	status, body := doJSON(t, http.MethodPost, baseURL+"/questions", map[string]interface{}{
		"question":   "Integration question?",
		"answer":     "Integration answer",
		"difficulty": 1,
		"category":   category,
	})
	if status != http.StatusOK || body["success"] != true {
		t.Fatalf("insert failed: %d %v", status, body)
	}
	id, ok := body["created"].(float64)
	if !ok {
		t.Fatalf("created id missing: %v", body)
	}
	return int64(id)
}
