package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"
)

func completionResponse(content string) map[string]any {
	return map[string]any{
		"choices": []any{
			map[string]any{
				"message": map[string]any{"content": content},
			},
		},
	}
}

func newTestClient(baseURL string, opts ...Option) *Client {
	base := []Option{
		WithRetryMaxAttempts(3),
		WithRetryBackoff(time.Millisecond, time.Millisecond),
		WithSleeper(func(time.Duration) {}),
	}
	return NewClient(Config{APIKey: "test", BaseURL: baseURL, Model: "demo-model"}, append(base, opts...)...)
}

func TestGenerateStudySet(t *testing.T) {
	payload := `{
        "summary": "A summary of the document.",
        "quiz": [
            {"question": "Q1?", "answer": "A1.", "source_questions": "section 1"},
            {"question": "Q2?", "answer": "A2.", "source_questions": "section 2"}
        ]
    }`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test" {
			t.Fatalf("unexpected auth header %q", got)
		}
		if err := json.NewEncoder(w).Encode(completionResponse(payload)); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer server.Close()

	set, err := newTestClient(server.URL).GenerateStudySet(context.Background(), "document text", GenerationOptions{})
	if err != nil {
		t.Fatalf("GenerateStudySet returned error: %v", err)
	}
	if set.Summary != "A summary of the document." {
		t.Fatalf("unexpected summary %q", set.Summary)
	}
	if len(set.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(set.Questions))
	}
	if set.Questions[1].SourceQuestions != "section 2" {
		t.Fatalf("unexpected provenance %q", set.Questions[1].SourceQuestions)
	}
}

func TestGenerateStudySetCodeFence(t *testing.T) {
	payload := "```json\n{\"summary\":\"S\",\"quiz\":[{\"question\":\"Q\",\"answer\":\"A\",\"source_questions\":\"p\"}]}\n```"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewEncoder(w).Encode(completionResponse(payload)); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer server.Close()

	set, err := newTestClient(server.URL).GenerateStudySet(context.Background(), "text", GenerationOptions{})
	if err != nil {
		t.Fatalf("GenerateStudySet returned error: %v", err)
	}
	if set.Summary != "S" || len(set.Questions) != 1 {
		t.Fatalf("unexpected set %+v", set)
	}
}

func TestGenerateStudySetRejectsMissingProvenance(t *testing.T) {
	payload := `{"summary":"S","quiz":[{"question":"Q","answer":"A","source_questions":"  "}]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewEncoder(w).Encode(completionResponse(payload)); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GenerateStudySet(context.Background(), "text", GenerationOptions{})
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestGenerateStudySetRejectsEmptyQuiz(t *testing.T) {
	payload := `{"summary":"S","quiz":[]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewEncoder(w).Encode(completionResponse(payload)); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GenerateStudySet(context.Background(), "text", GenerationOptions{})
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestGenerateStudySetRejectsNonJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewEncoder(w).Encode(completionResponse("I could not produce a quiz.")); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GenerateStudySet(context.Background(), "text", GenerationOptions{})
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestGenerateQuestion(t *testing.T) {
	payload := `{"question":"What is osmosis?","answer":"Solvent diffusion across a membrane."}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewEncoder(w).Encode(completionResponse(payload)); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer server.Close()

	qa, err := newTestClient(server.URL).GenerateQuestion(context.Background(), "osmosis notes")
	if err != nil {
		t.Fatalf("GenerateQuestion returned error: %v", err)
	}
	if qa.Question == "" || qa.Answer == "" {
		t.Fatalf("unexpected qa %+v", qa)
	}
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		payload := `{"question":"Q","answer":"A"}`
		if err := json.NewEncoder(w).Encode(completionResponse(payload)); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).GenerateQuestion(context.Background(), "snippet"); err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).GenerateQuestion(context.Background(), "snippet"); err == nil {
		t.Fatal("expected error for unauthorized request")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected single call, got %d", calls.Load())
	}
}

func TestMissingAPIKey(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://localhost:0", Model: "demo"})
	if _, err := client.GenerateQuestion(context.Background(), "snippet"); err == nil {
		t.Fatal("expected error when api key missing")
	}
}

func TestTruncateForPromptKeepsRunesIntact(t *testing.T) {
	text := strings.Repeat("é", 30)
	got := truncateForPrompt(text, 21)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation split a rune: %q", got)
	}
	if len(got) > 21 || got == "" {
		t.Fatalf("unexpected truncation %q (len %d)", got, len(got))
	}
}

func TestDecodePayloadExtractsEmbeddedObject(t *testing.T) {
	var out singleQuestionPayload
	content := "Here is your item: {\"question\":\"Q\",\"answer\":\"A\"} hope it helps"
	if err := decodePayload(content, &out); err != nil {
		t.Fatalf("decodePayload failed: %v", err)
	}
	if out.Question != "Q" || out.Answer != "A" {
		t.Fatalf("unexpected payload %+v", out)
	}
}
