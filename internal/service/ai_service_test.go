package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"studylog_backend/internal/config"
)

func newChatUpstream(t *testing.T, capture *chatCompletionRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "がんばってるね！"}},
			},
		})
	}))
}

func newTestAIService(baseURL string) *AIService {
	return NewAIService(config.AIConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "test-model",
	}, nil)
}

func TestChatTruncatesHistory(t *testing.T) {
	var captured chatCompletionRequest
	upstream := newChatUpstream(t, &captured)
	defer upstream.Close()

	svc := newTestAIService(upstream.URL)

	history := make([]AIChatMessage, 25)
	for i := range history {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		history[i] = AIChatMessage{Role: role, Content: fmt.Sprintf("メッセージ%d", i)}
	}

	reply, err := svc.Chat(context.Background(), history)
	if err != nil {
		t.Fatal(err)
	}
	if reply != "がんばってるね！" {
		t.Errorf("reply = %q", reply)
	}

	// system prompt + last 10 turns
	if len(captured.Messages) != 11 {
		t.Fatalf("forwarded messages = %d, want 11", len(captured.Messages))
	}
	if captured.Messages[0].Role != "system" {
		t.Errorf("first message role = %q, want system", captured.Messages[0].Role)
	}
	if !strings.Contains(captured.Messages[0].Content, "スタディ先生") {
		t.Errorf("system prompt missing persona: %q", captured.Messages[0].Content)
	}
	if captured.Messages[1].Content != "メッセージ15" {
		t.Errorf("oldest forwarded turn = %q, want メッセージ15", captured.Messages[1].Content)
	}
	if captured.Messages[10].Content != "メッセージ24" {
		t.Errorf("newest forwarded turn = %q, want メッセージ24", captured.Messages[10].Content)
	}
}

func TestChatShortHistoryForwardedWhole(t *testing.T) {
	var captured chatCompletionRequest
	upstream := newChatUpstream(t, &captured)
	defer upstream.Close()

	svc := newTestAIService(upstream.URL)

	history := []AIChatMessage{{Role: "user", Content: "数学が苦手です"}}
	if _, err := svc.Chat(context.Background(), history); err != nil {
		t.Fatal(err)
	}

	if len(captured.Messages) != 2 {
		t.Fatalf("forwarded messages = %d, want 2", len(captured.Messages))
	}
	if captured.Model != "test-model" {
		t.Errorf("model = %q", captured.Model)
	}
}

func TestChatMissingAPIKey(t *testing.T) {
	svc := NewAIService(config.AIConfig{BaseURL: "http://unused"}, nil)
	if _, err := svc.Chat(context.Background(), nil); err == nil {
		t.Error("expected error when API key is missing")
	}
}

func TestChatUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer upstream.Close()

	svc := newTestAIService(upstream.URL)
	if _, err := svc.Chat(context.Background(), []AIChatMessage{{Role: "user", Content: "こんにちは"}}); err == nil {
		t.Error("expected error on upstream failure")
	}
}

func TestChatUpstreamErrorBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "quota exceeded"},
		})
	}))
	defer upstream.Close()

	svc := newTestAIService(upstream.URL)
	_, err := svc.Chat(context.Background(), []AIChatMessage{{Role: "user", Content: "こんにちは"}})
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("err = %v, want quota exceeded", err)
	}
}
