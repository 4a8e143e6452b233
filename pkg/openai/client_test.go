package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := NewClient("  "); err == nil {
		t.Fatal("expected error for blank api key")
	}
}

func TestCompleteChatRoundTrip(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key-123" {
			t.Errorf("unexpected auth header %q", got)
		}

		var req chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("unexpected model %q", req.Model)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("unexpected messages %+v", req.Messages)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  CryptoPhone Pro X, SecurePhone Mini  "}},
			},
		})
	}))
	defer srv.Close()

	client, err := NewClient("key-123", WithBaseURL(srv.URL), WithModel("test-model"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	reply, err := client.CompleteChat(context.Background(), "you are a shopping assistant", "recommend")
	if err != nil {
		t.Fatalf("complete chat: %v", err)
	}
	if reply != "CryptoPhone Pro X, SecurePhone Mini" {
		t.Fatalf("unexpected reply %q", reply)
	}
}

func TestCompleteChatSurfacesAPIErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := NewClient("key-123", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.CompleteChat(context.Background(), "sys", "user"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
