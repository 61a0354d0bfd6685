package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSocialPost(t *testing.T) {
	var gotAuth, gotStatus string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var update statusUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			t.Errorf("decode status: %v", err)
		}
		gotStatus = update.Status
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewSocialClient(server.URL, "token-1")
	if err := client.Post(context.Background(), "Alice won a trivia game, highscore entry abc"); err != nil {
		t.Fatalf("post: %v", err)
	}
	if gotAuth != "Bearer token-1" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
	if gotStatus != "Alice won a trivia game, highscore entry abc" {
		t.Fatalf("unexpected status %q", gotStatus)
	}
}

func TestSocialPostRemoteFault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewSocialClient(server.URL, "")
	if err := client.Post(context.Background(), "message"); err == nil {
		t.Fatalf("expected error on remote fault")
	}
}
