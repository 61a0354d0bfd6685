package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"trivia-game-service/internal/domain"
)

const sampleResponse = `<?xml version="1.0"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <HighScoreResponse>b6f7a8c2-1f4e-4e0a-9a9d-6c9f1a2b3c4d</HighScoreResponse>
  </soapenv:Body>
</soapenv:Envelope>`

func TestHighscorePublish(t *testing.T) {
	birth := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	players := []domain.Player{
		{ID: "p1", FirstName: "Alice", LastName: "Astor", Gender: "female", BirthDate: &birth},
		{ID: "p2", FirstName: "Bob", LastName: "Berg", Gender: "male"},
	}

	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/xml") {
			t.Errorf("unexpected content type %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	client := NewHighscoreClient(server.URL, "rkf4394dwqp49x")
	uuid, err := client.Publish(context.Background(), players, "p1")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if uuid != "b6f7a8c2-1f4e-4e0a-9a9d-6c9f1a2b3c4d" {
		t.Fatalf("unexpected receipt id %q", uuid)
	}

	for _, want := range []string{
		"rkf4394dwqp49x",
		`name="winner"`,
		`name="loser"`,
		`gender="female"`,
		"<firstname>Alice</firstname>",
		"<lastname>Berg</lastname>",
		"<birthdate>1990-05-17</birthdate>",
		"<birthdate></birthdate>",
	} {
		if !strings.Contains(gotBody, want) {
			t.Fatalf("request body missing %q:\n%s", want, gotBody)
		}
	}
	// The winner attribute must sit on Alice's element, not Bob's.
	if strings.Index(gotBody, `name="winner"`) > strings.Index(gotBody, `name="loser"`) {
		t.Fatalf("winner flag on the wrong player:\n%s", gotBody)
	}
}

func TestHighscorePublishRemoteFault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHighscoreClient(server.URL, "key")
	if _, err := client.Publish(context.Background(), []domain.Player{{ID: "p1"}}, "p1"); err == nil {
		t.Fatalf("expected error on remote fault")
	}
}

func TestHighscorePublishEmptyReceipt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<Envelope><Body></Body></Envelope>`))
	}))
	defer server.Close()

	client := NewHighscoreClient(server.URL, "key")
	if _, err := client.Publish(context.Background(), []domain.Player{{ID: "p1"}}, "p1"); err == nil {
		t.Fatalf("expected error when the response has no receipt id")
	}
}
