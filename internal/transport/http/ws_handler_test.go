package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trivia-game-service/internal/app"
	"github.com/gorilla/websocket"
)

func TestWatchStreamsStateUpdates(t *testing.T) {
	service := newHandlerService()
	watchHandler := NewWatchHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/game/watch", watchHandler.ServeWatch)
	server := httptest.NewServer(mux)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/game/watch?session=sess-1"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	initial := readState(t, conn)
	if initial.Phase != app.PhaseQuestion {
		t.Fatalf("expected initial question state, got %q", initial.Phase)
	}

	if _, err := service.SubmitAnswer(context.Background(), "sess-1", "", app.AnswerSubmission{
		QuestionID: "cat-a-q1",
		ChoiceIDs:  []string{"cat-a-right"},
		TimeLeft:   30,
	}, "en"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	update := readState(t, conn)
	if update.Phase != app.PhaseRoundOver {
		t.Fatalf("expected round-over update, got %q", update.Phase)
	}
	if len(update.Scores) != 1 || update.Scores[0].Score != 10 {
		t.Fatalf("expected score update, got %+v", update.Scores)
	}
}

func TestWatchRequiresSession(t *testing.T) {
	service := newHandlerService()
	watchHandler := NewWatchHandler(service)

	recorder := httptest.NewRecorder()
	watchHandler.ServeWatch(recorder, httptest.NewRequest(http.MethodGet, "/game/watch", nil))
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a session, got %d", recorder.Code)
	}
}

func readState(t *testing.T, conn *websocket.Conn) app.StateView {
	t.Helper()
	var msg struct {
		Type    string        `json:"type"`
		Payload app.StateView `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if msg.Type != "state" {
		t.Fatalf("expected state message, got %q", msg.Type)
	}
	return msg.Payload
}
