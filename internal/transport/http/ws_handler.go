package http

import (
	"log"
	"net/http"

	"trivia-game-service/internal/app"
	"github.com/gorilla/websocket"
)

// WatchHandler streams game-state snapshots to websocket clients so a second
// screen can follow a session's play.
type WatchHandler struct {
	service  *app.GameService
	upgrader websocket.Upgrader
}

func NewWatchHandler(service *app.GameService) *WatchHandler {
	return &WatchHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// ServeWatch upgrades the request and forwards every state change for the
// session until the client disconnects.
func (h *WatchHandler) ServeWatch(w http.ResponseWriter, r *http.Request) {
	key := watchKey(r)
	if key == "" {
		http.Error(w, "missing session", http.StatusBadRequest)
		return
	}

	updates, cancel, err := h.service.Watch(r.Context(), key, playerID(r), lang(r))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case view, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(outboundMessage{Type: "state", Payload: view}); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		case <-readerDone:
			return
		}
	}
}

// watchKey accepts the session cookie or an explicit query parameter, since
// spectator clients may not share the player's cookie jar.
func watchKey(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return r.URL.Query().Get("session")
}
