package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"trivia-game-service/internal/app"
	"trivia-game-service/internal/domain"
	"github.com/google/uuid"
)

// SessionCookie carries the opaque per-browser key locating the game in the
// session cache.
const SessionCookie = "quiz_session"

// GameHandler is the HTTP controller over the game use cases. It owns no
// game state: every request resolves the session key, delegates, and renders
// the returned view.
type GameHandler struct {
	service *app.GameService
}

func NewGameHandler(service *app.GameService) *GameHandler {
	return &GameHandler{service: service}
}

// Register mounts the game routes on the mux.
func (h *GameHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/game/new", h.handleNewGame)
	mux.HandleFunc("/game/question", h.handleQuestion)
	mux.HandleFunc("/game/answer", h.handleAnswer)
	mux.HandleFunc("/game/round/next", h.handleNextRound)
	mux.HandleFunc("/game/round/result", h.handleRoundResult)
	mux.HandleFunc("/game/result", h.handleFinalResult)
}

type answerRequest struct {
	QuestionID string   `json:"questionId"`
	ChoiceIDs  []string `json:"choiceIds"`
	TimeLeft   float64  `json:"timeLeft"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func (h *GameHandler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	view, err := h.service.NewGame(r.Context(), h.sessionKey(w, r), playerID(r), lang(r))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *GameHandler) handleQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	question, err := h.service.CurrentQuestion(r.Context(), h.sessionKey(w, r), playerID(r), lang(r))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, question)
}

func (h *GameHandler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid answer payload")
		return
	}
	if req.QuestionID == "" {
		writeError(w, http.StatusBadRequest, "questionId is required")
		return
	}

	view, err := h.service.SubmitAnswer(r.Context(), h.sessionKey(w, r), playerID(r), app.AnswerSubmission{
		QuestionID: req.QuestionID,
		ChoiceIDs:  req.ChoiceIDs,
		TimeLeft:   req.TimeLeft,
	}, lang(r))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *GameHandler) handleNextRound(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	view, err := h.service.StartNextRound(r.Context(), h.sessionKey(w, r), playerID(r), lang(r))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *GameHandler) handleRoundResult(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.RoundResult(r.Context(), h.sessionKey(w, r), playerID(r), lang(r))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *GameHandler) handleFinalResult(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.FinalResult(r.Context(), h.sessionKey(w, r), playerID(r), lang(r))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// sessionKey reads the session cookie, minting one on first contact.
func (h *GameHandler) sessionKey(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	key := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    key,
		Path:     "/",
		HttpOnly: true,
	})
	return key
}

func playerID(r *http.Request) string {
	return r.URL.Query().Get("player")
}

func lang(r *http.Request) string {
	if l := r.URL.Query().Get("lang"); l != "" {
		return l
	}
	return "en"
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrStaleSubmission),
		errors.Is(err, domain.ErrRoundInProgress),
		errors.Is(err, domain.ErrNoCurrentQuestion),
		errors.Is(err, domain.ErrNoActiveRound),
		errors.Is(err, domain.ErrNoCategoriesLeft),
		errors.Is(err, domain.ErrGameNotOver):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnknownPlayer):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorPayload{Message: message})
}
