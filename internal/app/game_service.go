package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"trivia-game-service/internal/domain"
)

// GameStore is the session cache contract: an opaque key to game-snapshot
// store with a fixed idle TTL. Load never renews the TTL; Save overwrites the
// snapshot and restarts the window. A miss after expiry is normal and yields
// a fresh game on the next LoadOrCreate.
type GameStore interface {
	Load(ctx context.Context, key string) (*domain.Game, bool, error)
	Save(ctx context.Context, key string, game *domain.Game) error
}

// CategoryRepository loads the content pool (from cache/backing store).
type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// HighscorePublisher reports a finished game to the external highscore
// service and returns the receipt id it minted.
type HighscorePublisher interface {
	Publish(ctx context.Context, players []domain.Player, winnerID string) (string, error)
}

// SocialPublisher posts a short public message about a finished game.
type SocialPublisher interface {
	Post(ctx context.Context, message string) error
}

// AnswerSubmission models the answer signal from clients. QuestionID must
// match the player's current question or the submission is rejected as stale.
type AnswerSubmission struct {
	QuestionID string
	ChoiceIDs  []string
	TimeLeft   float64
}

// GameService contains the game use cases. Every load-mutate-save sequence
// runs under a per-session-key mutex, so duplicate submits from one browser
// session cannot interleave and lose updates.
type GameService struct {
	store      GameStore
	categories CategoryRepository
	roster     []domain.Player
	picker     domain.CategoryPicker
	now        func() time.Time

	highscore HighscorePublisher
	social    SocialPublisher

	locks keyedLocks
	hub   *watchHub
}

func NewGameService(store GameStore, categories CategoryRepository, roster []domain.Player, picker domain.CategoryPicker) *GameService {
	return NewGameServiceWithClock(store, categories, roster, picker, time.Now)
}

// NewGameServiceWithClock allows deterministic timestamps in tests.
func NewGameServiceWithClock(store GameStore, categories CategoryRepository, roster []domain.Player, picker domain.CategoryPicker, now func() time.Time) *GameService {
	return &GameService{
		store:      store,
		categories: categories,
		roster:     roster,
		picker:     picker,
		now:        now,
		hub:        newWatchHub(),
	}
}

// SetPublishers wires the optional game-over notifications. Either may be nil.
func (s *GameService) SetPublishers(highscore HighscorePublisher, social SocialPublisher) {
	s.highscore = highscore
	s.social = social
}

// LoadOrCreate fetches the session's game, creating one with the first round
// already started when the key is unknown or expired.
func (s *GameService) LoadOrCreate(ctx context.Context, key, playerID, lang string) (StateView, error) {
	unlock := s.locks.acquire(key)
	defer unlock()

	game, _, err := s.loadOrCreateLocked(ctx, key)
	if err != nil {
		return StateView{}, err
	}
	return stateView(game, s.resolvePlayer(game, playerID), lang), nil
}

// NewGame discards any stored game for the key and starts a fresh one.
func (s *GameService) NewGame(ctx context.Context, key, playerID, lang string) (StateView, error) {
	unlock := s.locks.acquire(key)
	defer unlock()

	game, err := s.createLocked(ctx, key)
	if err != nil {
		return StateView{}, err
	}
	view := stateView(game, s.resolvePlayer(game, playerID), lang)
	s.hub.broadcast(key, view)
	return view, nil
}

// CurrentQuestion returns the question awaiting the player in the session's
// game, creating the game on a session miss.
func (s *GameService) CurrentQuestion(ctx context.Context, key, playerID, lang string) (QuestionView, error) {
	unlock := s.locks.acquire(key)
	defer unlock()

	game, _, err := s.loadOrCreateLocked(ctx, key)
	if err != nil {
		return QuestionView{}, err
	}
	round := game.CurrentRound()
	if round == nil {
		return QuestionView{}, domain.ErrNoActiveRound
	}
	view := questionView(round, s.resolvePlayer(game, playerID), lang)
	if view == nil {
		return QuestionView{}, domain.ErrNoCurrentQuestion
	}
	return *view, nil
}

// SubmitAnswer records the submission against the player's current question,
// persists the mutated game, and fires the game-over notifications once the
// final question falls. A stale questionId mutates nothing.
func (s *GameService) SubmitAnswer(ctx context.Context, key, playerID string, submission AnswerSubmission, lang string) (StateView, error) {
	unlock := s.locks.acquire(key)
	defer unlock()

	game, _, err := s.loadOrCreateLocked(ctx, key)
	if err != nil {
		return StateView{}, err
	}
	playerID = s.resolvePlayer(game, playerID)

	current, ok := game.CurrentQuestion(playerID)
	if !ok {
		return stateView(game, playerID, lang), domain.ErrNoCurrentQuestion
	}
	if submission.QuestionID != current.ID {
		return stateView(game, playerID, lang), domain.ErrStaleSubmission
	}

	if _, err := game.AnswerCurrentQuestion(playerID, submission.ChoiceIDs, submission.TimeLeft, s.now()); err != nil {
		return StateView{}, err
	}

	publish := false
	if game.IsGameOver() && !game.ResultsPublished {
		game.ResultsPublished = true
		publish = true
	}

	if err := s.store.Save(ctx, key, game); err != nil {
		return StateView{}, fmt.Errorf("save game: %w", err)
	}

	view := stateView(game, playerID, lang)
	s.hub.broadcast(key, view)

	if publish {
		winner, err := game.Winner()
		if err == nil {
			players := append([]domain.Player(nil), game.Players...)
			// Publishers run outside the session lock and never affect
			// the saved game state or the player-visible response.
			go s.publishResults(winner, players)
		}
	}
	return view, nil
}

// StartNextRound begins the next round once the current one is over.
func (s *GameService) StartNextRound(ctx context.Context, key, playerID, lang string) (StateView, error) {
	unlock := s.locks.acquire(key)
	defer unlock()

	game, created, err := s.loadOrCreateLocked(ctx, key)
	if err != nil {
		return StateView{}, err
	}
	playerID = s.resolvePlayer(game, playerID)
	if created {
		// A fresh game already has its first round running.
		return stateView(game, playerID, lang), nil
	}

	if err := game.StartNewRound(s.picker, s.now()); err != nil {
		return stateView(game, playerID, lang), err
	}
	if err := s.store.Save(ctx, key, game); err != nil {
		return StateView{}, fmt.Errorf("save game: %w", err)
	}
	view := stateView(game, playerID, lang)
	s.hub.broadcast(key, view)
	return view, nil
}

// RoundResult returns the scoreboard between rounds. It fails while the round
// is still in progress; a finished game reports the game-over view instead.
func (s *GameService) RoundResult(ctx context.Context, key, playerID, lang string) (StateView, error) {
	unlock := s.locks.acquire(key)
	defer unlock()

	game, _, err := s.loadOrCreateLocked(ctx, key)
	if err != nil {
		return StateView{}, err
	}
	view := stateView(game, s.resolvePlayer(game, playerID), lang)
	if view.Phase == PhaseQuestion {
		return view, domain.ErrRoundInProgress
	}
	return view, nil
}

// FinalResult returns the game-over view with the winner.
func (s *GameService) FinalResult(ctx context.Context, key, playerID, lang string) (StateView, error) {
	unlock := s.locks.acquire(key)
	defer unlock()

	game, _, err := s.loadOrCreateLocked(ctx, key)
	if err != nil {
		return StateView{}, err
	}
	view := stateView(game, s.resolvePlayer(game, playerID), lang)
	if view.Phase != PhaseGameOver {
		return view, domain.ErrGameNotOver
	}
	return view, nil
}

// Watch subscribes to state snapshots for a session. The channel receives the
// current state immediately and an update after every mutation. The caller
// must invoke the returned cancel function to avoid leaks.
func (s *GameService) Watch(ctx context.Context, key, playerID, lang string) (<-chan StateView, func(), error) {
	unlock := s.locks.acquire(key)
	game, _, err := s.loadOrCreateLocked(ctx, key)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	initial := stateView(game, s.resolvePlayer(game, playerID), lang)
	unlock()

	ch, cancel := s.hub.subscribe(key)
	ch <- initial
	return ch, cancel, nil
}

func (s *GameService) loadOrCreateLocked(ctx context.Context, key string) (*domain.Game, bool, error) {
	game, ok, err := s.store.Load(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("load game: %w", err)
	}
	if ok {
		return game, false, nil
	}
	game, err = s.createLocked(ctx, key)
	if err != nil {
		return nil, false, err
	}
	return game, true, nil
}

func (s *GameService) createLocked(ctx context.Context, key string) (*domain.Game, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	game, err := domain.NewGame(categories, s.roster, s.now())
	if err != nil {
		return nil, err
	}
	if err := game.StartNewRound(s.picker, s.now()); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, key, game); err != nil {
		return nil, fmt.Errorf("save game: %w", err)
	}
	log.Printf("started game with %d categories for session %s", len(categories), key)
	return game, nil
}

// resolvePlayer defaults an empty player id to the first player in the list.
func (s *GameService) resolvePlayer(game *domain.Game, playerID string) string {
	if playerID != "" {
		return playerID
	}
	if len(game.Players) > 0 {
		return game.Players[0].ID
	}
	return ""
}

func (s *GameService) publishResults(winner domain.Player, players []domain.Player) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	receipt := ""
	if s.highscore != nil {
		id, err := s.highscore.Publish(ctx, players, winner.ID)
		if err != nil {
			log.Printf("highscore publish failed: %v", err)
		} else {
			receipt = id
			log.Printf("highscore published, receipt %s", receipt)
		}
	}
	if s.social != nil {
		message := fmt.Sprintf("%s won a trivia game", winner.DisplayName())
		if receipt != "" {
			message = fmt.Sprintf("%s won a trivia game, highscore entry %s", winner.DisplayName(), receipt)
		}
		if err := s.social.Post(ctx, message); err != nil {
			log.Printf("social post failed: %v", err)
		}
	}
}

// keyedLocks hands out one mutex per session key.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedLocks) acquire(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	k.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
