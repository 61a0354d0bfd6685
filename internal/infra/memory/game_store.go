package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"trivia-game-service/internal/domain"
)

// GameStore is an in-memory implementation of app.GameStore. Games are held
// as JSON snapshots so callers get the same copy-on-load semantics as the
// Redis-backed store, and the TTL is a fixed window from the last save with
// no renewal on read.
type GameStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu    sync.Mutex
	games map[string]storedGame
}

type storedGame struct {
	snapshot  []byte
	expiresAt time.Time
}

func NewGameStore(ttl time.Duration) *GameStore {
	return NewGameStoreWithClock(ttl, time.Now)
}

// NewGameStoreWithClock allows deterministic expiry in tests.
func NewGameStoreWithClock(ttl time.Duration, clock func() time.Time) *GameStore {
	return &GameStore{
		ttl:   ttl,
		clock: clock,
		games: make(map[string]storedGame),
	}
}

func (s *GameStore) Load(_ context.Context, key string) (*domain.Game, bool, error) {
	now := s.clock()

	s.mu.Lock()
	entry, ok := s.games[key]
	if ok && !entry.expiresAt.IsZero() && !entry.expiresAt.After(now) {
		delete(s.games, key)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, false, nil
	}
	game := &domain.Game{}
	if err := json.Unmarshal(entry.snapshot, game); err != nil {
		return nil, false, err
	}
	return game, true, nil
}

func (s *GameStore) Save(_ context.Context, key string, game *domain.Game) error {
	snapshot, err := json.Marshal(game)
	if err != nil {
		return err
	}
	entry := storedGame{snapshot: snapshot}
	if s.ttl > 0 {
		entry.expiresAt = s.clock().Add(s.ttl)
	}

	s.mu.Lock()
	s.games[key] = entry
	s.mu.Unlock()
	return nil
}
