package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"trivia-game-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// GameStore keeps one JSON game snapshot per session key. Saves overwrite
// the snapshot and restart the fixed TTL window; loads read with GET and
// never touch the TTL, so an idle session expires on schedule and the next
// load yields a clean miss.
type GameStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGameStore(client *redis.Client, ttl time.Duration) *GameStore {
	return &GameStore{client: client, ttl: ttl}
}

func (s *GameStore) Load(ctx context.Context, key string) (*domain.Game, bool, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load game snapshot: %w", err)
	}
	game := &domain.Game{}
	if err := json.Unmarshal(raw, game); err != nil {
		return nil, false, fmt.Errorf("unmarshal game snapshot: %w", err)
	}
	return game, true, nil
}

func (s *GameStore) Save(ctx context.Context, key string, game *domain.Game) error {
	raw, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("marshal game snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key(key), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save game snapshot: %w", err)
	}
	return nil
}

func (s *GameStore) key(sessionKey string) string {
	return "quiz:game:" + sessionKey
}
