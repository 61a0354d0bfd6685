package memory

import (
	"context"
	"testing"
	"time"

	"trivia-game-service/internal/domain"
)

func TestGameStoreRoundTrip(t *testing.T) {
	store := NewGameStore(time.Minute)
	game := sampleGame(t)

	if err := store.Save(context.Background(), "sess-1", game); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, ok, err := store.Load(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatalf("expected hit")
	}
	if len(loaded.Pool) != len(game.Pool) || len(loaded.Players) != 1 {
		t.Fatalf("snapshot mismatch: %+v", loaded)
	}

	// The loaded game is a copy; mutating it must not leak into the store.
	loaded.Pool = nil
	again, _, _ := store.Load(context.Background(), "sess-1")
	if len(again.Pool) != len(game.Pool) {
		t.Fatalf("stored snapshot mutated through a loaded copy")
	}
}

func TestGameStoreMissOnUnknownKey(t *testing.T) {
	store := NewGameStore(time.Minute)
	if _, ok, err := store.Load(context.Background(), "nope"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
}

func TestGameStoreExpiresFromLastWrite(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := NewGameStoreWithClock(time.Minute, clock)

	if err := store.Save(context.Background(), "sess-1", sampleGame(t)); err != nil {
		t.Fatalf("save: %v", err)
	}

	now = now.Add(40 * time.Second)
	if _, ok, _ := store.Load(context.Background(), "sess-1"); !ok {
		t.Fatalf("expected hit before expiry")
	}

	// Reads do not slide the window.
	now = now.Add(40 * time.Second)
	if _, ok, _ := store.Load(context.Background(), "sess-1"); ok {
		t.Fatalf("expected miss after fixed TTL despite intermediate read")
	}
}

func sampleGame(t *testing.T) *domain.Game {
	t.Helper()
	categories := []domain.Category{
		{
			ID:   "cat-1",
			Name: domain.Text{EN: "History"},
			Questions: []domain.Question{
				{
					ID:             "q1",
					MaxTimeSeconds: 30,
					Points:         10,
					Choices:        []domain.Choice{{ID: "c1", Correct: true}},
				},
			},
		},
	}
	game, err := domain.NewGame(categories, []domain.Player{{ID: "p1", FirstName: "Alice"}}, time.Now())
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return game
}
