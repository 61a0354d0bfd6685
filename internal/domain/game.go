package domain

import "time"

// Game owns the category pool, the sequence of rounds, and the player list
// for one play session. Categories move from the pool into rounds and are
// never reused; the last element of Rounds is the active round. The struct
// is a plain data snapshot so the session cache can serialize it as JSON.
type Game struct {
	Players          []Player   `json:"players"`
	Pool             []Category `json:"pool"`
	Rounds           []*Round   `json:"rounds"`
	CreatedAt        time.Time  `json:"createdAt"`
	ResultsPublished bool       `json:"resultsPublished"`
}

// NewGame creates a game over the full category pool without starting a round.
func NewGame(categories []Category, players []Player, now time.Time) (*Game, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}
	if len(categories) == 0 {
		return nil, ErrNoCategoriesLeft
	}
	pool := make([]Category, len(categories))
	copy(pool, categories)
	return &Game{
		Players:   players,
		Pool:      pool,
		CreatedAt: now,
	}, nil
}

// CurrentRound returns the active round, or nil before the first round starts.
func (g *Game) CurrentRound() *Round {
	if len(g.Rounds) == 0 {
		return nil
	}
	return g.Rounds[len(g.Rounds)-1]
}

// StartNewRound consumes one category from the pool, chosen by the picker,
// and begins a round over its questions with every cursor reset. It fails
// while a round is still in progress or once the pool is exhausted.
func (g *Game) StartNewRound(picker CategoryPicker, now time.Time) error {
	if current := g.CurrentRound(); current != nil && !current.IsOver() {
		return ErrRoundInProgress
	}
	if len(g.Pool) == 0 {
		return ErrNoCategoriesLeft
	}
	idx := picker.Pick(g.Pool)
	if idx < 0 || idx >= len(g.Pool) {
		idx = 0
	}
	category := g.Pool[idx]
	g.Pool = append(g.Pool[:idx], g.Pool[idx+1:]...)
	g.Rounds = append(g.Rounds, NewRound(category, g.Players, now))
	return nil
}

// CurrentQuestion returns the question awaiting the player in the active
// round, or false when no round is active or the player is done.
func (g *Game) CurrentQuestion(playerID string) (Question, bool) {
	current := g.CurrentRound()
	if current == nil {
		return Question{}, false
	}
	return current.CurrentQuestion(playerID)
}

// AnswerCurrentQuestion records the submission in the active round and
// advances the player's cursor regardless of correctness.
func (g *Game) AnswerCurrentQuestion(playerID string, choiceIDs []string, timeLeft float64, now time.Time) (Answer, error) {
	current := g.CurrentRound()
	if current == nil {
		return Answer{}, ErrNoActiveRound
	}
	return current.RecordAnswer(playerID, choiceIDs, timeLeft, now)
}

// IsRoundOver reports whether the active round is finished for all players.
func (g *Game) IsRoundOver() bool {
	current := g.CurrentRound()
	return current != nil && current.IsOver()
}

// IsGameOver reports whether the category pool is exhausted and the last
// round has finished.
func (g *Game) IsGameOver() bool {
	return len(g.Pool) == 0 && g.IsRoundOver()
}

// TotalScore sums the player's awarded points across all rounds.
func (g *Game) TotalScore(playerID string) int {
	total := 0
	for _, round := range g.Rounds {
		total += round.Score(playerID)
	}
	return total
}

// Winner returns the player with the highest cumulative score once the game
// is over. Ties resolve to the earliest player in the game's player list.
func (g *Game) Winner() (Player, error) {
	if !g.IsGameOver() {
		return Player{}, ErrGameNotOver
	}
	winner := g.Players[0]
	best := g.TotalScore(winner.ID)
	for _, p := range g.Players[1:] {
		if score := g.TotalScore(p.ID); score > best {
			winner, best = p, score
		}
	}
	return winner, nil
}

// PlayerByID looks a player up in the game's player list.
func (g *Game) PlayerByID(playerID string) (Player, bool) {
	for _, p := range g.Players {
		if p.ID == playerID {
			return p, true
		}
	}
	return Player{}, false
}
