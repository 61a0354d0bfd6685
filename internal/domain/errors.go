package domain

import "errors"

var (
	// ErrNoActiveRound is returned when an operation requires a round in play.
	ErrNoActiveRound = errors.New("no active round")
	// ErrRoundInProgress is returned when a new round is requested while the
	// current one has unanswered questions.
	ErrRoundInProgress = errors.New("round still in progress")
	// ErrNoCategoriesLeft is returned when the category pool is exhausted.
	ErrNoCategoriesLeft = errors.New("no categories left")
	// ErrNoCurrentQuestion is returned when a player's cursor is past the last
	// question of the active round.
	ErrNoCurrentQuestion = errors.New("no current question")
	// ErrUnknownPlayer is returned when a player id is not part of the game.
	ErrUnknownPlayer = errors.New("player not part of the game")
	// ErrGameNotOver is returned when the winner is requested before the game ends.
	ErrGameNotOver = errors.New("game not over")
	// ErrNoPlayers is returned when a game is created without players.
	ErrNoPlayers = errors.New("game needs at least one player")
	// ErrStaleSubmission is returned when a submitted question id does not
	// match the player's current question.
	ErrStaleSubmission = errors.New("submission does not match the current question")
)
