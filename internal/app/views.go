package app

import "trivia-game-service/internal/domain"

// Phases of the player-visible game flow.
const (
	PhaseQuestion  = "question"
	PhaseRoundOver = "round-over"
	PhaseGameOver  = "game-over"
)

// ChoiceView is a choice rendered for the client without the correctness flag.
type ChoiceView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuestionView is the current question rendered for the client.
type QuestionView struct {
	ID             string       `json:"id"`
	Category       string       `json:"category"`
	Text           string       `json:"text"`
	MaxTimeSeconds float64      `json:"maxTimeSeconds"`
	Number         int          `json:"number"`
	Total          int          `json:"total"`
	Choices        []ChoiceView `json:"choices"`
}

// ScoreView is one scoreboard line.
type ScoreView struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

// StateView is a snapshot of the game for one requesting player: the phase to
// navigate to, the question awaiting them (when in play), and the scoreboard.
type StateView struct {
	Phase          string        `json:"phase"`
	Question       *QuestionView `json:"question,omitempty"`
	Scores         []ScoreView   `json:"scores"`
	RoundsPlayed   int           `json:"roundsPlayed"`
	CategoriesLeft int           `json:"categoriesLeft"`
	Winner         *ScoreView    `json:"winner,omitempty"`
}

func questionView(round *domain.Round, playerID, lang string) *QuestionView {
	question, ok := round.CurrentQuestion(playerID)
	if !ok {
		return nil
	}
	choices := make([]ChoiceView, 0, len(question.Choices))
	for _, c := range question.Choices {
		choices = append(choices, ChoiceView{ID: c.ID, Text: c.Text.Get(lang)})
	}
	return &QuestionView{
		ID:             question.ID,
		Category:       round.Category.Name.Get(lang),
		Text:           question.Text.Get(lang),
		MaxTimeSeconds: question.MaxTimeSeconds,
		Number:         round.Cursors[playerID] + 1,
		Total:          len(round.Questions),
		Choices:        choices,
	}
}

func stateView(game *domain.Game, playerID, lang string) StateView {
	view := StateView{
		Phase:          PhaseQuestion,
		RoundsPlayed:   len(game.Rounds),
		CategoriesLeft: len(game.Pool),
		Scores:         make([]ScoreView, 0, len(game.Players)),
	}
	for _, p := range game.Players {
		view.Scores = append(view.Scores, ScoreView{
			PlayerID: p.ID,
			Name:     p.DisplayName(),
			Score:    game.TotalScore(p.ID),
		})
	}

	switch {
	case game.IsGameOver():
		view.Phase = PhaseGameOver
		if winner, err := game.Winner(); err == nil {
			view.Winner = &ScoreView{
				PlayerID: winner.ID,
				Name:     winner.DisplayName(),
				Score:    game.TotalScore(winner.ID),
			}
		}
	case game.IsRoundOver():
		view.Phase = PhaseRoundOver
	default:
		if round := game.CurrentRound(); round != nil {
			view.Question = questionView(round, playerID, lang)
		}
	}
	return view
}
