package domain

import "time"

// Answer is the record of one player's submission for one question.
type Answer struct {
	QuestionID string   `json:"questionId"`
	ChoiceIDs  []string `json:"choiceIds"`
	TimeLeft   float64  `json:"timeLeft"` // effective seconds credited
	Points     int      `json:"points"`
}

// Round plays one category's worth of questions. The category and question
// list are fixed at creation; cursors and answer records mutate as play
// proceeds. All fields are exported so a game snapshot serializes cleanly.
type Round struct {
	Category  Category             `json:"category"`
	Questions []Question           `json:"questions"`
	Cursors   map[string]int       `json:"cursors"`
	Answers   map[string][]Answer  `json:"answers"`
	AskedAt   map[string]time.Time `json:"askedAt"`
}

// NewRound starts the category's full question list for the given players,
// with every cursor on the first question.
func NewRound(category Category, players []Player, now time.Time) *Round {
	r := &Round{
		Category:  category,
		Questions: category.Questions,
		Cursors:   make(map[string]int, len(players)),
		Answers:   make(map[string][]Answer, len(players)),
		AskedAt:   make(map[string]time.Time, len(players)),
	}
	for _, p := range players {
		r.Cursors[p.ID] = 0
		r.AskedAt[p.ID] = now
	}
	return r
}

// CurrentQuestion returns the question at the player's cursor, or false when
// the player is unknown or has exhausted the round.
func (r *Round) CurrentQuestion(playerID string) (Question, bool) {
	cursor, ok := r.Cursors[playerID]
	if !ok || cursor >= len(r.Questions) {
		return Question{}, false
	}
	return r.Questions[cursor], true
}

// RecordAnswer scores and stores the submission for the player's current
// question and advances the cursor unconditionally, so a timed-out or empty
// submission still consumes the question slot. Choice ids that do not belong
// to the current question are dropped, not rejected. The client-reported
// timeLeft is clamped against the server-tracked remainder of the answer
// window; the client value is a hint, never ground truth.
func (r *Round) RecordAnswer(playerID string, choiceIDs []string, timeLeft float64, now time.Time) (Answer, error) {
	cursor, ok := r.Cursors[playerID]
	if !ok {
		return Answer{}, ErrUnknownPlayer
	}
	if cursor >= len(r.Questions) {
		return Answer{}, ErrNoCurrentQuestion
	}
	question := r.Questions[cursor]

	selected := make([]string, 0, len(choiceIDs))
	seen := make(map[string]bool, len(choiceIDs))
	for _, id := range choiceIDs {
		if question.HasChoice(id) && !seen[id] {
			selected = append(selected, id)
			seen[id] = true
		}
	}

	effective := timeLeft
	if asked, ok := r.AskedAt[playerID]; ok {
		remaining := question.MaxTimeSeconds - now.Sub(asked).Seconds()
		if remaining < 0 {
			remaining = 0
		}
		if effective > remaining {
			effective = remaining
		}
	}
	if effective < 0 {
		effective = 0
	}

	answer := Answer{
		QuestionID: question.ID,
		ChoiceIDs:  selected,
		TimeLeft:   effective,
		Points:     Score(question, selected, effective),
	}
	r.Answers[playerID] = append(r.Answers[playerID], answer)
	r.Cursors[playerID] = cursor + 1
	r.AskedAt[playerID] = now
	return answer, nil
}

// IsOver reports whether every player's cursor has passed the last question.
func (r *Round) IsOver() bool {
	for _, cursor := range r.Cursors {
		if cursor < len(r.Questions) {
			return false
		}
	}
	return true
}

// Score sums the points the player earned in this round.
func (r *Round) Score(playerID string) int {
	total := 0
	for _, a := range r.Answers[playerID] {
		total += a.Points
	}
	return total
}
