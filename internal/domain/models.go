package domain

import "time"

// Text is a two-language localized string pair.
type Text struct {
	EN string `json:"en"`
	DE string `json:"de"`
}

// Get returns the variant for the given language tag, defaulting to English.
func (t Text) Get(lang string) string {
	if lang == "de" && t.DE != "" {
		return t.DE
	}
	return t.EN
}

// Choice represents a possible answer for a question. Immutable once loaded.
type Choice struct {
	ID      string `json:"id"`
	Text    Text   `json:"text"`
	Correct bool   `json:"correct"`
}

// Question models an MCQ question with one or more correct choices.
type Question struct {
	ID             string   `json:"id"`
	Text           Text     `json:"text"`
	MaxTimeSeconds float64  `json:"maxTimeSeconds"` // answer window, positive
	Points         int      `json:"points"`         // defaults to 1 if zero
	Choices        []Choice `json:"choices"`
}

// BasePoints returns the configured points for the question, defaulting to 1.
func (q Question) BasePoints() int {
	if q.Points > 0 {
		return q.Points
	}
	return 1
}

// CorrectChoiceIDs returns the ids of the choices flagged correct.
func (q Question) CorrectChoiceIDs() []string {
	ids := make([]string, 0, len(q.Choices))
	for _, c := range q.Choices {
		if c.Correct {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// HasChoice reports whether the given choice id belongs to this question.
func (q Question) HasChoice(id string) bool {
	for _, c := range q.Choices {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Category groups an ordered list of questions under a localized name.
type Category struct {
	ID        string     `json:"id"`
	Name      Text       `json:"name"`
	Questions []Question `json:"questions"`
}

// Player identifies a participant. The engine never mutates players; the
// identity attributes exist for final-result reporting.
type Player struct {
	ID        string     `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Gender    string     `json:"gender"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
}

// DisplayName renders the player's name for scoreboards and messages.
func (p Player) DisplayName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
