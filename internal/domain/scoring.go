package domain

import "math"

// Score evaluates an answer submission against a question and returns the
// awarded points. The selection must exactly equal the question's correct
// choice set to count; subsets, supersets and empty selections score zero.
// A fully correct answer is scaled by the fraction of the answer window left,
// so answering with the full window yields the question's base points and
// answering at zero yields nothing. timeLeft is clamped into
// [0, MaxTimeSeconds] first, so a falsified value cannot exceed full credit.
func Score(q Question, selectedChoiceIDs []string, timeLeft float64) int {
	if !fullyCorrect(q, selectedChoiceIDs) {
		return 0
	}
	base := q.BasePoints()
	if q.MaxTimeSeconds <= 0 {
		return base
	}
	if timeLeft < 0 {
		timeLeft = 0
	}
	if timeLeft > q.MaxTimeSeconds {
		timeLeft = q.MaxTimeSeconds
	}
	awarded := int(math.Round(float64(base) * timeLeft / q.MaxTimeSeconds))
	if awarded > base {
		awarded = base
	}
	return awarded
}

// fullyCorrect reports set equality between the selection and the question's
// correct choice ids.
func fullyCorrect(q Question, selected []string) bool {
	correct := make(map[string]bool)
	for _, id := range q.CorrectChoiceIDs() {
		correct[id] = true
	}
	if len(correct) == 0 {
		return false
	}
	seen := make(map[string]bool)
	for _, id := range selected {
		if !correct[id] {
			return false
		}
		seen[id] = true
	}
	return len(seen) == len(correct)
}
