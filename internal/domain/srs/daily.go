package srs

import "time"

// DayState classifies a deck's learned-today counter relative to the
// current calendar day. The counter is only meaningful while the deck's
// last-learned day is still today; once the day rolls over the stored value
// is stale and the full learning rate applies again. The physical reset
// happens on the next recorded review, not here.
type DayState int

const (
	// DayStale means the deck was never learned, or was last learned on an
	// earlier calendar day. The learned-today counter does not count.
	DayStale DayState = iota

	// DayFresh means the deck was last learned today, so the learned-today
	// counter reduces the remaining budget.
	DayFresh
)

// DayStateOf returns the deck's day state for the given moment.
// lastLearned is nil when the deck has never been learned.
func DayStateOf(lastLearned *time.Time, now time.Time) DayState {
	if lastLearned == nil {
		return DayStale
	}
	if SameDay(now, *lastLearned) {
		return DayFresh
	}
	return DayStale
}

// RemainingNewCardBudget computes how many new cards may still be
// introduced today for a deck with the given learning rate and
// learned-today counter. Stale decks get the full rate; fresh decks get the
// rate minus what was already learned, never going negative.
func RemainingNewCardBudget(learningRate, numCardsLearned int, lastLearned *time.Time, now time.Time) int {
	if DayStateOf(lastLearned, now) == DayStale {
		return learningRate
	}
	if remaining := learningRate - numCardsLearned; remaining > 0 {
		return remaining
	}
	return 0
}
