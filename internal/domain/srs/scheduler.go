// Package srs implements the spaced-repetition scheduling rules: stage
// progression on review outcomes, due-date computation, and the per-day
// new-card admission budget.
package srs

import (
	"time"

	"github.com/wortwise/wortwise-api/internal/domain"
)

// MaxStage is the highest Leitner box a card can reach. A card at MaxStage
// is reviewed every 2^MaxStage = 256 days.
const MaxStage = 8

// NextStage computes the stage a card moves to for the given review
// outcome. The three outcome functions are pure; persisting the result is
// the service layer's job. An unknown outcome leaves the stage unchanged;
// callers validate outcomes before scheduling.
func NextStage(current int, outcome domain.ReviewOutcome) int {
	switch outcome {
	case domain.ReviewOutcomeHard:
		return nextStageHard(current)
	case domain.ReviewOutcomeGood:
		return nextStageGood(current)
	case domain.ReviewOutcomeEasy:
		return nextStageEasy(current)
	}
	return current
}

// nextStageHard demotes the card to a lower box. The thresholds act as a
// floor rather than a decrement: a card in box 0-2 lands on 0, 3-4 on 1,
// 5-6 on 2, anything above on 3. A stage-0 card therefore stays at 0
// instead of being punished further.
func nextStageHard(stage int) int {
	switch {
	case stage <= 2:
		return 0
	case stage <= 4:
		return 1
	case stage <= 6:
		return 2
	default:
		return 3
	}
}

// nextStageGood moves the card up one box, capped at MaxStage.
func nextStageGood(stage int) int {
	if stage < MaxStage {
		return stage + 1
	}
	return MaxStage
}

// nextStageEasy moves the card up two boxes. From box 7 the card snaps to
// MaxStage, so the gain there is one box, not two.
func nextStageEasy(stage int) int {
	if stage <= MaxStage-2 {
		return stage + 2
	}
	return MaxStage
}

// ExpiryFor converts a stage into the card's next due date: 2^stage calendar
// days from now, truncated to midnight in now's location. The result is a
// date-only value; a card is due again on or after that calendar day.
func ExpiryFor(stage int, now time.Time) time.Time {
	due := now.AddDate(0, 0, 1<<uint(stage))
	return StartOfDay(due)
}

// StartOfDay truncates t to midnight, preserving its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day in a's
// location.
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b.In(a.Location())))
}
