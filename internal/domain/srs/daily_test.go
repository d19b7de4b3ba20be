package srs

import (
	"testing"
	"time"
)

func TestRemainingNewCardBudget(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.May, 20, 14, 30, 0, 0, time.UTC)
	today := StartOfDay(now)
	yesterday := today.AddDate(0, 0, -1)

	testCases := []struct {
		name        string
		rate        int
		learned     int
		lastLearned *time.Time
		expected    int
	}{
		{
			name:        "never learned returns full rate regardless of counter",
			rate:        10,
			learned:     7,
			lastLearned: nil,
			expected:    10,
		},
		{
			name:        "learned yesterday returns full rate",
			rate:        10,
			learned:     3,
			lastLearned: &yesterday,
			expected:    10,
		},
		{
			name:        "learned today subtracts counter",
			rate:        10,
			learned:     3,
			lastLearned: &today,
			expected:    7,
		},
		{
			name:        "counter past rate never goes negative",
			rate:        10,
			learned:     12,
			lastLearned: &today,
			expected:    0,
		},
		{
			name:        "counter exactly at rate returns zero",
			rate:        5,
			learned:     5,
			lastLearned: &today,
			expected:    0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := RemainingNewCardBudget(tc.rate, tc.learned, tc.lastLearned, now)
			if got != tc.expected {
				t.Errorf("Expected budget %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestDayStateOf(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.May, 20, 9, 0, 0, 0, time.UTC)
	today := StartOfDay(now)
	yesterday := today.AddDate(0, 0, -1)

	if got := DayStateOf(nil, now); got != DayStale {
		t.Errorf("Expected DayStale for never-learned deck, got %v", got)
	}
	if got := DayStateOf(&yesterday, now); got != DayStale {
		t.Errorf("Expected DayStale for deck learned yesterday, got %v", got)
	}
	if got := DayStateOf(&today, now); got != DayFresh {
		t.Errorf("Expected DayFresh for deck learned today, got %v", got)
	}
}
