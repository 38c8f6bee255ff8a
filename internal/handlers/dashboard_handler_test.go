package handlers

import (
	"testing"
	"time"
)

func TestRemainingToday(t *testing.T) {
	cases := []struct {
		name  string
		total int64
		hour  int
		want  int
	}{
		// До открытия в 08:00 ни одно занятие еще не прошло.
		{"early morning", 3, 0, 3},
		{"before opening", 6, 6, 6},
		{"at opening", 6, 8, 6},
		{"midday", 6, 14, 2},
		{"evening floor", 2, 20, 0},
		{"no lessons", 0, 10, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			now := time.Date(2025, time.September, 3, tc.hour, 0, 0, 0, time.UTC)
			if got := remainingToday(tc.total, now); got != tc.want {
				t.Errorf("remainingToday(%d, %02d:00) = %d, want %d", tc.total, tc.hour, got, tc.want)
			}
		})
	}
}
