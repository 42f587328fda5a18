package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTournamentDuration(t *testing.T) {
	tests := []struct {
		name     string
		class    string
		expected time.Duration
	}{
		{"one minute", DURATION_1M, time.Minute},
		{"fifteen minutes", DURATION_15M, 15 * time.Minute},
		{"one hour", DURATION_1H, time.Hour},
		{"four hours", DURATION_4H, 4 * time.Hour},
		{"one day", DURATION_24H, 24 * time.Hour},
		{"unknown falls back to one hour", "2h", time.Hour},
		{"empty falls back to one hour", "", time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TournamentDuration(tt.class))
		})
	}
}

func TestClampRevealTime(t *testing.T) {
	endTime := time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC)

	t.Run("nil clamps to end time", func(t *testing.T) {
		assert.Equal(t, endTime, ClampRevealTime(nil, endTime))
	})

	t.Run("before end time clamps to end time", func(t *testing.T) {
		early := endTime.Add(-10 * time.Minute)
		assert.Equal(t, endTime, ClampRevealTime(&early, endTime))
	})

	t.Run("equal to end time clamps to end time", func(t *testing.T) {
		at := endTime
		assert.Equal(t, endTime, ClampRevealTime(&at, endTime))
	})

	t.Run("after end time is kept", func(t *testing.T) {
		late := endTime.Add(30 * time.Minute)
		assert.Equal(t, late, ClampRevealTime(&late, endTime))
	})
}

func TestLockAndCacheKeys(t *testing.T) {
	assert.Equal(t, "lock:tournament-scoring:42", LockKeyTournamentScoring(42))
	assert.Equal(t, "tournament:list", DBKeyTournamentList())
	assert.Equal(t, "tournament:42", DBKeyTournament(42))
	assert.Equal(t, "tournament:42:results", DBKeyTournamentResults(42))
	assert.Equal(t, "limit:prediction:0xabc", LimitKeyUserPrediction("0xabc"))
}
