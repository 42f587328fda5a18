package services

import (
	"errors"
	"testing"

	"vibeswipe/internal/models"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepOutcome(t *testing.T) {
	errBoom := errors.New("score write failed")

	tests := []struct {
		name       string
		result     *models.ScoringResult
		err        error
		wantScored bool
		wantErr    error
	}{
		{
			name:       "non-empty results reports scored",
			result:     &models.ScoringResult{Results: []models.LeaderboardRow{{Rank: 1, UserAddress: "0xa", Score: 20}}},
			wantScored: true,
		},
		{
			name:   "empty results still finishes but is not scored",
			result: &models.ScoringResult{},
		},
		{
			name: "lock conflict is a benign skip, not an error",
			err:  errorx.Wrap(ErrTournamentScoringLock, errorx.Invalid),
		},
		{
			name:    "failure is recorded",
			err:     errBoom,
			wantErr: errBoom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := sweepOutcome(7, tt.result, tt.err)
			assert.Equal(t, int64(7), outcome.TournamentID)
			assert.Equal(t, tt.wantScored, outcome.Scored)
			assert.Equal(t, tt.wantErr, outcome.Err)
		})
	}
}

// A failure classifying one tournament never leaks into the others: each
// attempt yields its own outcome and the later ones are still produced.
func TestSweepOutcome_FailuresAreIsolated(t *testing.T) {
	attempts := []struct {
		id     int64
		result *models.ScoringResult
		err    error
	}{
		{1, nil, errors.New("oracle store down")},
		{2, nil, errorx.Wrap(ErrTournamentScoringLock, errorx.Invalid)},
		{3, &models.ScoringResult{Results: []models.LeaderboardRow{{Rank: 1, UserAddress: "0xc", Score: 10}}}, nil},
	}

	outcomes := make([]models.SweepOutcome, 0, len(attempts))
	for _, attempt := range attempts {
		outcomes = append(outcomes, sweepOutcome(attempt.id, attempt.result, attempt.err))
	}

	require.Len(t, outcomes, 3)
	assert.Error(t, outcomes[0].Err)
	assert.False(t, outcomes[0].Scored)

	assert.NoError(t, outcomes[1].Err)
	assert.False(t, outcomes[1].Scored)

	assert.NoError(t, outcomes[2].Err)
	assert.True(t, outcomes[2].Scored)
}

func TestIsScoringLocked(t *testing.T) {
	assert.True(t, IsScoringLocked(errorx.Wrap(ErrTournamentScoringLock, errorx.Invalid)))
	assert.False(t, IsScoringLocked(errors.New("score write failed")))
	assert.False(t, IsScoringLocked(nil))
}
