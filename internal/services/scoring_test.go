package services

import (
	"testing"
	"time"

	"vibeswipe/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(userID int64, address, symbol, direction string, at time.Time) *models.PredictionEntry {
	return &models.PredictionEntry{
		UserID:             userID,
		WalletAddress:      address,
		AssetSymbol:        symbol,
		PredictedDirection: direction,
		CreatedAt:          at,
	}
}

func TestComputeStandings(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	actual := map[string]string{
		"BTC": "up",
		"ETH": "down",
		"SOL": "down",
	}

	// A: 2 correct, B: 1 correct, C: 0 correct; entry fee 10, 3 joins
	entries := []*models.PredictionEntry{
		entry(1, "0xa", "BTC", "up", base),
		entry(1, "0xa", "ETH", "down", base.Add(time.Minute)),
		entry(2, "0xb", "BTC", "up", base.Add(2*time.Minute)),
		entry(2, "0xb", "SOL", "up", base.Add(3*time.Minute)),
		entry(3, "0xc", "BTC", "down", base.Add(4*time.Minute)),
	}

	standings := ComputeStandings(entries, 3, "10", actual)
	require.Len(t, standings, 3)

	assert.Equal(t, int64(1), standings[0].UserID)
	assert.Equal(t, 20, standings[0].Score)
	assert.Equal(t, 1, standings[0].Rank)
	assert.InDelta(t, 16.363636, standings[0].RewardAmount, 1e-9)

	assert.Equal(t, int64(2), standings[1].UserID)
	assert.Equal(t, 10, standings[1].Score)
	assert.Equal(t, 2, standings[1].Rank)
	assert.InDelta(t, 8.181818, standings[1].RewardAmount, 1e-9)

	assert.Equal(t, int64(3), standings[2].UserID)
	assert.Equal(t, 0, standings[2].Score)
	assert.Equal(t, 3, standings[2].Rank)
	assert.InDelta(t, 5.454545, standings[2].RewardAmount, 1e-9)
}

func TestComputeStandings_ZeroScoreUsersIncluded(t *testing.T) {
	base := time.Now()
	entries := []*models.PredictionEntry{
		entry(7, "0xg", "BTC", "down", base),
	}

	standings := ComputeStandings(entries, 1, "5", map[string]string{"BTC": "up"})
	require.Len(t, standings, 1)
	assert.Equal(t, 0, standings[0].Score)
	assert.Equal(t, 1, standings[0].Rank)
	// single participant still takes the whole pool
	assert.InDelta(t, 5.0, standings[0].RewardAmount, 1e-9)
}

func TestComputeStandings_UnparseableFeeZeroesRewards(t *testing.T) {
	base := time.Now()
	entries := []*models.PredictionEntry{
		entry(1, "0xa", "BTC", "up", base),
		entry(2, "0xb", "BTC", "down", base.Add(time.Second)),
	}

	standings := ComputeStandings(entries, 2, "free", map[string]string{"BTC": "up"})
	require.Len(t, standings, 2)
	for _, s := range standings {
		assert.Zero(t, s.RewardAmount)
	}
	// scores and ranks are unaffected
	assert.Equal(t, 10, standings[0].Score)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, 2, standings[1].Rank)
}

func TestComputeStandings_TieBrokenByEarliestPrediction(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []*models.PredictionEntry{
		entry(2, "0xb", "BTC", "up", base.Add(time.Minute)),
		entry(1, "0xa", "BTC", "up", base),
	}

	standings := ComputeStandings(entries, 2, "10", map[string]string{"BTC": "up"})
	require.Len(t, standings, 2)
	assert.Equal(t, int64(1), standings[0].UserID)
	assert.Equal(t, int64(2), standings[1].UserID)

	// same scores, distinct dense ranks
	assert.Equal(t, standings[0].Score, standings[1].Score)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, 2, standings[1].Rank)
}

func TestComputeStandings_TieBrokenByUserID(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []*models.PredictionEntry{
		entry(9, "0xi", "BTC", "up", at),
		entry(4, "0xd", "BTC", "up", at),
	}

	standings := ComputeStandings(entries, 2, "10", map[string]string{"BTC": "up"})
	require.Len(t, standings, 2)
	assert.Equal(t, int64(4), standings[0].UserID)
	assert.Equal(t, int64(9), standings[1].UserID)
}

func TestComputeStandings_UnknownSymbolDefaultsUp(t *testing.T) {
	base := time.Now()
	entries := []*models.PredictionEntry{
		entry(1, "0xa", "PEPE", "up", base),
		entry(2, "0xb", "PEPE", "down", base.Add(time.Second)),
	}

	standings := ComputeStandings(entries, 2, "10", map[string]string{})
	require.Len(t, standings, 2)
	assert.Equal(t, int64(1), standings[0].UserID)
	assert.Equal(t, 10, standings[0].Score)
	assert.Equal(t, 0, standings[1].Score)
}

// Symbols are matched exactly against the oracle table; only directions are
// compared case-insensitively. "btc" is a different symbol than "BTC" and
// falls through to the default verdict.
func TestComputeStandings_SymbolLookupIsExact(t *testing.T) {
	base := time.Now()
	entries := []*models.PredictionEntry{
		entry(1, "0xa", "btc", "up", base),
		entry(2, "0xb", "BTC", "up", base.Add(time.Second)),
	}

	standings := ComputeStandings(entries, 2, "10", map[string]string{"BTC": "down"})
	require.Len(t, standings, 2)
	assert.Equal(t, int64(1), standings[0].UserID)
	assert.Equal(t, 10, standings[0].Score)
	assert.Equal(t, 0, standings[1].Score)
}

func TestComputeStandings_DirectionMatchIsCaseInsensitive(t *testing.T) {
	entries := []*models.PredictionEntry{
		entry(1, "0xa", "BTC", "UP", time.Now()),
	}

	standings := ComputeStandings(entries, 1, "1", map[string]string{"BTC": "up"})
	require.Len(t, standings, 1)
	assert.Equal(t, 10, standings[0].Score)
}

func TestComputeStandings_Empty(t *testing.T) {
	standings := ComputeStandings(nil, 0, "10", map[string]string{})
	assert.Empty(t, standings)
}

func TestComputeStandings_RewardsNeverIncreaseWithRank(t *testing.T) {
	base := time.Now()
	entries := make([]*models.PredictionEntry, 0, 8)
	for i := int64(1); i <= 8; i++ {
		direction := "up"
		if i%3 == 0 {
			direction = "down"
		}
		entries = append(entries, entry(i, "0x", "BTC", direction, base.Add(time.Duration(i)*time.Second)))
	}

	standings := ComputeStandings(entries, 8, "2.5", map[string]string{"BTC": "up"})
	require.Len(t, standings, 8)

	sum := 0.0
	for i := 1; i < len(standings); i++ {
		assert.LessOrEqual(t, standings[i].RewardAmount, standings[i-1].RewardAmount)
	}
	for _, s := range standings {
		sum += s.RewardAmount
	}
	// rounding keeps the distributed total within a hair of the pool
	assert.InDelta(t, 20.0, sum, 1e-4)
}

func TestPrizePool(t *testing.T) {
	tests := []struct {
		name         string
		entryFee     string
		participants int64
		expected     float64
	}{
		{"integer fee", "10", 3, 30},
		{"decimal fee", "0.5", 4, 2},
		{"zero participants", "10", 0, 0},
		{"empty fee", "", 5, 0},
		{"garbage fee", "ten", 5, 0},
		{"infinite fee", "Inf", 5, 0},
		{"nan fee", "NaN", 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PrizePool(tt.entryFee, tt.participants))
		})
	}
}

func TestRoundReward(t *testing.T) {
	assert.Equal(t, 16.363636, roundReward(180.0/11.0))
	assert.Equal(t, 1.234568, roundReward(1.2345678))
	assert.Equal(t, 1.0, roundReward(1.0000004))
}
