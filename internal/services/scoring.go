package services

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"vibeswipe/internal/models"
)

// Standing is one user's computed outcome for a tournament.
type Standing struct {
	UserID        int64
	WalletAddress string
	Score         int
	Rank          int
	RewardAmount  float64
}

// ComputeStandings scores every prediction of a tournament against the
// oracle verdicts and distributes the prize pool by harmonic rank weight.
// It is a pure function of its inputs.
//
// Every user with at least one prediction appears in the result, including
// users with zero correct predictions. Ranks are dense and sequential even
// across equal scores; ties are broken by earliest prediction, then user id.
func ComputeStandings(entries []*models.PredictionEntry, participants int64, entryFee string, actual map[string]string) []Standing {
	pool := PrizePool(entryFee, participants)

	totals := map[int64]int{}
	addresses := map[int64]string{}
	firstAt := map[int64]time.Time{}

	for _, entry := range entries {
		verdict, ok := actual[entry.AssetSymbol]
		if !ok {
			verdict = DEFAULT_ACTUAL_DIRECTION
		}

		points := 0
		if strings.EqualFold(verdict, entry.PredictedDirection) {
			points = POINTS_PER_CORRECT_PREDICTION
		}
		totals[entry.UserID] += points

		addresses[entry.UserID] = entry.WalletAddress
		if at, ok := firstAt[entry.UserID]; !ok || entry.CreatedAt.Before(at) {
			firstAt[entry.UserID] = entry.CreatedAt
		}
	}

	standings := make([]Standing, 0, len(totals))
	for userID, total := range totals {
		standings = append(standings, Standing{
			UserID:        userID,
			WalletAddress: addresses[userID],
			Score:         total,
		})
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Score != standings[j].Score {
			return standings[i].Score > standings[j].Score
		}
		if !firstAt[standings[i].UserID].Equal(firstAt[standings[j].UserID]) {
			return firstAt[standings[i].UserID].Before(firstAt[standings[j].UserID])
		}
		return standings[i].UserID < standings[j].UserID
	})

	weightSum := 0.0
	for rank := 1; rank <= len(standings); rank++ {
		weightSum += 1 / float64(rank)
	}

	for i := range standings {
		standings[i].Rank = i + 1
		if pool == 0 || weightSum == 0 {
			continue
		}

		weight := 1 / float64(i+1)
		standings[i].RewardAmount = roundReward(pool * weight / weightSum)
	}

	return standings
}

// PrizePool is entryFee × participants, or 0 when the fee does not parse to
// a finite number.
func PrizePool(entryFee string, participants int64) float64 {
	fee, err := strconv.ParseFloat(entryFee, 64)
	if err != nil || math.IsNaN(fee) || math.IsInf(fee, 0) {
		return 0
	}

	return fee * float64(participants)
}

// rewards are persisted with 6 decimal places
func roundReward(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
