package services

import (
	"errors"
	"fmt"
	"time"
)

var ErrTournamentNotFound = errors.New("tournament not found")
var ErrAlreadyPredicted = errors.New("prediction already submitted")
var ErrTournamentScoringLock = errors.New("tournament scoring locked")

const (
	DEFAULT_TOURNAMENT_NAME = "Tournament"

	DURATION_1M  = "1m"
	DURATION_15M = "15m"
	DURATION_1H  = "1h"
	DURATION_4H  = "4h"
	DURATION_24H = "24h"

	POINTS_PER_CORRECT_PREDICTION = 10
	DEFAULT_ACTUAL_DIRECTION      = "up"

	SCORING_LOCK_EXPIRY = 2 * time.Minute

	PREDICTION_RATE_LIMIT_PER_MINUTE = 30

	CACHE_TTL_5_SECONDS  = 5 * time.Second
	CACHE_TTL_15_SECONDS = 15 * time.Second
	CACHE_TTL_1_MIN      = 1 * time.Minute
	CACHE_TTL_5_MINS     = 5 * time.Minute

	DEFAULT_SWEEP_CRON = "@every 30s"

	ENV_ORACLE_FEED_URL = "ORACLE_FEED_URL"
	ENV_MOVE_PACKAGE_ID = "MOVE_PACKAGE_ID"
	ENV_POOLS_OBJECT_ID = "POOLS_OBJECT_ID"
	ENV_SWEEP_CRON      = "SWEEP_CRON"
)

func LockKeyTournamentScoring(tournamentID int64) string {
	return fmt.Sprintf("lock:tournament-scoring:%d", tournamentID)
}

// db
func DBKeyTournamentList() string {
	return "tournament:list"
}

func DBKeyTournament(tournamentID int64) string {
	return fmt.Sprintf("tournament:%d", tournamentID)
}

func DBKeyTournamentResults(tournamentID int64) string {
	return fmt.Sprintf("tournament:%d:results", tournamentID)
}

func LimitKeyUserPrediction(userAddress string) string {
	return fmt.Sprintf("limit:prediction:%s", userAddress)
}
