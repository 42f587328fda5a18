package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	TournamentStatusUpcoming = "upcoming" // reserved, never assigned by current creation logic
	TournamentStatusActive   = "active"
	TournamentStatusFinished = "finished"
)

type Tournament struct {
	bun.BaseModel `bun:"table:tournament"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Name          string    `bun:"name" json:"name"`
	EntryFee      string    `bun:"entry_fee" json:"entry_fee"`
	Duration      string    `bun:"duration" json:"duration"`
	Status        string    `bun:"status" json:"status"`
	StartTime     time.Time `bun:"start_time" json:"start_time"`
	EndTime       time.Time `bun:"end_time" json:"end_time"`
	RevealTime    time.Time `bun:"reveal_time" json:"reveal_time"`
	CreatorID     *int64    `bun:"creator_id" json:"creator_id"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`

	Participants int64            `bun:"-" json:"participants"`
	Leaderboard  []LeaderboardRow `bun:"-" json:"leaderboard,omitempty"`
}

func (t *Tournament) IsFinished() bool {
	return t.Status == TournamentStatusFinished
}

// LeaderboardRow is the public results projection, attached to a tournament
// only once it is finished.
type LeaderboardRow struct {
	Rank         int     `bun:"rank" json:"rank"`
	UserAddress  string  `bun:"wallet_address" json:"user_address"`
	Score        int     `bun:"score" json:"score"`
	RewardAmount float64 `bun:"reward_amount" json:"reward_amount"`
}

type JoinResult struct {
	Joined       bool           `json:"joined"`
	Participants int64          `json:"participants"`
	Tournament   *Tournament    `json:"tournament"`
	OnChain      *LedgerReceipt `json:"on_chain"`
}

type ScoringResult struct {
	Results []LeaderboardRow `json:"results"`
	Payout  *LedgerReceipt   `json:"payout"`
}

type SweepOutcome struct {
	TournamentID int64 `json:"id"`
	Scored       bool  `json:"scored"`
	Err          error `json:"-"`
}
