package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Score rows are regenerated wholesale on every scoring pass, never
// incrementally.
type Score struct {
	bun.BaseModel `bun:"table:score"`
	ID            int64     `bun:"id,pk,autoincrement" json:"-"`
	UserID        int64     `bun:"user_id" json:"user_id"`
	TournamentID  int64     `bun:"tournament_id" json:"tournament_id"`
	Score         int       `bun:"score" json:"score"`
	Rank          int       `bun:"rank" json:"rank"`
	RewardAmount  float64   `bun:"reward_amount" json:"reward_amount"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"-"`
}
