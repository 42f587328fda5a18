package models

import (
	"time"

	"github.com/uptrace/bun"
)

// TournamentJoin relates a user to a tournament, once. The join count per
// tournament determines the prize pool.
type TournamentJoin struct {
	bun.BaseModel `bun:"table:tournament_join"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64     `bun:"user_id" json:"user_id"`
	TournamentID  int64     `bun:"tournament_id" json:"tournament_id"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}
