package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:app_user"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	WalletAddress string    `bun:"wallet_address" json:"wallet_address"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}

// Profile is the projection returned by GET /profile.
type Profile struct {
	Address           string             `json:"address"`
	Budget            float64            `json:"budget"`
	JoinedTournaments []JoinedTournament `json:"joined_tournaments"`
}

type JoinedTournament struct {
	ID     int64  `bun:"tournament_id" json:"id"`
	Status string `bun:"status" json:"status"`
}
