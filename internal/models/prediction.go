package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

type Prediction struct {
	bun.BaseModel      `bun:"table:prediction"`
	ID                 int64     `bun:"id,pk,autoincrement" json:"-"`
	UserID             int64     `bun:"user_id" json:"-"`
	TournamentID       int64     `bun:"tournament_id" json:"-"`
	AssetSymbol        string    `bun:"asset_symbol" json:"asset_symbol"`
	PredictedDirection string    `bun:"predicted_direction" json:"predicted_direction"`
	CreatedAt          time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}

// PredictionEntry is a prediction joined with its owner's wallet address,
// the shape the scoring pass consumes.
type PredictionEntry struct {
	UserID             int64     `bun:"user_id"`
	WalletAddress      string    `bun:"wallet_address"`
	AssetSymbol        string    `bun:"asset_symbol"`
	PredictedDirection string    `bun:"predicted_direction"`
	CreatedAt          time.Time `bun:"created_at"`
}
