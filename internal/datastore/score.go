package datastore

import (
	"context"

	"vibeswipe/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableScore(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Score)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Score)(nil)).Index("index_score_tournament_rank").IfNotExists().Column("tournament_id", "rank").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

// ReplaceScores deletes every score row of the tournament and inserts the
// new set in one transaction, so a partial score set is never observable.
func ReplaceScores(ctx context.Context, db *bun.DB, tournamentID int64, scores []*models.Score) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().Model((*models.Score)(nil)).Where("tournament_id = ?", tournamentID).Exec(ctx)
		if err != nil {
			return err
		}

		if len(scores) == 0 {
			return nil
		}

		_, err = tx.NewInsert().Model(&scores).Exec(ctx)
		return err
	})
}

// GetLeaderboard returns the score rows of a tournament joined with wallet
// addresses, rank ascending.
func GetLeaderboard(ctx context.Context, db *bun.DB, tournamentID int64) ([]models.LeaderboardRow, error) {
	rows := []models.LeaderboardRow{}
	err := db.NewSelect().
		ColumnExpr("s.rank, u.wallet_address, s.score, s.reward_amount").
		TableExpr("score s").
		Join("JOIN app_user u ON u.id = s.user_id").
		Where("s.tournament_id = ?", tournamentID).
		Order("s.rank ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	return rows, nil
}
