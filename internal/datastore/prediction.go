package datastore

import (
	"context"

	"vibeswipe/internal/models"

	"github.com/uptrace/bun"
)

func CreateTablePrediction(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Prediction)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	// Uniqueness is enforced here, not only by the service-level pre-check;
	// a racing duplicate insert fails with SQLSTATE 23505.
	_, err = db.NewCreateIndex().Model((*models.Prediction)(nil)).Index("index_prediction_user_tournament_asset").IfNotExists().Unique().Column("user_id", "tournament_id", "asset_symbol").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Prediction)(nil)).Index("index_prediction_tournament_id").IfNotExists().Column("tournament_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func CreatePrediction(ctx context.Context, db *bun.DB, prediction *models.Prediction) (*models.Prediction, error) {
	_, err := db.NewInsert().Model(prediction).Returning("*").Exec(ctx)
	if err != nil {
		return nil, err
	}

	return prediction, nil
}

// if no prediction exists for the composite key, return sql.ErrNoRows
func FindPrediction(ctx context.Context, db *bun.DB, userID, tournamentID int64, assetSymbol string) (*models.Prediction, error) {
	var prediction models.Prediction
	err := db.NewSelect().Model(&prediction).
		Where("user_id = ?", userID).
		Where("tournament_id = ?", tournamentID).
		Where("asset_symbol = ?", assetSymbol).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &prediction, nil
}

// GetPredictionEntries returns every prediction of a tournament joined with
// the owner's wallet address, ordered by creation time.
func GetPredictionEntries(ctx context.Context, db *bun.DB, tournamentID int64) ([]*models.PredictionEntry, error) {
	var entries []*models.PredictionEntry
	err := db.NewSelect().
		ColumnExpr("p.user_id, u.wallet_address, p.asset_symbol, p.predicted_direction, p.created_at").
		TableExpr("prediction p").
		Join("JOIN app_user u ON u.id = p.user_id").
		Where("p.tournament_id = ?", tournamentID).
		Order("p.created_at ASC").
		Scan(ctx, &entries)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func GetUserPredictions(ctx context.Context, db *bun.DB, userID, tournamentID int64) ([]*models.Prediction, error) {
	var predictions []*models.Prediction
	err := db.NewSelect().Model(&predictions).
		Where("user_id = ?", userID).
		Where("tournament_id = ?", tournamentID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return predictions, nil
}
