package datastore

import (
	"context"

	"vibeswipe/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableTournamentJoin(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.TournamentJoin)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.TournamentJoin)(nil)).Index("index_tournament_join_user_tournament").IfNotExists().Unique().Column("user_id", "tournament_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.TournamentJoin)(nil)).Index("index_tournament_join_tournament_id").IfNotExists().Column("tournament_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

// UpsertJoin inserts the (user, tournament) pair; rejoining is a no-op, not
// an error.
func UpsertJoin(ctx context.Context, db *bun.DB, userID, tournamentID int64) error {
	join := &models.TournamentJoin{
		UserID:       userID,
		TournamentID: tournamentID,
	}
	_, err := db.NewInsert().Model(join).On("CONFLICT (user_id, tournament_id) DO NOTHING").Exec(ctx)
	return err
}

func CountJoins(ctx context.Context, db *bun.DB, tournamentID int64) (int64, error) {
	count, err := db.NewSelect().Model((*models.TournamentJoin)(nil)).Where("tournament_id = ?", tournamentID).Count(ctx)
	if err != nil {
		return 0, err
	}

	return int64(count), nil
}

func GetJoinedTournaments(ctx context.Context, db *bun.DB, userID int64) ([]*models.JoinedTournament, error) {
	var joined []*models.JoinedTournament
	err := db.NewSelect().
		ColumnExpr("j.tournament_id, t.status").
		TableExpr("tournament_join j").
		Join("JOIN tournament t ON t.id = j.tournament_id").
		Where("j.user_id = ?", userID).
		Order("j.created_at DESC").
		Scan(ctx, &joined)
	if err != nil {
		return nil, err
	}

	return joined, nil
}
