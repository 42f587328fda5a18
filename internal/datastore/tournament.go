package datastore

import (
	"context"
	"time"

	"vibeswipe/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableTournament(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Tournament)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Tournament)(nil)).Index("index_tournament_status").IfNotExists().Column("status").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Tournament)(nil)).Index("index_tournament_reveal_time").IfNotExists().Column("reveal_time").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func CreateTournament(ctx context.Context, db *bun.DB, tournament *models.Tournament) (*models.Tournament, error) {
	_, err := db.NewInsert().Model(tournament).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return tournament, nil
}

// if the tournament is not found, return sql.ErrNoRows
func FindTournamentByID(ctx context.Context, db *bun.DB, tournamentID int64) (*models.Tournament, error) {
	var tournament models.Tournament
	err := db.NewSelect().Model(&tournament).Where("id = ?", tournamentID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &tournament, nil
}

func GetTournamentsSortedByStartTime(ctx context.Context, db *bun.DB) ([]*models.Tournament, error) {
	var tournaments []*models.Tournament
	err := db.NewSelect().Model(&tournaments).Order("start_time DESC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return tournaments, nil
}

func UpdateTournamentStatus(ctx context.Context, db *bun.DB, tournamentID int64, status string) error {
	_, err := db.NewUpdate().Model((*models.Tournament)(nil)).
		Set("status = ?", status).
		Where("id = ?", tournamentID).
		Exec(ctx)
	return err
}

// GetDueTournaments returns tournaments whose reveal time has passed and
// that have not been scored yet.
func GetDueTournaments(ctx context.Context, db *bun.DB, now time.Time) ([]*models.Tournament, error) {
	var tournaments []*models.Tournament
	err := db.NewSelect().Model(&tournaments).
		Where("reveal_time <= ?", now).
		Where("status != ?", models.TournamentStatusFinished).
		Order("reveal_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return tournaments, nil
}
