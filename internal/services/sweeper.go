package services

import (
	"context"
	"log"
	"time"

	"vibeswipe/internal/datastore"
	"vibeswipe/internal/models"

	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// ServiceSweeper finds tournaments whose reveal time has passed and pushes
// each one through a scoring pass.
type ServiceSweeper struct {
	postgresDB        *bun.DB
	serviceTournament *ServiceTournament
}

func NewServiceSweeper(container *do.Injector) (*ServiceSweeper, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	serviceTournament, err := do.Invoke[*ServiceTournament](container)
	if err != nil {
		return nil, err
	}

	return &ServiceSweeper{postgresDB, serviceTournament}, nil
}

// RunOnce scores every due tournament sequentially. A failure on one
// tournament is recorded and does not stop the sweep; losing the scoring
// lock to a concurrent pass counts as a benign skip, not an error.
func (service *ServiceSweeper) RunOnce(ctx context.Context) ([]models.SweepOutcome, error) {
	due, err := datastore.GetDueTournaments(ctx, service.postgresDB, time.Now())
	if err != nil {
		return nil, err
	}

	outcomes := make([]models.SweepOutcome, 0, len(due))
	for _, tournament := range due {
		result, err := service.serviceTournament.ComputeScores(ctx, tournament.ID)

		outcome := sweepOutcome(tournament.ID, result, err)
		switch {
		case IsScoringLocked(err):
			log.Printf("tournament %d is being scored elsewhere, skipping", tournament.ID)
		case err != nil:
			log.Printf("failed to score tournament %d: %v", tournament.ID, err)
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// sweepOutcome classifies one scoring attempt. Losing the lock to a
// concurrent pass is a benign skip, not an error; any other failure is
// recorded without aborting the sweep. Scored means the pass produced a
// non-empty results list; an empty tournament still flips to finished but
// reports false.
func sweepOutcome(tournamentID int64, result *models.ScoringResult, err error) models.SweepOutcome {
	outcome := models.SweepOutcome{TournamentID: tournamentID}

	switch {
	case IsScoringLocked(err):
	case err != nil:
		outcome.Err = err
	default:
		outcome.Scored = len(result.Results) > 0
	}

	return outcome
}
