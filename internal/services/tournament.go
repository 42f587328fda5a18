package services

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"
	"time"

	"vibeswipe/internal/datastore"
	"vibeswipe/internal/datastore/redis_store"
	"vibeswipe/internal/models"
	"vibeswipe/internal/pkg/caching"

	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

type ServiceTournament struct {
	container          *do.Injector
	redisDB            redis.UniversalClient
	rs                 *redsync.Redsync
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache

	serviceOracle *ServiceOracle
	serviceLedger *ServiceLedger
}

func NewServiceTournament(container *do.Injector) (*ServiceTournament, error) {
	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	readonlyCache, err := do.Invoke[caching.ReadOnlyCache](container)
	if err != nil {
		return nil, err
	}

	serviceOracle, err := do.Invoke[*ServiceOracle](container)
	if err != nil {
		return nil, err
	}

	serviceLedger, err := do.Invoke[*ServiceLedger](container)
	if err != nil {
		return nil, err
	}

	return &ServiceTournament{container, redisDB, rs, postgresDB, readonlyPostgresDB, cache, readonlyCache, serviceOracle, serviceLedger}, nil
}

type CreateTournamentParams struct {
	Name           string
	EntryFee       string
	Duration       string
	RevealTime     *time.Time
	CreatorAddress string
}

// TournamentDuration maps a duration class to its window length. Unknown
// classes fall back to one hour.
func TournamentDuration(class string) time.Duration {
	switch class {
	case DURATION_1M:
		return 1 * time.Minute
	case DURATION_15M:
		return 15 * time.Minute
	case DURATION_1H:
		return 1 * time.Hour
	case DURATION_4H:
		return 4 * time.Hour
	case DURATION_24H:
		return 24 * time.Hour
	default:
		return 1 * time.Hour
	}
}

// ClampRevealTime keeps the requested reveal only when it lands strictly
// after the prediction window; anything else silently collapses to endTime.
func ClampRevealTime(requested *time.Time, endTime time.Time) time.Time {
	if requested != nil && requested.After(endTime) {
		return *requested
	}
	return endTime
}

func (service *ServiceTournament) CreateTournament(ctx context.Context, params CreateTournamentParams) (*models.Tournament, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		name = DEFAULT_TOURNAMENT_NAME
	}

	// tournaments start immediately, there is no scheduling phase
	now := time.Now()
	endTime := now.Add(TournamentDuration(params.Duration))
	revealTime := ClampRevealTime(params.RevealTime, endTime)

	var creatorID *int64
	if params.CreatorAddress != "" {
		creator, err := datastore.UpsertUserByAddress(ctx, service.postgresDB, params.CreatorAddress)
		if err != nil {
			return nil, err
		}
		creatorID = &creator.ID
	}

	tournament := &models.Tournament{
		Name:       name,
		EntryFee:   params.EntryFee,
		Duration:   params.Duration,
		Status:     models.TournamentStatusActive,
		StartTime:  now,
		EndTime:    endTime,
		RevealTime: revealTime,
		CreatorID:  creatorID,
	}

	tournament, err := datastore.CreateTournament(ctx, service.postgresDB, tournament)
	if err != nil {
		return nil, err
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyTournamentList())

	return tournament, nil
}

func (service *ServiceTournament) ListTournaments(ctx context.Context) ([]*models.Tournament, error) {
	callback := func() ([]*models.Tournament, error) {
		tournaments, err := datastore.GetTournamentsSortedByStartTime(ctx, service.readonlyPostgresDB)
		if err != nil {
			return nil, err
		}

		for _, tournament := range tournaments {
			if err := service.attachProjection(ctx, tournament); err != nil {
				return nil, err
			}
		}

		return tournaments, nil
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyTournamentList(), CACHE_TTL_15_SECONDS, callback)
}

func (service *ServiceTournament) GetTournament(ctx context.Context, tournamentID int64) (*models.Tournament, error) {
	callback := func() (*models.Tournament, error) {
		return service.loadTournament(ctx, tournamentID)
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyTournament(tournamentID), CACHE_TTL_5_SECONDS, callback)
}

func (service *ServiceTournament) loadTournament(ctx context.Context, tournamentID int64) (*models.Tournament, error) {
	tournament, err := datastore.FindTournamentByID(ctx, service.postgresDB, tournamentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(ErrTournamentNotFound, errorx.NotExist)
	}
	if err != nil {
		return nil, err
	}

	if err := service.attachProjection(ctx, tournament); err != nil {
		return nil, err
	}

	return tournament, nil
}

// attachProjection fills the computed fields: participant count and, once
// finished, the leaderboard.
func (service *ServiceTournament) attachProjection(ctx context.Context, tournament *models.Tournament) error {
	participants, err := datastore.CountJoins(ctx, service.postgresDB, tournament.ID)
	if err != nil {
		return err
	}
	tournament.Participants = participants

	if !tournament.IsFinished() {
		return nil
	}

	leaderboard, err := datastore.GetLeaderboard(ctx, service.postgresDB, tournament.ID)
	if err != nil {
		return err
	}
	tournament.Leaderboard = leaderboard

	return nil
}

func (service *ServiceTournament) AddJoin(ctx context.Context, userAddress string, tournamentID int64) (*models.JoinResult, error) {
	tournament, err := datastore.FindTournamentByID(ctx, service.postgresDB, tournamentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(ErrTournamentNotFound, errorx.NotExist)
	}
	if err != nil {
		return nil, err
	}

	user, err := datastore.UpsertUserByAddress(ctx, service.postgresDB, userAddress)
	if err != nil {
		return nil, err
	}

	if err := datastore.UpsertJoin(ctx, service.postgresDB, user.ID, tournament.ID); err != nil {
		return nil, err
	}

	// best-effort; the join is committed regardless of what the chain says
	receipt := service.serviceLedger.RecordJoin(ctx, tournament.ID, userAddress, tournament.EntryFee)

	service.invalidateTournament(ctx, tournament.ID)

	refreshed, err := service.loadTournament(ctx, tournament.ID)
	if err != nil {
		return nil, err
	}

	return &models.JoinResult{
		Joined:       true,
		Participants: refreshed.Participants,
		Tournament:   refreshed,
		OnChain:      receipt,
	}, nil
}

func (service *ServiceTournament) AddPrediction(ctx context.Context, tournamentID int64, userAddress string, assetSymbol string, predictedDirection string) (*models.Prediction, error) {
	tournament, err := datastore.FindTournamentByID(ctx, service.postgresDB, tournamentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(ErrTournamentNotFound, errorx.NotExist)
	}
	if err != nil {
		return nil, err
	}

	user, err := datastore.UpsertUserByAddress(ctx, service.postgresDB, userAddress)
	if err != nil {
		return nil, err
	}

	_, err = datastore.FindPrediction(ctx, service.postgresDB, user.ID, tournament.ID, assetSymbol)
	if err == nil {
		return nil, errorx.Wrap(ErrAlreadyPredicted, errorx.Invalid)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	prediction := &models.Prediction{
		UserID:             user.ID,
		TournamentID:       tournament.ID,
		AssetSymbol:        assetSymbol,
		PredictedDirection: predictedDirection,
		CreatedAt:          time.Now(),
	}

	prediction, err = datastore.CreatePrediction(ctx, service.postgresDB, prediction)
	if isUniqueViolation(err) {
		// a racing duplicate lost against the unique index
		return nil, errorx.Wrap(ErrAlreadyPredicted, errorx.Invalid)
	}
	if err != nil {
		return nil, err
	}

	return prediction, nil
}

func (service *ServiceTournament) ListMyPredictions(ctx context.Context, tournamentID int64, userAddress string) ([]*models.Prediction, error) {
	_, err := datastore.FindTournamentByID(ctx, service.postgresDB, tournamentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(ErrTournamentNotFound, errorx.NotExist)
	}
	if err != nil {
		return nil, err
	}

	user, err := datastore.UpsertUserByAddress(ctx, service.postgresDB, userAddress)
	if err != nil {
		return nil, err
	}

	return datastore.GetUserPredictions(ctx, service.readonlyPostgresDB, user.ID, tournamentID)
}

func (service *ServiceTournament) GetResults(ctx context.Context, tournamentID int64) ([]models.LeaderboardRow, error) {
	_, err := datastore.FindTournamentByID(ctx, service.postgresDB, tournamentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(ErrTournamentNotFound, errorx.NotExist)
	}
	if err != nil {
		return nil, err
	}

	callback := func() ([]models.LeaderboardRow, error) {
		return datastore.GetLeaderboard(ctx, service.readonlyPostgresDB, tournamentID)
	}

	return caching.UseCache(ctx, service.cache, DBKeyTournamentResults(tournamentID), CACHE_TTL_1_MIN, callback)
}

func (service *ServiceTournament) GetProfile(ctx context.Context, userAddress string) (*models.Profile, error) {
	user, err := datastore.UpsertUserByAddress(ctx, service.postgresDB, userAddress)
	if err != nil {
		return nil, err
	}

	joined, err := datastore.GetJoinedTournaments(ctx, service.readonlyPostgresDB, user.ID)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		Address:           user.WalletAddress,
		Budget:            100.0, // placeholder budget
		JoinedTournaments: make([]models.JoinedTournament, 0, len(joined)),
	}
	for _, j := range joined {
		profile.JoinedTournaments = append(profile.JoinedTournaments, *j)
	}

	return profile, nil
}

// ComputeScores runs one scoring pass for a tournament. The whole
// read-compute-replace-finish sequence holds a per-tournament mutex so that
// a racing sweep and a direct request can never both score the same
// tournament; the loser fails fast with ErrTournamentScoringLock.
func (service *ServiceTournament) ComputeScores(ctx context.Context, tournamentID int64) (*models.ScoringResult, error) {
	tournament, err := datastore.FindTournamentByID(ctx, service.postgresDB, tournamentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(ErrTournamentNotFound, errorx.NotExist)
	}
	if err != nil {
		return nil, err
	}

	mutex := service.rs.NewMutex(LockKeyTournamentScoring(tournamentID), redsync.WithExpiry(SCORING_LOCK_EXPIRY), redsync.WithTries(1))
	if err := mutex.Lock(); err != nil {
		return nil, errorx.Wrap(ErrTournamentScoringLock, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	entries, err := datastore.GetPredictionEntries(ctx, service.postgresDB, tournament.ID)
	if err != nil {
		return nil, err
	}

	participants, err := datastore.CountJoins(ctx, service.postgresDB, tournament.ID)
	if err != nil {
		return nil, err
	}

	// re-scoring replays the snapshot the first pass was computed against, so
	// a manual re-score can't flip results under a moving feed
	actual, err := redis_store.GetOracleSnapshot(ctx, service.redisDB, tournament.ID)
	if err != nil {
		actual = service.serviceOracle.GetActualDirections(ctx)
		if err := redis_store.SaveOracleSnapshot(ctx, service.redisDB, tournament.ID, actual); err != nil {
			log.Println("failed to save oracle snapshot:", err)
		}
	}

	standings := ComputeStandings(entries, participants, tournament.EntryFee, actual)

	scores := make([]*models.Score, 0, len(standings))
	for _, standing := range standings {
		scores = append(scores, &models.Score{
			UserID:       standing.UserID,
			TournamentID: tournament.ID,
			Score:        standing.Score,
			Rank:         standing.Rank,
			RewardAmount: standing.RewardAmount,
			CreatedAt:    time.Now(),
		})
	}

	if err := datastore.ReplaceScores(ctx, service.postgresDB, tournament.ID, scores); err != nil {
		return nil, err
	}

	winners := make([]models.Winner, 0, len(standings))
	for _, standing := range standings {
		if standing.RewardAmount > 0 {
			winners = append(winners, models.Winner{Address: standing.WalletAddress, Amount: standing.RewardAmount})
		}
	}

	var payout *models.LedgerReceipt
	if len(winners) > 0 {
		payout = service.serviceLedger.RecordPayout(ctx, tournament.ID, winners)
	}

	// the flip to finished follows the committed score write, independent of
	// whether the payout call produced anything
	if err := datastore.UpdateTournamentStatus(ctx, service.postgresDB, tournament.ID, models.TournamentStatusFinished); err != nil {
		return nil, err
	}

	service.invalidateTournament(ctx, tournament.ID)

	results, err := datastore.GetLeaderboard(ctx, service.postgresDB, tournament.ID)
	if err != nil {
		return nil, err
	}

	return &models.ScoringResult{Results: results, Payout: payout}, nil
}

func (service *ServiceTournament) invalidateTournament(ctx context.Context, tournamentID int64) {
	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyTournament(tournamentID))
	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyTournamentList())
	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyTournamentResults(tournamentID))
}

// IsScoringLocked reports the benign "another pass holds the lock"
// condition.
func IsScoringLocked(err error) bool {
	return errors.Is(err, ErrTournamentScoringLock)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == "23505"
}
