package handler

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"vibeswipe/internal/interfaces"
	"vibeswipe/internal/models"
	"vibeswipe/internal/services"

	"github.com/go-redis/redis_rate/v10"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

var (
	errInvalidTournamentID = errors.New("invalid tournament id")
	errInvalidEntryFee     = errors.New("entryFee must be a positive number")
	errInvalidDuration     = errors.New("duration must be one of 1m, 15m, 1h, 4h, 24h")
	errInvalidRevealTime   = errors.New("revealTime must be RFC3339")
	errRevealTooEarly      = errors.New("revealTime must be after the prediction window")
	errMissingAddress      = errors.New("userAddress is required")
	errMissingSymbol       = errors.New("assetSymbol is required")
	errInvalidDirection    = errors.New("predictedDirection must be up or down")
)

type groupTournament struct {
	container *do.Injector
}

func (gr *groupTournament) List(c echo.Context) error {
	serviceTournament, err := do.Invoke[*services.ServiceTournament](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	ctx := c.Request().Context()
	tournaments, err := serviceTournament.ListTournaments(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, tournaments, nil)
}

func (gr *groupTournament) Create(c echo.Context) error {
	serviceTournament, err := do.Invoke[*services.ServiceTournament](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var payload struct {
		Name           string `json:"name"`
		EntryFee       string `json:"entryFee"`
		Duration       string `json:"duration"`
		RevealTime     string `json:"revealTime"`
		CreatorAddress string `json:"creatorAddress"`
	}
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	fee, err := strconv.ParseFloat(payload.EntryFee, 64)
	if err != nil || math.IsNaN(fee) || math.IsInf(fee, 0) || fee <= 0 {
		return httpx.RestAbort(c, nil, errorx.Wrap(errInvalidEntryFee, errorx.Validation))
	}

	if !validDuration(payload.Duration) {
		return httpx.RestAbort(c, nil, errorx.Wrap(errInvalidDuration, errorx.Validation))
	}

	revealTime, err := parseRevealTime(payload.RevealTime, payload.Duration, time.Now())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	ctx := c.Request().Context()
	tournament, err := serviceTournament.CreateTournament(ctx, services.CreateTournamentParams{
		Name:           payload.Name,
		EntryFee:       payload.EntryFee,
		Duration:       payload.Duration,
		RevealTime:     revealTime,
		CreatorAddress: payload.CreatorAddress,
	})
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, tournament, nil)
}

func (gr *groupTournament) Show(c echo.Context) error {
	serviceTournament, err := do.Invoke[*services.ServiceTournament](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	tournamentID, err := parseTournamentID(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	ctx := c.Request().Context()
	tournament, err := serviceTournament.GetTournament(ctx, tournamentID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, tournament, nil)
}

func (gr *groupTournament) Join(c echo.Context) error {
	serviceTournament, err := do.Invoke[*services.ServiceTournament](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	tournamentID, err := parseTournamentID(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload struct {
		UserAddress string `json:"userAddress"`
	}
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	address := strings.TrimSpace(payload.UserAddress)
	if address == "" {
		return httpx.RestAbort(c, nil, errorx.Wrap(errMissingAddress, errorx.Validation))
	}

	ctx := c.Request().Context()
	result, err := serviceTournament.AddJoin(ctx, address, tournamentID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, result, nil)
}

func (gr *groupTournament) Predict(c echo.Context) error {
	serviceTournament, err := do.Invoke[*services.ServiceTournament](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	limiter, err := do.Invoke[interfaces.Limiter](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	tournamentID, err := parseTournamentID(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload struct {
		UserAddress        string `json:"userAddress"`
		AssetSymbol        string `json:"assetSymbol"`
		PredictedDirection string `json:"predictedDirection"`
	}
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	address := strings.TrimSpace(payload.UserAddress)
	if address == "" {
		return httpx.RestAbort(c, nil, errorx.Wrap(errMissingAddress, errorx.Validation))
	}

	// stored exactly as sent; the duplicate check and the scoring-time oracle
	// lookup are both exact matches on the symbol
	symbol := strings.TrimSpace(payload.AssetSymbol)
	if symbol == "" {
		return httpx.RestAbort(c, nil, errorx.Wrap(errMissingSymbol, errorx.Validation))
	}

	direction := strings.ToLower(strings.TrimSpace(payload.PredictedDirection))
	if direction != models.DirectionUp && direction != models.DirectionDown {
		return httpx.RestAbort(c, nil, errorx.Wrap(errInvalidDirection, errorx.Validation))
	}

	ctx := c.Request().Context()
	if err := limiter.Allow(ctx, services.LimitKeyUserPrediction(address), redis_rate.PerMinute(services.PREDICTION_RATE_LIMIT_PER_MINUTE)); err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	prediction, err := serviceTournament.AddPrediction(ctx, tournamentID, address, symbol, direction)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, prediction, nil)
}

func (gr *groupTournament) MyPredictions(c echo.Context) error {
	serviceTournament, err := do.Invoke[*services.ServiceTournament](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	tournamentID, err := parseTournamentID(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	address := queryAddress(c)
	if address == "" {
		return httpx.RestAbort(c, nil, errorx.Wrap(errMissingAddress, errorx.Validation))
	}

	ctx := c.Request().Context()
	predictions, err := serviceTournament.ListMyPredictions(ctx, tournamentID, address)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, predictions, nil)
}

func (gr *groupTournament) Results(c echo.Context) error {
	serviceTournament, err := do.Invoke[*services.ServiceTournament](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	tournamentID, err := parseTournamentID(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	ctx := c.Request().Context()
	results, err := serviceTournament.GetResults(ctx, tournamentID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, results, nil)
}

func (gr *groupTournament) Score(c echo.Context) error {
	serviceTournament, err := do.Invoke[*services.ServiceTournament](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	tournamentID, err := parseTournamentID(c)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	ctx := c.Request().Context()
	result, err := serviceTournament.ComputeScores(ctx, tournamentID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, result, nil)
}

func parseTournamentID(c echo.Context) (int64, error) {
	tournamentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || tournamentID <= 0 {
		return 0, errorx.Wrap(errInvalidTournamentID, errorx.Validation)
	}

	return tournamentID, nil
}

// the legacy client sends ?address=, the current one ?userAddress=
func queryAddress(c echo.Context) string {
	address := strings.TrimSpace(c.QueryParam("userAddress"))
	if address == "" {
		address = strings.TrimSpace(c.QueryParam("address"))
	}
	return address
}

// parseRevealTime validates the optional reveal instant: when present it must
// be RFC3339 and must not land before the prediction window closes. The
// service still clamps as a backstop, but a too-early reveal is rejected here
// before the core is touched.
func parseRevealTime(raw string, duration string, now time.Time) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errorx.Wrap(errInvalidRevealTime, errorx.Validation)
	}

	if parsed.Before(now.Add(services.TournamentDuration(duration))) {
		return nil, errorx.Wrap(errRevealTooEarly, errorx.Validation)
	}

	return &parsed, nil
}

func validDuration(duration string) bool {
	switch duration {
	case services.DURATION_1M, services.DURATION_15M, services.DURATION_1H, services.DURATION_4H, services.DURATION_24H:
		return true
	}
	return false
}
