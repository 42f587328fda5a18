package services

import (
	"context"
	"fmt"
	"time"

	"vibeswipe/internal/models"

	"github.com/google/uuid"
	"github.com/samber/do"
)

const LEDGER_CALL_TIMEOUT = 10 * time.Second

// ServiceLedger records joins and payouts on chain. Receipts are best-effort:
// a failed or unconfigured call yields a mocked receipt and never rolls back
// the repository state it accompanies.
type ServiceLedger struct {
	movePackageID string
	poolsObjectID string
}

func NewServiceLedger(container *do.Injector) (*ServiceLedger, error) {
	vs, err := do.InvokeNamed[map[string]string](container, "envs")
	if err != nil {
		return nil, err
	}

	return &ServiceLedger{
		movePackageID: vs[ENV_MOVE_PACKAGE_ID],
		poolsObjectID: vs[ENV_POOLS_OBJECT_ID],
	}, nil
}

func (service *ServiceLedger) configured() bool {
	return service.movePackageID != "" && service.poolsObjectID != ""
}

func (service *ServiceLedger) RecordJoin(ctx context.Context, tournamentID int64, userAddress string, entryFee string) *models.LedgerReceipt {
	if !service.configured() {
		return mockReceipt("join", tournamentID)
	}

	// TODO call the Sui SDK once the Move package is published:
	// reward_pool::join(pools_object, tournament_id, coin<SUI>) with a
	// sponsored tx or signer wallet, bounded by LEDGER_CALL_TIMEOUT on ctx,
	// returning the transaction digest.
	return mockReceipt("join", tournamentID)
}

func (service *ServiceLedger) RecordPayout(ctx context.Context, tournamentID int64, winners []models.Winner) *models.LedgerReceipt {
	if !service.configured() {
		return mockReceipt("payout", tournamentID)
	}

	// TODO call the Sui SDK once the Move package is published:
	// reward_pool::payout(pools_object, tournament_id, recipients, amounts)
	// with amounts converted to MIST, bounded by LEDGER_CALL_TIMEOUT on ctx,
	// returning the transaction digest.
	return mockReceipt("payout", tournamentID)
}

func mockReceipt(kind string, tournamentID int64) *models.LedgerReceipt {
	return &models.LedgerReceipt{
		Mocked:    true,
		Confirmed: true,
		Digest:    fmt.Sprintf("mock-%s-%d-%s", kind, tournamentID, uuid.NewString()),
	}
}
