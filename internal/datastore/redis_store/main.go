package redis_store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

// Oracle snapshots are kept long enough to audit a finished tournament's
// results against the verdicts they were scored with.
const ORACLE_SNAPSHOT_TTL = 30 * 24 * time.Hour

func dbKeyOracleSnapshot(tournamentID int64) string {
	return fmt.Sprintf("oracle_snapshot:%d", tournamentID)
}

// SaveOracleSnapshot persists the direction verdicts a scoring pass was
// computed against.
func SaveOracleSnapshot(ctx context.Context, cmd redis.Cmdable, tournamentID int64, directions map[string]string) error {
	data, err := msgpack.Marshal(directions)
	if err != nil {
		return err
	}

	return cmd.Set(ctx, dbKeyOracleSnapshot(tournamentID), data, ORACLE_SNAPSHOT_TTL).Err()
}

func GetOracleSnapshot(ctx context.Context, cmd redis.Cmdable, tournamentID int64) (map[string]string, error) {
	data, err := cmd.Get(ctx, dbKeyOracleSnapshot(tournamentID)).Bytes()
	if err != nil {
		return nil, err
	}

	var directions map[string]string
	if err := msgpack.Unmarshal(data, &directions); err != nil {
		return nil, err
	}

	return directions, nil
}
