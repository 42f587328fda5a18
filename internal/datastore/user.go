package datastore

import (
	"context"

	"vibeswipe/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableUser(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.User)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.User)(nil)).Index("index_app_user_wallet_address").IfNotExists().Unique().Column("wallet_address").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

// UpsertUserByAddress creates the user on first touch and is a no-op on every
// later one. Always returns the stored row.
func UpsertUserByAddress(ctx context.Context, db *bun.DB, walletAddress string) (*models.User, error) {
	user := &models.User{WalletAddress: walletAddress}
	_, err := db.NewInsert().Model(user).On("CONFLICT (wallet_address) DO NOTHING").Exec(ctx)
	if err != nil {
		return nil, err
	}

	return FindUserByAddress(ctx, db, walletAddress)
}

func FindUserByAddress(ctx context.Context, db *bun.DB, walletAddress string) (*models.User, error) {
	var user models.User
	err := db.NewSelect().Model(&user).Where("wallet_address = ?", walletAddress).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
