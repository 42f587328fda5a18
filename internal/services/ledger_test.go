package services

import (
	"context"
	"strings"
	"testing"

	"vibeswipe/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordJoin_UnconfiguredMocksReceipt(t *testing.T) {
	service := &ServiceLedger{}

	receipt := service.RecordJoin(context.Background(), 7, "0xabc", "10")
	require.NotNil(t, receipt)
	assert.True(t, receipt.Mocked)
	assert.True(t, receipt.Confirmed)
	assert.True(t, strings.HasPrefix(receipt.Digest, "mock-join-7-"))
}

func TestRecordPayout_UnconfiguredMocksReceipt(t *testing.T) {
	service := &ServiceLedger{}

	receipt := service.RecordPayout(context.Background(), 7, []models.Winner{{Address: "0xabc", Amount: 1.5}})
	require.NotNil(t, receipt)
	assert.True(t, receipt.Mocked)
	assert.True(t, strings.HasPrefix(receipt.Digest, "mock-payout-7-"))
}

func TestMockReceipt_DigestsAreUnique(t *testing.T) {
	a := mockReceipt("join", 1)
	b := mockReceipt("join", 1)
	assert.NotEqual(t, a.Digest, b.Digest)
}
