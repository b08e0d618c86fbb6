package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufoaiorg/ufoai-sub009/internal/adapters/persistence"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/ledger"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/shared"
	"github.com/ufoaiorg/ufoai-sub009/test/helpers"
)

// journal funds a pool and charges two bases within the same hour
func journal(t *testing.T, campaignID string) []*ledger.Transaction {
	t.Helper()
	hours := shared.NewCampaignClock(10)
	pool := ledger.NewCreditPool(campaignID, 0, hours, helpers.NewTestClock())
	require.NoError(t, pool.Fund(1000))
	require.NoError(t, pool.Subtract(context.Background(), 100, production.CreditMemo{BaseID: "alpha", OrderID: "o-1", TargetID: "rifle"}))
	hours.Advance()
	require.NoError(t, pool.Subtract(context.Background(), 500, production.CreditMemo{BaseID: "bravo", OrderID: "o-2", TargetID: "dropship"}))
	require.NoError(t, pool.Subtract(context.Background(), 100, production.CreditMemo{BaseID: "alpha", OrderID: "o-1", TargetID: "rifle"}))
	return pool.Drain()
}

func TestTransactionRepository_CreateAndFindNewestFirst(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTransactionRepository(db)
	txs := journal(t, "campaign-1")

	// Act
	require.NoError(t, repo.Create(context.Background(), txs...))
	found, err := repo.FindByCampaign(context.Background(), "campaign-1", ledger.DefaultQueryOptions())

	// Assert
	require.NoError(t, err)
	require.Len(t, found, 4)
	assert.Equal(t, txs[3].ID(), found[0].ID())
	assert.Equal(t, txs[0].ID(), found[3].ID())
	assert.Equal(t, 300, found[0].BalanceAfter())
	assert.Equal(t, ledger.TransactionTypeProductionCost, found[0].TransactionType())
	assert.Equal(t, "o-1", found[0].OrderID())
	assert.Equal(t, "rifle", found[0].TargetID())
	assert.True(t, found[0].Timestamp().Equal(helpers.FixedTime))
}

func TestTransactionRepository_SequenceContinuesAcrossCreates(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTransactionRepository(db)
	txs := journal(t, "campaign-1")

	require.NoError(t, repo.Create(context.Background(), txs[:2]...))
	require.NoError(t, repo.Create(context.Background(), txs[2:]...))

	found, err := repo.FindByCampaign(context.Background(), "campaign-1", ledger.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, found, 4)
	for i := range found {
		assert.Equal(t, txs[len(txs)-1-i].ID(), found[i].ID())
	}
}

func TestTransactionRepository_Filters(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTransactionRepository(db)
	require.NoError(t, repo.Create(context.Background(), journal(t, "campaign-1")...))
	require.NoError(t, repo.Create(context.Background(), journal(t, "campaign-2")...))
	cost := ledger.TransactionTypeProductionCost
	since := int64(11)

	tests := []struct {
		name string
		opts ledger.QueryOptions
		want int
	}{
		{"by type", ledger.QueryOptions{TransactionType: &cost}, 3},
		{"by base", ledger.QueryOptions{BaseID: "alpha"}, 2},
		{"since hour", ledger.QueryOptions{SinceHour: &since}, 2},
		{"limit", ledger.QueryOptions{Limit: 1}, 1},
		{"offset", ledger.QueryOptions{Limit: 10, Offset: 3}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			found, err := repo.FindByCampaign(context.Background(), "campaign-1", tt.opts)

			// Assert
			require.NoError(t, err)
			assert.Len(t, found, tt.want)
			for _, tx := range found {
				assert.Equal(t, "campaign-1", tx.CampaignID())
			}
		})
	}
}
