package persistence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufoaiorg/ufoai-sub009/internal/adapters/persistence"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/base"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
	"github.com/ufoaiorg/ufoai-sub009/test/helpers"
)

func testSnapshot() campaign.Snapshot {
	alpha := helpers.StaffedBase(0, "alpha")
	alpha.Storage = map[string]int{"alloy": 6, "ufo_scout": 1}
	alpha.Aircraft = []base.Aircraft{
		{ID: "a-1", TemplateID: "interceptor", Name: "Interceptor", Size: production.HangarSizeSmall},
	}
	bravo := helpers.StaffedBase(1, "bravo")
	bravo.UnderAttack = true

	return campaign.Snapshot{
		ID:      "campaign-1",
		Name:    "Persistence",
		Hour:    72,
		Credits: 4200,
		Bases:   []base.State{alpha, bravo},
		Queues: []production.BaseQueueRecord{
			{BaseID: "alpha", Orders: []production.QueueRecord{
				{OrderID: "o-1", ItemID: "rifle", Amount: 3, PercentDone: 0.4, IsManufacture: true, MaterialsReserved: true, CreditBlocked: true},
				{OrderID: "o-2", ItemID: "ufo_scout", Amount: 1, MaterialsReserved: true, SpaceBlocked: true},
				{OrderID: "o-3", AircraftID: "dropship", Amount: 1, IsManufacture: true, MaterialsReserved: true},
			}},
			{BaseID: "bravo"},
		},
	}
}

func TestCampaignRepository_SaveAndLoad(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCampaignRepository(db, helpers.NewTestClock())
	snap := testSnapshot()

	// Act
	err := repo.Save(context.Background(), snap)
	require.NoError(t, err)
	loaded, err := repo.Load(context.Background(), "campaign-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, snap, *loaded)
}

func TestCampaignRepository_SaveReplacesQueues(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCampaignRepository(db, helpers.NewTestClock())
	snap := testSnapshot()
	require.NoError(t, repo.Save(context.Background(), snap))

	// Act - the head order finished and a base was lost
	snap.Hour = 80
	snap.Credits = 3900
	snap.Bases = snap.Bases[:1]
	snap.Queues = []production.BaseQueueRecord{{BaseID: "alpha", Orders: snap.Queues[0].Orders[1:]}}
	require.NoError(t, repo.Save(context.Background(), snap))

	// Assert
	loaded, err := repo.Load(context.Background(), "campaign-1")
	require.NoError(t, err)
	assert.Equal(t, int64(80), loaded.Hour)
	assert.Equal(t, 3900, loaded.Credits)
	require.Len(t, loaded.Bases, 1)
	require.Len(t, loaded.Queues, 1)
	require.Len(t, loaded.Queues[0].Orders, 2)
	assert.Equal(t, "o-2", loaded.Queues[0].Orders[0].OrderID)
}

func TestCampaignRepository_RestoresIntoCampaign(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCampaignRepository(db, helpers.NewTestClock())
	require.NoError(t, repo.Save(context.Background(), testSnapshot()))

	// Act
	loaded, err := repo.Load(context.Background(), "campaign-1")
	require.NoError(t, err)
	c, unresolved, err := campaign.Restore(*loaded, helpers.NewTestCatalog(), helpers.NewTestClock())

	// Assert
	require.NoError(t, err)
	assert.Empty(t, unresolved)
	q := c.Queues().Queue("alpha")
	require.Equal(t, 3, q.Len())
	assert.Equal(t, "o-1", q.Head().ID())
	assert.InDelta(t, 0.4, q.Head().PercentDone(), 1e-12)
	second, err := q.At(1)
	require.NoError(t, err)
	assert.True(t, second.IsDisassembly())
}

func TestCampaignRepository_DisassemblyAndNoticeFlagsSurviveReload(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCampaignRepository(db, helpers.NewTestClock())
	require.NoError(t, repo.Save(context.Background(), testSnapshot()))

	// Act - reload, commit again and reload, as every command does
	first, err := repo.Load(context.Background(), "campaign-1")
	require.NoError(t, err)
	c, _, err := campaign.Restore(*first, helpers.NewTestCatalog(), helpers.NewTestClock())
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), c.Snapshot()))
	second, err := repo.Load(context.Background(), "campaign-1")
	require.NoError(t, err)

	// Assert
	orders := second.Queues[0].Orders
	require.Len(t, orders, 3)
	assert.True(t, orders[0].IsManufacture)
	assert.True(t, orders[0].CreditBlocked)
	assert.False(t, orders[0].SpaceBlocked)
	assert.False(t, orders[1].IsManufacture)
	assert.True(t, orders[1].SpaceBlocked)
	assert.False(t, orders[1].CreditBlocked)
	assert.True(t, orders[2].IsManufacture)
	assert.False(t, orders[2].CreditBlocked)

	restored, _, err := campaign.Restore(*second, helpers.NewTestCatalog(), helpers.NewTestClock())
	require.NoError(t, err)
	head := restored.Queues().Queue("alpha").Head()
	assert.True(t, head.CreditBlocked())
	assert.False(t, head.FlagCreditBlocked())
}

func TestCampaignRepository_LoadUnknown(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCampaignRepository(db, nil)

	_, err := repo.Load(context.Background(), "nope")

	var notFound *campaign.ErrCampaignNotFound
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "nope", notFound.CampaignID)
}

func TestCampaignRepository_List(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCampaignRepository(db, helpers.NewTestClock())
	require.NoError(t, repo.Save(context.Background(), testSnapshot()))
	require.NoError(t, repo.Save(context.Background(), campaign.Snapshot{ID: "campaign-0", Name: "Empty", Credits: 5}))

	// Act
	summaries, err := repo.List(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, campaign.Summary{ID: "campaign-0", Name: "Empty", Credits: 5}, summaries[0])
	assert.Equal(t, campaign.Summary{ID: "campaign-1", Name: "Persistence", Hour: 72, Credits: 4200, BaseCount: 2}, summaries[1])
}

func TestCampaignRepository_Delete(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCampaignRepository(db, helpers.NewTestClock())
	require.NoError(t, repo.Save(context.Background(), testSnapshot()))

	// Act
	err := repo.Delete(context.Background(), "campaign-1")

	// Assert
	require.NoError(t, err)
	_, err = repo.Load(context.Background(), "campaign-1")
	assert.Error(t, err)

	var orders int64
	require.NoError(t, db.Model(&persistence.ProductionOrderModel{}).Count(&orders).Error)
	assert.Zero(t, orders)

	err = repo.Delete(context.Background(), "campaign-1")
	var notFound *campaign.ErrCampaignNotFound
	assert.True(t, errors.As(err, &notFound))
}
