package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ufoaiorg/ufoai-sub009/internal/domain/base"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/shared"
)

// GormCampaignRepository implements campaign.Repository using GORM.
// A snapshot is stored as one campaigns row, one bases row per base and
// one production_orders row per queued order.
type GormCampaignRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormCampaignRepository creates a new GORM campaign repository
func NewGormCampaignRepository(db *gorm.DB, clock shared.Clock) *GormCampaignRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormCampaignRepository{db: db, clock: clock}
}

// Save replaces the stored state of the campaign with the snapshot
func (r *GormCampaignRepository) Save(ctx context.Context, snapshot campaign.Snapshot) error {
	if snapshot.ID == "" {
		return fmt.Errorf("campaign id cannot be empty")
	}

	bases := make([]BaseModel, 0, len(snapshot.Bases))
	for _, st := range snapshot.Bases {
		model, err := baseToModel(snapshot.ID, st)
		if err != nil {
			return err
		}
		bases = append(bases, *model)
	}

	var orders []ProductionOrderModel
	for _, q := range snapshot.Queues {
		for pos, rec := range q.Orders {
			orders = append(orders, ProductionOrderModel{
				CampaignID:        snapshot.ID,
				BaseID:            q.BaseID,
				Position:          pos,
				OrderID:           rec.OrderID,
				ItemID:            rec.ItemID,
				AircraftID:        rec.AircraftID,
				Amount:            rec.Amount,
				PercentDone:       rec.PercentDone,
				IsManufacture:     boolToInt(rec.IsManufacture),
				MaterialsReserved: boolToInt(rec.MaterialsReserved),
				CreditBlocked:     boolToInt(rec.CreditBlocked),
				SpaceBlocked:      boolToInt(rec.SpaceBlocked),
				UnresolvedNoticed: boolToInt(rec.UnresolvedNoticed),
			})
		}
	}

	now := r.clock.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := CampaignModel{
			ID:        snapshot.ID,
			Name:      snapshot.Name,
			Hour:      snapshot.Hour,
			Credits:   snapshot.Credits,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "hour", "credits", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to upsert campaign: %w", err)
		}

		if err := tx.Where("campaign_id = ?", snapshot.ID).Delete(&ProductionOrderModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear production orders: %w", err)
		}
		if err := tx.Where("campaign_id = ?", snapshot.ID).Delete(&BaseModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear bases: %w", err)
		}

		if len(bases) > 0 {
			if err := tx.Create(&bases).Error; err != nil {
				return fmt.Errorf("failed to store bases: %w", err)
			}
		}
		if len(orders) > 0 {
			if err := tx.Create(&orders).Error; err != nil {
				return fmt.Errorf("failed to store production orders: %w", err)
			}
		}
		return nil
	})
}

// Load reads a campaign snapshot
func (r *GormCampaignRepository) Load(ctx context.Context, campaignID string) (*campaign.Snapshot, error) {
	db := r.db.WithContext(ctx)

	var row CampaignModel
	if err := db.Where("id = ?", campaignID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &campaign.ErrCampaignNotFound{CampaignID: campaignID}
		}
		return nil, fmt.Errorf("failed to find campaign: %w", err)
	}

	var bases []BaseModel
	if err := db.Where("campaign_id = ?", campaignID).Order("idx ASC").Find(&bases).Error; err != nil {
		return nil, fmt.Errorf("failed to load bases: %w", err)
	}

	var orders []ProductionOrderModel
	if err := db.Where("campaign_id = ?", campaignID).Order("base_id ASC, position ASC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to load production orders: %w", err)
	}

	snapshot := &campaign.Snapshot{
		ID:      row.ID,
		Name:    row.Name,
		Hour:    row.Hour,
		Credits: row.Credits,
	}

	queues := make(map[string]*production.BaseQueueRecord, len(bases))
	for _, m := range bases {
		st, err := modelToBase(&m)
		if err != nil {
			return nil, err
		}
		snapshot.Bases = append(snapshot.Bases, st)
		queues[m.BaseID] = &production.BaseQueueRecord{BaseID: m.BaseID}
	}

	for _, o := range orders {
		q, ok := queues[o.BaseID]
		if !ok {
			return nil, fmt.Errorf("production order %s belongs to unknown base %s", o.OrderID, o.BaseID)
		}
		q.Orders = append(q.Orders, production.QueueRecord{
			OrderID:           o.OrderID,
			ItemID:            o.ItemID,
			AircraftID:        o.AircraftID,
			Amount:            o.Amount,
			PercentDone:       o.PercentDone,
			IsManufacture:     o.IsManufacture == 1,
			MaterialsReserved: o.MaterialsReserved == 1,
			CreditBlocked:     o.CreditBlocked == 1,
			SpaceBlocked:      o.SpaceBlocked == 1,
			UnresolvedNoticed: o.UnresolvedNoticed == 1,
		})
	}

	for _, st := range snapshot.Bases {
		snapshot.Queues = append(snapshot.Queues, *queues[st.ID])
	}
	return snapshot, nil
}

// List returns a summary of every stored campaign
func (r *GormCampaignRepository) List(ctx context.Context) ([]campaign.Summary, error) {
	var rows []CampaignModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	type baseCount struct {
		CampaignID string
		Count      int
	}
	var counts []baseCount
	if err := r.db.WithContext(ctx).Model(&BaseModel{}).
		Select("campaign_id, COUNT(*) AS count").
		Group("campaign_id").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to count bases: %w", err)
	}
	byCampaign := make(map[string]int, len(counts))
	for _, c := range counts {
		byCampaign[c.CampaignID] = c.Count
	}

	out := make([]campaign.Summary, len(rows))
	for i, row := range rows {
		out[i] = campaign.Summary{
			ID:        row.ID,
			Name:      row.Name,
			Hour:      row.Hour,
			Credits:   row.Credits,
			BaseCount: byCampaign[row.ID],
		}
	}
	return out, nil
}

// Delete removes a campaign with its bases, orders and transactions
func (r *GormCampaignRepository) Delete(ctx context.Context, campaignID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&ProductionOrderModel{}, &BaseModel{}, &TransactionModel{}} {
			if err := tx.Where("campaign_id = ?", campaignID).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to delete campaign rows: %w", err)
			}
		}
		result := tx.Where("id = ?", campaignID).Delete(&CampaignModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete campaign: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return &campaign.ErrCampaignNotFound{CampaignID: campaignID}
		}
		return nil
	})
}

func baseToModel(campaignID string, st base.State) (*BaseModel, error) {
	employees, err := json.Marshal(st.Employees)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal employees of %s: %w", st.ID, err)
	}
	capacities, err := json.Marshal(st.Capacities)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal capacities of %s: %w", st.ID, err)
	}
	storage, err := json.Marshal(st.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal storage of %s: %w", st.ID, err)
	}
	aircraft, err := json.Marshal(st.Aircraft)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal aircraft of %s: %w", st.ID, err)
	}

	return &BaseModel{
		CampaignID:    campaignID,
		BaseID:        st.ID,
		Idx:           st.Index,
		Name:          st.Name,
		CommandCentre: boolToInt(st.CommandCentre),
		Workshops:     st.Workshops,
		UnderAttack:   boolToInt(st.UnderAttack),
		Employees:     string(employees),
		Capacities:    string(capacities),
		Storage:       string(storage),
		Aircraft:      string(aircraft),
	}, nil
}

func modelToBase(m *BaseModel) (base.State, error) {
	st := base.State{
		Index:         m.Idx,
		ID:            m.BaseID,
		Name:          m.Name,
		CommandCentre: m.CommandCentre == 1,
		Workshops:     m.Workshops,
		UnderAttack:   m.UnderAttack == 1,
	}
	fields := []struct {
		raw    string
		target interface{}
		name   string
	}{
		{m.Employees, &st.Employees, "employees"},
		{m.Capacities, &st.Capacities, "capacities"},
		{m.Storage, &st.Storage, "storage"},
		{m.Aircraft, &st.Aircraft, "aircraft"},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(f.raw), f.target); err != nil {
			return st, fmt.Errorf("invalid %s of base %s in database: %w", f.name, m.BaseID, err)
		}
	}
	return st, nil
}

var _ campaign.Repository = (*GormCampaignRepository)(nil)
