package persistence

import (
	"time"
)

// CampaignModel represents the campaigns table
type CampaignModel struct {
	ID        string    `gorm:"column:id;primaryKey;not null"`
	Name      string    `gorm:"column:name;not null"`
	Hour      int64     `gorm:"column:hour;not null"`
	Credits   int       `gorm:"column:credits;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (CampaignModel) TableName() string {
	return "campaigns"
}

// BaseModel represents the bases table
type BaseModel struct {
	CampaignID    string         `gorm:"column:campaign_id;primaryKey;not null"`
	Campaign      *CampaignModel `gorm:"foreignKey:CampaignID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	BaseID        string         `gorm:"column:base_id;primaryKey;not null"`
	Idx           int            `gorm:"column:idx;not null"`
	Name          string         `gorm:"column:name;not null"`
	CommandCentre int            `gorm:"column:command_centre;not null"` // 0 or 1 (SQLite compatible)
	Workshops     int            `gorm:"column:workshops;not null"`
	UnderAttack   int            `gorm:"column:under_attack;not null"`
	Employees     string         `gorm:"column:employees;type:text"`  // JSON object as text
	Capacities    string         `gorm:"column:capacities;type:text"` // JSON object as text
	Storage       string         `gorm:"column:storage;type:text"`    // JSON object as text
	Aircraft      string         `gorm:"column:aircraft;type:text"`   // JSON array as text
}

func (BaseModel) TableName() string {
	return "bases"
}

// ProductionOrderModel represents the production_orders table.
// Position is the order's index in its base queue.
type ProductionOrderModel struct {
	CampaignID        string  `gorm:"column:campaign_id;primaryKey;not null"`
	BaseID            string  `gorm:"column:base_id;primaryKey;not null"`
	Position          int     `gorm:"column:position;primaryKey;not null"`
	OrderID           string  `gorm:"column:order_id;not null"`
	ItemID            string  `gorm:"column:item_id"`
	AircraftID        string  `gorm:"column:aircraft_id"`
	Amount            int     `gorm:"column:amount;not null"`
	PercentDone       float64 `gorm:"column:percent_done;not null"`
	IsManufacture     int     `gorm:"column:is_manufacture;not null"`
	MaterialsReserved int     `gorm:"column:materials_reserved;not null"`
	CreditBlocked     int     `gorm:"column:credit_blocked;not null"`
	SpaceBlocked      int     `gorm:"column:space_blocked;not null"`
	UnresolvedNoticed int     `gorm:"column:unresolved_noticed;not null"`
}

func (ProductionOrderModel) TableName() string {
	return "production_orders"
}

// TransactionModel represents the transactions table
type TransactionModel struct {
	ID              string    `gorm:"column:id;primaryKey;not null"`
	CampaignID      string    `gorm:"column:campaign_id;not null;index"`
	Hour            int64     `gorm:"column:hour;not null;index"`
	Timestamp       time.Time `gorm:"column:timestamp;not null"`
	TransactionType string    `gorm:"column:transaction_type;not null"`
	Category        string    `gorm:"column:category;not null"`
	Amount          int       `gorm:"column:amount;not null"`
	BalanceBefore   int       `gorm:"column:balance_before;not null"`
	BalanceAfter    int       `gorm:"column:balance_after;not null"`
	Description     string    `gorm:"column:description;type:text"`
	BaseID          string    `gorm:"column:base_id"`
	OrderID         string    `gorm:"column:order_id"`
	TargetID        string    `gorm:"column:target_id"`
	// Seq keeps insertion order for transactions stamped within the same hour
	Seq int64 `gorm:"column:seq;not null"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

// AllModels lists every model for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&CampaignModel{},
		&BaseModel{},
		&ProductionOrderModel{},
		&TransactionModel{},
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
