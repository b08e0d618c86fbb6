package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ufoaiorg/ufoai-sub009/internal/domain/ledger"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GORM transaction repository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Create persists transactions in the order given. Each row gets the next
// sequence number of its campaign so that listings keep journal order.
func (r *GormTransactionRepository) Create(ctx context.Context, transactions ...*ledger.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		next := make(map[string]int64)
		models := make([]TransactionModel, 0, len(transactions))

		for _, t := range transactions {
			seq, ok := next[t.CampaignID()]
			if !ok {
				if err := tx.Model(&TransactionModel{}).
					Where("campaign_id = ?", t.CampaignID()).
					Select("COALESCE(MAX(seq), 0)").
					Row().Scan(&seq); err != nil {
					return fmt.Errorf("failed to read transaction sequence: %w", err)
				}
			}
			seq++
			next[t.CampaignID()] = seq

			model := transactionToModel(t)
			model.Seq = seq
			models = append(models, *model)
		}

		if err := tx.Create(&models).Error; err != nil {
			return fmt.Errorf("failed to create transactions: %w", err)
		}
		return nil
	})
}

// FindByCampaign retrieves transactions of a campaign, newest first
func (r *GormTransactionRepository) FindByCampaign(ctx context.Context, campaignID string, opts ledger.QueryOptions) ([]*ledger.Transaction, error) {
	query := r.db.WithContext(ctx).Where("campaign_id = ?", campaignID)
	query = applyFilters(query, opts)
	query = query.Order("seq DESC")

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var models []TransactionModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}

	transactions := make([]*ledger.Transaction, len(models))
	for i := range models {
		tx, err := modelToTransaction(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert transaction model: %w", err)
		}
		transactions[i] = tx
	}
	return transactions, nil
}

func applyFilters(query *gorm.DB, opts ledger.QueryOptions) *gorm.DB {
	if opts.TransactionType != nil {
		query = query.Where("transaction_type = ?", opts.TransactionType.String())
	}
	if opts.BaseID != "" {
		query = query.Where("base_id = ?", opts.BaseID)
	}
	if opts.SinceHour != nil {
		query = query.Where("hour >= ?", *opts.SinceHour)
	}
	return query
}

func modelToTransaction(model *TransactionModel) (*ledger.Transaction, error) {
	id, err := ledger.ParseTransactionID(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction ID in database: %w", err)
	}

	transactionType, err := ledger.ParseTransactionType(model.TransactionType)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction type in database: %w", err)
	}

	category, err := ledger.ParseCategory(model.Category)
	if err != nil {
		return nil, fmt.Errorf("invalid category in database: %w", err)
	}

	return ledger.ReconstructTransaction(
		id,
		model.CampaignID,
		model.Hour,
		model.Timestamp,
		transactionType,
		category,
		model.Amount,
		model.BalanceBefore,
		model.BalanceAfter,
		model.Description,
		model.BaseID,
		model.OrderID,
		model.TargetID,
	), nil
}

func transactionToModel(tx *ledger.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:              tx.ID().String(),
		CampaignID:      tx.CampaignID(),
		Hour:            tx.Hour(),
		Timestamp:       tx.Timestamp(),
		TransactionType: tx.TransactionType().String(),
		Category:        tx.Category().String(),
		Amount:          tx.Amount(),
		BalanceBefore:   tx.BalanceBefore(),
		BalanceAfter:    tx.BalanceAfter(),
		Description:     tx.Description(),
		BaseID:          tx.BaseID(),
		OrderID:         tx.OrderID(),
		TargetID:        tx.TargetID(),
	}
}

var _ ledger.TransactionRepository = (*GormTransactionRepository)(nil)
