package ledger

import (
	"context"
)

// TransactionRepository defines persistence operations for transactions
type TransactionRepository interface {
	// Create persists new transactions in order
	Create(ctx context.Context, transactions ...*Transaction) error

	// FindByCampaign retrieves transactions of a campaign with optional filtering
	FindByCampaign(ctx context.Context, campaignID string, opts QueryOptions) ([]*Transaction, error)
}

// QueryOptions defines filtering and pagination options for transaction queries
type QueryOptions struct {
	TransactionType *TransactionType
	BaseID          string
	SinceHour       *int64

	Limit  int
	Offset int
}

// DefaultQueryOptions returns default query options
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{Limit: 50}
}
