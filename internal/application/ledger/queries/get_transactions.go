package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/mediator"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/ledger"
)

// GetTransactionsQuery represents a query to retrieve credit movements of a campaign
type GetTransactionsQuery struct {
	CampaignID      string
	TransactionType *string
	BaseID          string
	SinceHour       *int64
	Limit           int
	Offset          int
}

// GetTransactionsResponse represents the result of the query
type GetTransactionsResponse struct {
	Transactions []*TransactionDTO
}

// TransactionDTO represents a transaction data transfer object
type TransactionDTO struct {
	ID            string
	Hour          int64
	Timestamp     time.Time
	Type          string
	Category      string
	Amount        int
	BalanceBefore int
	BalanceAfter  int
	Description   string
	BaseID        string
	OrderID       string
	TargetID      string
}

// GetTransactionsHandler handles the GetTransactions query
type GetTransactionsHandler struct {
	transactionRepo ledger.TransactionRepository
}

// NewGetTransactionsHandler creates a new GetTransactionsHandler
func NewGetTransactionsHandler(transactionRepo ledger.TransactionRepository) *GetTransactionsHandler {
	return &GetTransactionsHandler{transactionRepo: transactionRepo}
}

// Handle executes the GetTransactions query
func (h *GetTransactionsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetTransactionsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetTransactionsQuery")
	}

	opts, err := buildQueryOptions(query)
	if err != nil {
		return nil, err
	}

	transactions, err := h.transactionRepo.FindByCampaign(ctx, query.CampaignID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	dtos := make([]*TransactionDTO, len(transactions))
	for i, tx := range transactions {
		dtos[i] = toDTO(tx)
	}
	return &GetTransactionsResponse{Transactions: dtos}, nil
}

func buildQueryOptions(query *GetTransactionsQuery) (ledger.QueryOptions, error) {
	opts := ledger.DefaultQueryOptions()

	if query.TransactionType != nil {
		txType, err := ledger.ParseTransactionType(*query.TransactionType)
		if err != nil {
			return opts, fmt.Errorf("invalid transaction type: %w", err)
		}
		opts.TransactionType = &txType
	}
	opts.BaseID = query.BaseID
	opts.SinceHour = query.SinceHour

	if query.Limit > 0 {
		opts.Limit = query.Limit
	}
	opts.Offset = query.Offset
	return opts, nil
}

func toDTO(tx *ledger.Transaction) *TransactionDTO {
	return &TransactionDTO{
		ID:            tx.ID().String(),
		Hour:          tx.Hour(),
		Timestamp:     tx.Timestamp(),
		Type:          tx.TransactionType().String(),
		Category:      tx.Category().String(),
		Amount:        tx.Amount(),
		BalanceBefore: tx.BalanceBefore(),
		BalanceAfter:  tx.BalanceAfter(),
		Description:   tx.Description(),
		BaseID:        tx.BaseID(),
		OrderID:       tx.OrderID(),
		TargetID:      tx.TargetID(),
	}
}
