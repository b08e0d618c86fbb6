package queries

import (
	"context"
	"fmt"
	"sort"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/mediator"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/ledger"
)

// GetProductionSpendQuery summarises where production credits went
type GetProductionSpendQuery struct {
	CampaignID string
	SinceHour  *int64
}

// GetProductionSpendResponse represents the spend statement
type GetProductionSpendResponse struct {
	TotalSpent   int
	TotalIncome  int
	ByBase       []*SpendLine
	ByTarget     []*SpendLine
	Transactions int
}

// SpendLine is one row of the statement, sorted by amount descending
type SpendLine struct {
	Key    string
	Amount int
	Units  int
}

// GetProductionSpendHandler handles the GetProductionSpend query
type GetProductionSpendHandler struct {
	transactionRepo ledger.TransactionRepository
}

// NewGetProductionSpendHandler creates a new GetProductionSpendHandler
func NewGetProductionSpendHandler(transactionRepo ledger.TransactionRepository) *GetProductionSpendHandler {
	return &GetProductionSpendHandler{transactionRepo: transactionRepo}
}

// Handle executes the GetProductionSpend query
func (h *GetProductionSpendHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetProductionSpendQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetProductionSpendQuery")
	}

	opts := ledger.QueryOptions{SinceHour: query.SinceHour} // no limit
	transactions, err := h.transactionRepo.FindByCampaign(ctx, query.CampaignID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	return summarise(transactions), nil
}

func summarise(transactions []*ledger.Transaction) *GetProductionSpendResponse {
	resp := &GetProductionSpendResponse{Transactions: len(transactions)}
	byBase := make(map[string]*SpendLine)
	byTarget := make(map[string]*SpendLine)

	for _, tx := range transactions {
		if !tx.IsExpense() {
			resp.TotalIncome += tx.Amount()
			continue
		}
		spent := -tx.Amount()
		resp.TotalSpent += spent
		if tx.TransactionType() != ledger.TransactionTypeProductionCost {
			continue
		}
		addLine(byBase, tx.BaseID(), spent)
		addLine(byTarget, tx.TargetID(), spent)
	}

	resp.ByBase = sortedLines(byBase)
	resp.ByTarget = sortedLines(byTarget)
	return resp
}

func addLine(lines map[string]*SpendLine, key string, amount int) {
	line, ok := lines[key]
	if !ok {
		line = &SpendLine{Key: key}
		lines[key] = line
	}
	line.Amount += amount
	line.Units++
}

func sortedLines(lines map[string]*SpendLine) []*SpendLine {
	out := make([]*SpendLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Key < out[j].Key
	})
	return out
}
