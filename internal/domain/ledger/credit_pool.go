package ledger

import (
	"context"
	"fmt"

	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/shared"
)

// CreditPool is the single credit balance every base of a campaign draws from.
// Each movement is journaled as a transaction until the journal is drained
// by the persistence layer.
type CreditPool struct {
	campaignID string
	balance    int
	hours      shared.HourSource
	clock      shared.Clock
	journal    []*Transaction
}

// NewCreditPool creates a pool with a starting balance
func NewCreditPool(campaignID string, balance int, hours shared.HourSource, clock shared.Clock) *CreditPool {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CreditPool{
		campaignID: campaignID,
		balance:    balance,
		hours:      hours,
		clock:      clock,
	}
}

// Balance returns the current credits
func (p *CreditPool) Balance() int {
	return p.balance
}

// Add credits the pool
func (p *CreditPool) Add(ctx context.Context, amount int, memo production.CreditMemo) error {
	if amount < 0 {
		return fmt.Errorf("cannot add negative amount %d", amount)
	}
	return p.record(TransactionTypeAdjustment, amount, memo)
}

// Subtract charges a production unit to the pool
func (p *CreditPool) Subtract(ctx context.Context, amount int, memo production.CreditMemo) error {
	if amount < 0 {
		return fmt.Errorf("cannot subtract negative amount %d", amount)
	}
	if amount > p.balance {
		return &ErrInsufficientCredits{Requested: amount, Available: p.balance}
	}
	return p.record(TransactionTypeProductionCost, -amount, memo)
}

// Adjust applies a signed manual correction. The balance may not go negative.
func (p *CreditPool) Adjust(amount int, description string) error {
	if p.balance+amount < 0 {
		return &ErrInsufficientCredits{Requested: -amount, Available: p.balance}
	}
	if description == "" {
		description = "manual adjustment"
	}
	return p.record(TransactionTypeAdjustment, amount, production.CreditMemo{Description: description})
}

// Fund records the starting balance of a campaign
func (p *CreditPool) Fund(amount int) error {
	return p.record(TransactionTypeInitialFunding, amount, production.CreditMemo{Description: "campaign funding"})
}

func (p *CreditPool) record(kind TransactionType, amount int, memo production.CreditMemo) error {
	if amount == 0 {
		return nil
	}

	var hour int64
	if p.hours != nil {
		hour = p.hours.Hour()
	}

	tx, err := NewTransaction(
		p.campaignID,
		hour,
		p.clock.Now(),
		kind,
		amount,
		p.balance,
		memo.Description,
		memo.BaseID,
		memo.OrderID,
		memo.TargetID,
	)
	if err != nil {
		return fmt.Errorf("failed to record credit movement: %w", err)
	}

	p.balance = tx.BalanceAfter()
	p.journal = append(p.journal, tx)
	return nil
}

// Pending returns journaled transactions not yet drained
func (p *CreditPool) Pending() []*Transaction {
	out := make([]*Transaction, len(p.journal))
	copy(out, p.journal)
	return out
}

// Drain returns and forgets the journaled transactions
func (p *CreditPool) Drain() []*Transaction {
	out := p.journal
	p.journal = nil
	return out
}

var _ production.CreditLedger = (*CreditPool)(nil)
