package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TransactionID identifies a transaction
type TransactionID string

// NewTransactionID generates a fresh id
func NewTransactionID() TransactionID {
	return TransactionID(uuid.New().String())
}

// ParseTransactionID validates a persisted id
func ParseTransactionID(s string) (TransactionID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("invalid transaction_id format: %w", err)
	}
	return TransactionID(s), nil
}

func (id TransactionID) String() string { return string(id) }

// Transaction is an immutable record of one credit movement in a campaign
type Transaction struct {
	id              TransactionID
	campaignID      string
	hour            int64 // campaign hour the movement happened in
	timestamp       time.Time
	transactionType TransactionType
	category        Category
	amount          int // positive for income, negative for expenses
	balanceBefore   int
	balanceAfter    int
	description     string
	baseID          string
	orderID         string
	targetID        string
}

// NewTransaction creates a new transaction with validation
func NewTransaction(
	campaignID string,
	hour int64,
	timestamp time.Time,
	transactionType TransactionType,
	amount int,
	balanceBefore int,
	description string,
	baseID string,
	orderID string,
	targetID string,
) (*Transaction, error) {
	if campaignID == "" {
		return nil, &ErrInvalidTransaction{Field: "campaign_id", Reason: "campaign_id cannot be empty"}
	}

	category, err := transactionType.ToCategory()
	if err != nil {
		return nil, &ErrInvalidTransaction{Field: "transaction_type", Reason: err.Error()}
	}

	t := &Transaction{
		id:              NewTransactionID(),
		campaignID:      campaignID,
		hour:            hour,
		timestamp:       timestamp,
		transactionType: transactionType,
		category:        category,
		amount:          amount,
		balanceBefore:   balanceBefore,
		balanceAfter:    balanceBefore + amount,
		description:     description,
		baseID:          baseID,
		orderID:         orderID,
		targetID:        targetID,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// ReconstructTransaction reconstructs a transaction from persistence
func ReconstructTransaction(
	id TransactionID,
	campaignID string,
	hour int64,
	timestamp time.Time,
	transactionType TransactionType,
	category Category,
	amount int,
	balanceBefore int,
	balanceAfter int,
	description string,
	baseID string,
	orderID string,
	targetID string,
) *Transaction {
	return &Transaction{
		id:              id,
		campaignID:      campaignID,
		hour:            hour,
		timestamp:       timestamp,
		transactionType: transactionType,
		category:        category,
		amount:          amount,
		balanceBefore:   balanceBefore,
		balanceAfter:    balanceAfter,
		description:     description,
		baseID:          baseID,
		orderID:         orderID,
		targetID:        targetID,
	}
}

// Validate checks that the transaction satisfies all invariants
func (t *Transaction) Validate() error {
	if t.amount == 0 {
		return &ErrInvalidTransaction{Field: "amount", Reason: "amount cannot be zero"}
	}

	expected := t.balanceBefore + t.amount
	if t.balanceAfter != expected {
		return &ErrBalanceInvariantViolation{
			BalanceBefore: t.balanceBefore,
			Amount:        t.amount,
			BalanceAfter:  t.balanceAfter,
			Expected:      expected,
		}
	}

	if t.hour < 0 {
		return &ErrInvalidTransaction{Field: "hour", Reason: "campaign hour cannot be negative"}
	}
	return nil
}

func (t *Transaction) ID() TransactionID                { return t.id }
func (t *Transaction) CampaignID() string               { return t.campaignID }
func (t *Transaction) Hour() int64                      { return t.hour }
func (t *Transaction) Timestamp() time.Time             { return t.timestamp }
func (t *Transaction) TransactionType() TransactionType { return t.transactionType }
func (t *Transaction) Category() Category               { return t.category }
func (t *Transaction) Amount() int                      { return t.amount }
func (t *Transaction) BalanceBefore() int               { return t.balanceBefore }
func (t *Transaction) BalanceAfter() int                { return t.balanceAfter }
func (t *Transaction) Description() string              { return t.description }
func (t *Transaction) BaseID() string                   { return t.baseID }
func (t *Transaction) OrderID() string                  { return t.orderID }
func (t *Transaction) TargetID() string                 { return t.targetID }

// IsExpense returns true if the transaction took credits out of the pool
func (t *Transaction) IsExpense() bool {
	return t.amount < 0
}

// String provides a human-readable representation
func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction[%s, type=%s, amount=%d, balance=%d->%d]",
		t.id, t.transactionType, t.amount, t.balanceBefore, t.balanceAfter)
}
