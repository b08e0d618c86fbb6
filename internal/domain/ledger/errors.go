package ledger

import "fmt"

// ErrInvalidTransaction represents validation errors for transactions
type ErrInvalidTransaction struct {
	Field  string
	Reason string
}

func (e *ErrInvalidTransaction) Error() string {
	return fmt.Sprintf("invalid transaction: %s - %s", e.Field, e.Reason)
}

// ErrBalanceInvariantViolation represents errors when balance calculations don't match
type ErrBalanceInvariantViolation struct {
	BalanceBefore int
	Amount        int
	BalanceAfter  int
	Expected      int
}

func (e *ErrBalanceInvariantViolation) Error() string {
	return fmt.Sprintf("balance invariant violated: balance_before=%d + amount=%d should equal balance_after=%d, but got %d",
		e.BalanceBefore, e.Amount, e.Expected, e.BalanceAfter)
}

// ErrInsufficientCredits indicates a charge larger than the pool balance
type ErrInsufficientCredits struct {
	Requested int
	Available int
}

func (e *ErrInsufficientCredits) Error() string {
	return fmt.Sprintf("insufficient credits: requested %d, available %d", e.Requested, e.Available)
}
