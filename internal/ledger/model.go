// Package ledger implements the account/transaction store of the bank:
// the on-disk table, the atomic read-modify-write protocol every
// money-moving operation follows, and read-only statement projections.
package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TxKind is the closed set of transaction types. The JSON representation is
// the snake_case string; anything outside this set is rejected on save.
type TxKind string

const (
	KindDeposit        TxKind = "deposit"
	KindWithdrawal     TxKind = "withdrawal"
	KindTransferIn     TxKind = "transfer_in"
	KindTransferOut    TxKind = "transfer_out"
	KindAccountClosure TxKind = "account_closure"
)

// Valid reports whether k is one of the known transaction kinds.
func (k TxKind) Valid() bool {
	switch k {
	case KindDeposit, KindWithdrawal, KindTransferIn, KindTransferOut, KindAccountClosure:
		return true
	}
	return false
}

// Credit reports whether k increases the balance.
func (k TxKind) Credit() bool { return k == KindDeposit || k == KindTransferIn }

// Debit reports whether k decreases the balance.
func (k TxKind) Debit() bool { return k == KindWithdrawal || k == KindTransferOut }

// Title returns a human-readable name, e.g. "Transfer Out".
func (k TxKind) Title() string {
	switch k {
	case KindDeposit:
		return "Deposit"
	case KindWithdrawal:
		return "Withdrawal"
	case KindTransferIn:
		return "Transfer In"
	case KindTransferOut:
		return "Transfer Out"
	case KindAccountClosure:
		return "Account Closure"
	}
	return string(k)
}

// Status is the lifecycle state of an account. Accounts are closed, never
// deleted; history survives closure.
type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// Transaction is an immutable record of one balance-affecting event.
// Amount is always non-negative; its semantic sign follows from Kind.
// BalanceAfter snapshots the balance immediately following the event.
type Transaction struct {
	ID           string          `json:"id"`
	Kind         TxKind          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Counterparty string          `json:"counterparty,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
}

// Account is one customer's ledger entry. Username is the unique lowercase
// key; Transactions is append-only and insertion order is chronological.
type Account struct {
	Username     string          `json:"username"`
	Name         string          `json:"name"`
	PasswordHash string          `json:"password_hash"`
	Balance      decimal.Decimal `json:"balance"`
	Status       Status          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	ClosedAt     *time.Time      `json:"closed_at,omitempty"`
	Transactions []Transaction   `json:"transactions"`
}

// Closed reports whether the account has been permanently closed.
func (a *Account) Closed() bool { return a.Status == StatusClosed }

// Clone returns a deep copy of the account, safe to hand to callers without
// exposing ledger internals.
func (a *Account) Clone() *Account {
	cp := *a
	if a.ClosedAt != nil {
		t := *a.ClosedAt
		cp.ClosedAt = &t
	}
	cp.Transactions = make([]Transaction, len(a.Transactions))
	copy(cp.Transactions, a.Transactions)
	return &cp
}

// Table is the full persisted state: username → account.
type Table map[string]*Account

// Validate checks the cross-field invariants the store enforces on every
// write: non-negative balances, known transaction kinds, non-negative
// amounts, and the last transaction's balance_after matching the balance.
func (t Table) Validate() error {
	for username, a := range t {
		if a == nil {
			return fmt.Errorf("account %q: nil entry", username)
		}
		if a.Balance.IsNegative() {
			return fmt.Errorf("account %q: negative balance %s", username, a.Balance)
		}
		for i, tx := range a.Transactions {
			if !tx.Kind.Valid() {
				return fmt.Errorf("account %q: transaction %d has unknown type %q", username, i, tx.Kind)
			}
			if tx.Amount.IsNegative() {
				return fmt.Errorf("account %q: transaction %d has negative amount %s", username, i, tx.Amount)
			}
		}
		if n := len(a.Transactions); n > 0 {
			last := a.Transactions[n-1]
			if !last.BalanceAfter.Equal(a.Balance) {
				return fmt.Errorf("account %q: last balance_after %s != balance %s",
					username, last.BalanceAfter, a.Balance)
			}
		}
	}
	return nil
}

// TotalBalance returns the sum of all account balances. Used by conservation
// checks in tests and available to callers for reconciliation.
func (t Table) TotalBalance() decimal.Decimal {
	sum := decimal.Zero
	for _, a := range t {
		sum = sum.Add(a.Balance)
	}
	return sum
}
