package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avolkovs/securebank/internal/config"
	"github.com/avolkovs/securebank/internal/cryptox"
	"github.com/avolkovs/securebank/internal/logging"
)

// Ledger implements every money-moving operation of the bank. All operations
// share one pattern: load the full table, validate preconditions against the
// in-memory snapshot, mutate, append a transaction record, save the table
// atomically. No operation is split across two persisted writes; a transfer
// intentionally commits both legs in one save so it can never be observed
// half-applied.
type Ledger struct {
	store *Store
	cfg   *config.Config
	log   logging.Logger

	// test seams
	now   func() time.Time
	newID func() string
}

func New(store *Store, cfg *config.Config, log logging.Logger) *Ledger {
	return &Ledger{
		store: store,
		cfg:   cfg,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Normalize lowercases and trims a username; the table is keyed by the
// normalized form.
func Normalize(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// CreateAccount registers a new account with a hashed password and an opening
// balance. When the opening deposit is positive an "Initial deposit"
// transaction is recorded so the history starts at the opening balance.
func (l *Ledger) CreateAccount(ctx context.Context, username, name, password string, opening decimal.Decimal) (*Account, error) {
	username = Normalize(username)

	if opening.LessThan(l.cfg.MinOpeningDeposit) {
		return nil, ErrInvalidAmount
	}

	table, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := table[username]; ok {
		return nil, ErrAccountExists
	}

	ts := l.now()
	a := &Account{
		Username:     username,
		Name:         name,
		PasswordHash: cryptox.HashPassword([]byte(password)),
		Balance:      opening,
		Status:       StatusActive,
		CreatedAt:    ts,
		Transactions: []Transaction{},
	}
	if opening.IsPositive() {
		l.appendTx(a, KindDeposit, opening, "Initial deposit", "", ts)
	}
	table[username] = a

	if err := l.store.Save(ctx, table); err != nil {
		return nil, err
	}
	l.log.Info(ctx, "account created", "username", username)
	return a.Clone(), nil
}

// Authenticate verifies a username/password pair and returns a snapshot of
// the account on success. Unknown users and wrong passwords are
// indistinguishable to the caller; closed accounts cannot log in.
func (l *Ledger) Authenticate(ctx context.Context, username, password string) (*Account, error) {
	table, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	a, ok := table[Normalize(username)]
	if !ok {
		return nil, ErrAuthenticationFailed
	}
	if !cryptox.VerifyPassword([]byte(password), a.PasswordHash) {
		return nil, ErrAuthenticationFailed
	}
	if a.Closed() {
		return nil, ErrAccountClosed
	}
	return a.Clone(), nil
}

// GetAccount returns a read-only snapshot of the account, closed or not.
// Closed accounts remain readable for statements.
func (l *Ledger) GetAccount(ctx context.Context, username string) (*Account, error) {
	table, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	a, ok := table[Normalize(username)]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return a.Clone(), nil
}

// Deposit credits amount to the account and records a deposit transaction.
func (l *Ledger) Deposit(ctx context.Context, username string, amount decimal.Decimal) (*Account, error) {
	if err := checkAmount(amount, l.cfg.MaxDepositAmount); err != nil {
		return nil, err
	}

	table, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	a, err := activeAccount(table, username)
	if err != nil {
		return nil, err
	}

	a.Balance = a.Balance.Add(amount)
	l.appendTx(a, KindDeposit, amount, "Cash deposit", "", l.now())

	if err := l.store.Save(ctx, table); err != nil {
		return nil, err
	}
	l.log.Info(ctx, "deposit", "username", a.Username, "amount", amount.String())
	return a.Clone(), nil
}

// Withdraw debits amount from the account and records a withdrawal
// transaction. The balance never goes negative.
func (l *Ledger) Withdraw(ctx context.Context, username string, amount decimal.Decimal) (*Account, error) {
	if err := checkAmount(amount, l.cfg.MaxWithdrawalAmount); err != nil {
		return nil, err
	}

	table, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	a, err := activeAccount(table, username)
	if err != nil {
		return nil, err
	}
	if a.Balance.LessThan(amount) {
		return nil, ErrInsufficientFunds
	}

	a.Balance = a.Balance.Sub(amount)
	l.appendTx(a, KindWithdrawal, amount, "Cash withdrawal", "", l.now())

	if err := l.store.Save(ctx, table); err != nil {
		return nil, err
	}
	l.log.Info(ctx, "withdrawal", "username", a.Username, "amount", amount.String())
	return a.Clone(), nil
}

// Transfer moves amount from sender to recipient. Both legs share one
// timestamp and are committed in a single table save, so the two-sided
// transaction is never observable half-applied. Returns a snapshot of the
// sender's account.
func (l *Ledger) Transfer(ctx context.Context, sender, recipient string, amount decimal.Decimal, description string) (*Account, error) {
	sender = Normalize(sender)
	recipient = Normalize(recipient)

	if sender == recipient {
		return nil, ErrSameAccount
	}
	if err := checkAmount(amount, l.cfg.MaxTransferAmount); err != nil {
		return nil, err
	}

	table, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	src, err := activeAccount(table, sender)
	if err != nil {
		return nil, err
	}
	dst, err := activeAccount(table, recipient)
	if err != nil {
		return nil, err
	}
	if src.Balance.LessThan(amount) {
		return nil, ErrInsufficientFunds
	}

	if description == "" {
		description = "Transfer to " + dst.Name
	}

	ts := l.now()
	src.Balance = src.Balance.Sub(amount)
	dst.Balance = dst.Balance.Add(amount)

	l.appendTx(src, KindTransferOut, amount, description+" (to "+dst.Name+")", dst.Username, ts)
	l.appendTx(dst, KindTransferIn, amount, description+" (from "+src.Name+")", src.Username, ts)

	if err := l.store.Save(ctx, table); err != nil {
		return nil, err
	}
	l.log.Info(ctx, "transfer",
		"sender", src.Username, "recipient", dst.Username, "amount", amount.String())
	return src.Clone(), nil
}

// ChangePassword replaces the stored hash after verifying the old password.
func (l *Ledger) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	table, err := l.load(ctx)
	if err != nil {
		return err
	}
	a, ok := table[Normalize(username)]
	if !ok {
		return ErrAccountNotFound
	}
	if !cryptox.VerifyPassword([]byte(oldPassword), a.PasswordHash) {
		return ErrAuthenticationFailed
	}

	a.PasswordHash = cryptox.HashPassword([]byte(newPassword))

	if err := l.store.Save(ctx, table); err != nil {
		return err
	}
	l.log.Info(ctx, "password changed", "username", a.Username)
	return nil
}

// CloseAccount permanently marks the account closed after verifying the
// password. The balance is retained, not zeroed; a closure transaction with
// amount 0 ends the history. Closed accounts reject all further mutations
// but remain readable.
func (l *Ledger) CloseAccount(ctx context.Context, username, password string) error {
	table, err := l.load(ctx)
	if err != nil {
		return err
	}
	a, ok := table[Normalize(username)]
	if !ok {
		return ErrAccountNotFound
	}
	if a.Closed() {
		return ErrAccountClosed
	}
	if !cryptox.VerifyPassword([]byte(password), a.PasswordHash) {
		return ErrAuthenticationFailed
	}

	ts := l.now()
	a.Status = StatusClosed
	a.ClosedAt = &ts
	l.appendTx(a, KindAccountClosure, decimal.Zero, "Account closed by user", "", ts)

	if err := l.store.Save(ctx, table); err != nil {
		return err
	}
	l.log.Info(ctx, "account closed", "username", a.Username)
	return nil
}

// --- helpers below ---

func (l *Ledger) load(ctx context.Context) (Table, error) {
	table, _, err := l.store.Load(ctx)
	return table, err
}

func (l *Ledger) appendTx(a *Account, kind TxKind, amount decimal.Decimal, description, counterparty string, ts time.Time) {
	a.Transactions = append(a.Transactions, Transaction{
		ID:           l.newID(),
		Kind:         kind,
		Amount:       amount,
		Description:  description,
		Counterparty: counterparty,
		Timestamp:    ts,
		BalanceAfter: a.Balance,
	})
}

func checkAmount(amount, limit decimal.Decimal) error {
	if !amount.IsPositive() || amount.GreaterThan(limit) {
		return ErrInvalidAmount
	}
	return nil
}

func activeAccount(table Table, username string) (*Account, error) {
	a, ok := table[Normalize(username)]
	if !ok {
		return nil, ErrAccountNotFound
	}
	if a.Closed() {
		return nil, ErrAccountClosed
	}
	return a, nil
}
