package ledger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkovs/securebank/internal/logging"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), "users.json", discardLogger())
	require.NoError(t, err)
	return store
}

func sampleTable(t *testing.T) Table {
	t.Helper()
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	ts := time.Date(2025, 3, 2, 12, 30, 0, 0, time.UTC)

	alice := &Account{
		Username:     "alice",
		Name:         "Alice Smith",
		PasswordHash: "aGFzaA==",
		Balance:      decimal.RequireFromString("70.00"),
		Status:       StatusActive,
		CreatedAt:    created,
		Transactions: []Transaction{
			{
				ID:           "tx-1",
				Kind:         KindDeposit,
				Amount:       decimal.RequireFromString("100.00"),
				Description:  "Initial deposit",
				Timestamp:    created,
				BalanceAfter: decimal.RequireFromString("100.00"),
			},
			{
				ID:           "tx-2",
				Kind:         KindWithdrawal,
				Amount:       decimal.RequireFromString("30.00"),
				Description:  "Cash withdrawal",
				Timestamp:    ts,
				BalanceAfter: decimal.RequireFromString("70.00"),
			},
		},
	}
	return Table{"alice": alice}
}

func TestLoad_MissingFileInitializesEmptyStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	table, recovered, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, recovered)
	assert.Empty(t, table)

	// the empty table must be persisted, so a fresh install is self-healing
	_, err = os.Stat(store.Path())
	require.NoError(t, err)
}

func TestLoad_CorruptedFileIsQuarantined(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o660))

	table, recovered, err := store.Load(ctx)
	require.NoError(t, err, "load must not fail outright on a bad file")
	assert.True(t, recovered)
	assert.Empty(t, table)

	// the bad file is kept as evidence
	backup, err := os.ReadFile(store.Path() + corruptedSuffix)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(backup))

	// a subsequent save works normally
	require.NoError(t, store.Save(ctx, sampleTable(t)))
	reloaded, recovered, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, recovered)
	assert.Len(t, reloaded, 1)
}

func TestLoad_QuarantineFallsBackToCopy(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o660))

	// a directory squatting on the backup path makes both the rename and
	// the copy fail
	backupPath := store.Path() + corruptedSuffix
	require.NoError(t, os.MkdirAll(filepath.Join(backupPath, "occupied"), 0o770))

	table, recovered, err := store.Load(ctx)
	require.ErrorIs(t, err, ErrStoreCorrupted)
	assert.True(t, recovered)
	assert.Nil(t, table)

	// the bad file survives untouched when it cannot be set aside
	data, readErr := os.ReadFile(store.Path())
	require.NoError(t, readErr)
	assert.Equal(t, "{not json", string(data))
}

func TestLoad_EmptyFileIsQuarantined(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(store.Path(), []byte("  \n"), 0o660))

	table, recovered, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, recovered)
	assert.Empty(t, table)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := sampleTable(t)
	require.NoError(t, store.Save(ctx, want))

	got, recovered, err := store.Load(ctx)
	require.NoError(t, err)
	require.False(t, recovered)
	require.Len(t, got, 1)

	a := got["alice"]
	require.NotNil(t, a)
	assert.Equal(t, "alice", a.Username)
	assert.Equal(t, "Alice Smith", a.Name)
	assert.Equal(t, StatusActive, a.Status)
	assert.True(t, a.Balance.Equal(decimal.RequireFromString("70.00")))

	// transaction order and values survive the round trip
	require.Len(t, a.Transactions, 2)
	assert.Equal(t, KindDeposit, a.Transactions[0].Kind)
	assert.Equal(t, KindWithdrawal, a.Transactions[1].Kind)
	assert.True(t, a.Transactions[1].Amount.Equal(decimal.RequireFromString("30.00")))
	assert.True(t, a.Transactions[1].BalanceAfter.Equal(a.Balance))

	// save(load()) keeps the document stable
	require.NoError(t, store.Save(ctx, got))
	again, _, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestSave_RejectsNegativeBalance(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleTable(t)))
	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	bad := sampleTable(t)
	bad["alice"].Balance = decimal.RequireFromString("-1")

	err = store.Save(ctx, bad)
	require.ErrorIs(t, err, ErrSerialization)

	// existing on-disk file left untouched
	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSave_RejectsBalanceHistoryMismatch(t *testing.T) {
	store := newTestStore(t)

	bad := sampleTable(t)
	bad["alice"].Balance = decimal.RequireFromString("999.99")

	err := store.Save(context.Background(), bad)
	require.ErrorIs(t, err, ErrSerialization)
}

func TestSave_RejectsUnknownTransactionKind(t *testing.T) {
	store := newTestStore(t)

	bad := sampleTable(t)
	bad["alice"].Transactions[0].Kind = TxKind("refund")

	err := store.Save(context.Background(), bad)
	require.ErrorIs(t, err, ErrSerialization)
}

func TestSave_LeavesNoTempFile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(context.Background(), sampleTable(t)))

	_, err := os.Stat(store.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file must not survive a save")
}

func TestBackup_CopiesLiveStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleTable(t)))

	path, err := store.Backup(ctx)
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(path), "users_backup_")

	live, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	copied, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, live, copied)
}

func TestBackup_FailsWithoutStore(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Backup(context.Background())
	require.ErrorIs(t, err, ErrStoreIO)
}
