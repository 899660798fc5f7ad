package ledger

import "errors"

// Domain and storage sentinel errors. Callers match them with errors.Is and
// render their own wording; the ledger layer never terminates the process.
var (
	// Account lookup / state errors.
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountClosed   = errors.New("account is closed")
	ErrAccountExists   = errors.New("account already exists")

	// Operation precondition errors.
	ErrSameAccount          = errors.New("sender and recipient are the same account")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrAuthenticationFailed = errors.New("authentication failed")

	// Storage errors. Ordinary corruption is recoverable and signalled by
	// Load's recovered flag; ErrStoreCorrupted is returned only when the bad
	// file cannot even be moved or copied aside, so resetting the store
	// would destroy it. The other two abort the enclosing operation with the
	// prior on-disk state preserved.
	ErrStoreCorrupted = errors.New("store corrupted")
	ErrStoreIO        = errors.New("store i/o failure")
	ErrSerialization  = errors.New("serialization failure")
)
