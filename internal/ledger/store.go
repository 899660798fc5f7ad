package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avolkovs/securebank/internal/filex"
	"github.com/avolkovs/securebank/internal/logging"
)

// corruptedSuffix marks a quarantined ledger file.
const corruptedSuffix = ".corrupted.backup"

// Store persists the whole account table as one JSON document.
//
// Save is crash-atomic: the document is written to a temporary sibling first
// and then renamed over the live file, so a crash mid-write never leaves the
// store half-written. The store assumes a single writer process; it does not
// provide mutual exclusion across processes, and two concurrent writers can
// silently lose the earlier update.
type Store struct {
	path string
	log  logging.Logger
}

// NewStore creates the data directory if needed and returns a store for
// file inside dir.
func NewStore(dir, file string, log logging.Logger) (*Store, error) {
	if err := filex.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreIO, err)
	}
	return &Store{path: filepath.Join(dir, file), log: log}, nil
}

// Path returns the location of the live ledger file.
func (s *Store) Path() string { return s.path }

// Load reads the backing file and returns the full table.
//
// A missing file is self-healing: an empty table is persisted and returned.
// An empty or unparsable file is renamed aside with a corruption suffix, an
// empty table is persisted, and recovered=true signals the quarantine to the
// caller. Load fails on a bad file only when the file cannot be set aside at
// all; that failure carries ErrStoreCorrupted and leaves the file untouched.
func (s *Store) Load(ctx context.Context) (Table, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			table := Table{}
			if err := s.Save(ctx, table); err != nil {
				return nil, false, err
			}
			s.log.Info(ctx, "initialized empty ledger", "path", s.path)
			return table, false, nil
		}
		return nil, false, fmt.Errorf("%w: reading %s: %v", ErrStoreIO, s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s.quarantine(ctx, errors.New("file is empty"))
	}

	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return s.quarantine(ctx, err)
	}

	// The map key is authoritative; heal records missing the username field.
	for username, a := range table {
		if a != nil && a.Username == "" {
			a.Username = username
		}
	}

	return table, false, nil
}

// quarantine moves the bad file aside and resets the store to an empty table.
func (s *Store) quarantine(ctx context.Context, cause error) (Table, bool, error) {
	backup := s.path + corruptedSuffix

	s.log.Warn(ctx, "ledger file corrupted, quarantining",
		"path", s.path, "backup", backup, "cause", cause.Error())

	if err := os.Rename(s.path, backup); err != nil {
		// Fall back to copying so the evidence survives the reset below.
		if copyErr := filex.CopyFile(s.path, backup); copyErr != nil {
			s.log.Error(ctx, "could not quarantine corrupted ledger",
				"rename_error", err.Error(), "copy_error", copyErr.Error())
			return nil, true, fmt.Errorf("%w: quarantining %s: %v", ErrStoreCorrupted, s.path, copyErr)
		}
	}

	table := Table{}
	if err := s.Save(ctx, table); err != nil {
		return nil, true, err
	}
	return table, true, nil
}

// Save serializes the table and atomically replaces the live file.
//
// Invariants are checked before anything touches the disk; a table that
// fails validation or cannot be serialized leaves the on-disk file exactly
// as it was. On an I/O failure during the temp-write phase the temporary
// file is removed and the live file is untouched.
func (s *Store) Save(ctx context.Context, table Table) error {
	if err := table.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o660); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: writing %s: %v", ErrStoreIO, tmp, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: replacing %s: %v", ErrStoreIO, s.path, err)
	}

	return nil
}

// Backup copies the current store to a timestamped sibling file without
// disturbing the live store, and returns the backup path.
func (s *Store) Backup(ctx context.Context) (string, error) {
	if _, err := os.Stat(s.path); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreIO, err)
	}

	base := filepath.Base(s.path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	stamp := time.Now().Format("20060102_150405")
	dst := filepath.Join(filepath.Dir(s.path), fmt.Sprintf("%s_backup_%s.json", name, stamp))

	if err := filex.CopyFile(s.path, dst); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreIO, err)
	}

	s.log.Info(ctx, "ledger backup created", "path", dst)
	return dst, nil
}
