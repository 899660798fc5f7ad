package config

import (
	"flag"
	"os"

	"github.com/avolkovs/securebank/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   data directory (e.g., "data")
//	-f string   ledger file name (e.g., "users.json")
//	-n int      number of transactions shown by the history view
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Money limits
// are deliberately not exposed as flags; they can be set in the JSON file.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-f", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DataDir, "d", config.DataDir, "data directory")
	fs.StringVar(&config.LedgerFile, "f", config.LedgerFile, "ledger file name")
	fs.IntVar(&config.HistoryLimit, "n", config.HistoryLimit, "transaction history display limit")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
