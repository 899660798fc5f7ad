// Package config handles configuration for the banking application,
// including defaults, JSON overlay, and command-line flags.
package config

import "github.com/shopspring/decimal"

// Config holds runtime settings for the console bank.
//
// Fields:
//   - DataDir: directory holding the ledger file and its backups.
//   - LedgerFile: name of the ledger file inside DataDir.
//   - MaxDepositAmount / MaxWithdrawalAmount / MaxTransferAmount:
//     per-transaction ceilings.
//   - MinOpeningDeposit: smallest initial deposit accepted at signup.
//   - HistoryLimit: number of transactions shown by the history view.
type Config struct {
	DataDir             string
	LedgerFile          string
	MaxDepositAmount    decimal.Decimal
	MaxWithdrawalAmount decimal.Decimal
	MaxTransferAmount   decimal.Decimal
	MinOpeningDeposit   decimal.Decimal
	HistoryLimit        int
}

// LoadDefaults populates Config with the stock limits.
func (c *Config) LoadDefaults() {
	c.DataDir = "data"
	c.LedgerFile = "users.json"
	c.MaxDepositAmount = decimal.NewFromInt(10_000)
	c.MaxWithdrawalAmount = decimal.NewFromInt(5_000)
	c.MaxTransferAmount = decimal.NewFromInt(10_000)
	c.MinOpeningDeposit = decimal.NewFromInt(10)
	c.HistoryLimit = 20
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
