package config

import (
	"encoding/json"
	"os"

	"github.com/shopspring/decimal"

	"github.com/avolkovs/securebank/internal/flagx"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. Money fields use decimal.Decimal, which accepts both JSON
// numbers and quoted strings such as "10000.00".
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files; its fields are copied into the runtime Config. Pointer fields
// distinguish "absent" from "zero" so a partial file only overrides what it
// names.
type JsonConfig struct {
	DataDir             *string          `json:"data_dir"`
	LedgerFile          *string          `json:"ledger_file"`
	MaxDepositAmount    *decimal.Decimal `json:"max_deposit_amount"`
	MaxWithdrawalAmount *decimal.Decimal `json:"max_withdrawal_amount"`
	MaxTransferAmount   *decimal.Decimal `json:"max_transfer_amount"`
	MinOpeningDeposit   *decimal.Decimal `json:"min_opening_deposit"`
	HistoryLimit        *int             `json:"history_limit"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The JSON file path is taken from the -c or -config command-line flags.
// If neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics; a misconfigured bank should not
// start.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.DataDir != nil {
		config.DataDir = *c.DataDir
	}
	if c.LedgerFile != nil {
		config.LedgerFile = *c.LedgerFile
	}
	if c.MaxDepositAmount != nil {
		config.MaxDepositAmount = *c.MaxDepositAmount
	}
	if c.MaxWithdrawalAmount != nil {
		config.MaxWithdrawalAmount = *c.MaxWithdrawalAmount
	}
	if c.MaxTransferAmount != nil {
		config.MaxTransferAmount = *c.MaxTransferAmount
	}
	if c.MinOpeningDeposit != nil {
		config.MinOpeningDeposit = *c.MinOpeningDeposit
	}
	if c.HistoryLimit != nil {
		config.HistoryLimit = *c.HistoryLimit
	}
}
