package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/avolkovs/securebank/internal/common"
	"github.com/avolkovs/securebank/internal/ledger"
)

// Balance shows the current balance of the logged-in account.
func (a *App) Balance(ctx context.Context) error {
	acct, err := a.ledger.GetAccount(ctx, a.session.Username)
	if err != nil {
		a.printErr(ctx, err)
		return err
	}
	fmt.Fprintf(a.out, "Current balance: $%s\n", acct.Balance.StringFixed(2))
	return nil
}

// Deposit prompts for an amount and credits the account.
func (a *App) Deposit(ctx context.Context) error {
	amount, err := GetAmount(a.reader, "Enter deposit amount ($)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	acct, err := a.ledger.Deposit(ctx, a.session.Username, amount)
	if err != nil {
		a.printErr(ctx, err)
		return err
	}
	fmt.Fprintf(a.out, "Successfully deposited $%s\n", amount.StringFixed(2))
	fmt.Fprintf(a.out, "New balance: $%s\n", acct.Balance.StringFixed(2))
	return nil
}

// Withdraw prompts for an amount and debits the account.
func (a *App) Withdraw(ctx context.Context) error {
	amount, err := GetAmount(a.reader, "Enter withdrawal amount ($)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	acct, err := a.ledger.Withdraw(ctx, a.session.Username, amount)
	if err != nil {
		a.printErr(ctx, err)
		return err
	}
	fmt.Fprintf(a.out, "Successfully withdrew $%s\n", amount.StringFixed(2))
	fmt.Fprintf(a.out, "New balance: $%s\n", acct.Balance.StringFixed(2))
	return nil
}

// Transfer prompts for recipient, amount and description, confirms, and
// moves the money.
func (a *App) Transfer(ctx context.Context) error {
	recipient, err := GetSimpleText(a.reader, "Enter recipient's username", a.out)
	if err != nil {
		return err
	}

	amount, err := GetAmount(a.reader, "Enter transfer amount ($)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	description, err := GetSimpleText(a.reader, "Transfer description (optional)", a.out)
	if err != nil {
		return err
	}

	ok, err := GetConfirmation(a.reader,
		fmt.Sprintf("Transfer $%s to %s?", amount.StringFixed(2), ledger.Normalize(recipient)), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Transfer cancelled.")
		return nil
	}

	acct, err := a.ledger.Transfer(ctx, a.session.Username, recipient, amount, description)
	if err != nil {
		a.printErr(ctx, err)
		return err
	}
	fmt.Fprintln(a.out, "Transfer completed successfully!")
	fmt.Fprintf(a.out, "Your new balance: $%s\n", acct.Balance.StringFixed(2))
	return nil
}

// History shows the most recent transactions.
func (a *App) History(ctx context.Context) error {
	acct, err := a.ledger.GetAccount(ctx, a.session.Username)
	if err != nil {
		a.printErr(ctx, err)
		return err
	}

	recent := ledger.RecentHistory(acct, a.cfg.HistoryLimit)
	if len(recent) == 0 {
		fmt.Fprintln(a.out, "No transactions found.")
		return nil
	}

	fmt.Fprintf(a.out, "TRANSACTION HISTORY - %s\n", acct.Name)
	rule := strings.Repeat("=", 80)
	fmt.Fprintln(a.out, rule)
	for i, tx := range recent {
		fmt.Fprint(a.out, ledger.FormatTransaction(i+1, tx))
		fmt.Fprintln(a.out, strings.Repeat("-", 80))
	}
	if extra := len(acct.Transactions) - len(recent); extra > 0 {
		fmt.Fprintf(a.out, "... and %d more transactions. Generate an account statement for the full history.\n", extra)
	}
	fmt.Fprintln(a.out, rule)
	return nil
}

// Statement renders the full statement and optionally exports it to a file.
func (a *App) Statement(ctx context.Context) error {
	acct, err := a.ledger.GetAccount(ctx, a.session.Username)
	if err != nil {
		a.printErr(ctx, err)
		return err
	}

	statement := ledger.FormatStatement(acct, time.Now())
	fmt.Fprintln(a.out, statement)

	save, err := GetConfirmation(a.reader, "Save statement to file?", a.out)
	if err != nil || !save {
		return err
	}

	filename := fmt.Sprintf("statement_%s_%s.txt", acct.Username, time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filename, []byte(statement), 0o660); err != nil {
		fmt.Fprintln(a.out, "Error saving statement:", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "Statement saved as %s\n", filename)
	return nil
}

// ChangePassword verifies the current password and replaces it.
func (a *App) ChangePassword(ctx context.Context) error {
	current, err := GetPassword("Enter current password: ", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	newPass, err := GetPassword("Enter new password (6+ chars, letters + numbers): ", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPass)
	if err := validatePassword(newPass); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	confirm, err := GetPassword("Confirm new password: ", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)
	if string(newPass) != string(confirm) {
		fmt.Fprintln(a.out, "Passwords don't match.")
		return fmt.Errorf("password mismatch")
	}

	if err := a.ledger.ChangePassword(ctx, a.session.Username, string(current), string(newPass)); err != nil {
		a.printErr(ctx, err)
		return err
	}
	fmt.Fprintln(a.out, "Password changed successfully!")
	return nil
}

// CloseAccount permanently closes the logged-in account after an explicit
// confirmation and a password check, then ends the session.
func (a *App) CloseAccount(ctx context.Context) error {
	fmt.Fprintln(a.out, "WARNING: This action cannot be undone!")
	confirm, err := GetSimpleText(a.reader, "Type 'CLOSE' to confirm account closure", a.out)
	if err != nil {
		return err
	}
	if confirm != "CLOSE" {
		fmt.Fprintln(a.out, "Account closure cancelled.")
		return nil
	}

	password, err := GetPassword("Enter your password to confirm: ", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.ledger.CloseAccount(ctx, a.session.Username, string(password)); err != nil {
		a.printErr(ctx, err)
		return err
	}

	fmt.Fprintln(a.out, "Account closed successfully. Thank you for banking with us!")
	a.session = nil
	return nil
}

// Backup copies the live ledger file to a timestamped sibling.
func (a *App) Backup(ctx context.Context) error {
	path, err := a.store.Backup(ctx)
	if err != nil {
		a.printErr(ctx, err)
		return err
	}
	fmt.Fprintf(a.out, "Backup created: %s\n", path)
	return nil
}
