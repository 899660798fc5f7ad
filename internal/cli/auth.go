package cli

import (
	"context"
	"fmt"

	"github.com/avolkovs/securebank/internal/common"
	"github.com/avolkovs/securebank/internal/ledger"
)

// Login authenticates a user and establishes the session.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword("Enter password: ", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	acct, err := a.ledger.Authenticate(ctx, username, string(password))
	if err != nil {
		a.printErr(ctx, err)
		return err
	}

	a.session = &Session{Username: acct.Username, Name: acct.Name}
	fmt.Fprintf(a.out, "Welcome back, %s!\n", acct.Name)
	fmt.Fprintf(a.out, "Current balance: $%s\n", acct.Balance.StringFixed(2))
	return nil
}

// Signup collects and validates registration data and creates the account.
func (a *App) Signup(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Choose a username (3+ chars: a-z, 0-9, _)", a.out)
	if err != nil {
		return err
	}
	username = ledger.Normalize(username)
	if err := validateUsername(username); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	name, err := GetSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	password, err := GetPassword("Create password (6+ chars, letters + numbers): ", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	if err := validatePassword(password); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	confirm, err := GetPassword("Confirm password: ", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)
	if string(password) != string(confirm) {
		fmt.Fprintln(a.out, "Passwords don't match.")
		return fmt.Errorf("password mismatch")
	}

	opening, err := GetAmount(a.reader, fmt.Sprintf("Initial deposit amount ($%s minimum)", a.cfg.MinOpeningDeposit.StringFixed(2)), a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	acct, err := a.ledger.CreateAccount(ctx, username, name, string(password), opening)
	if err != nil {
		a.printErr(ctx, err)
		return err
	}

	fmt.Fprintf(a.out, "Account created successfully! Welcome to Secure Bank, %s!\n", acct.Name)
	fmt.Fprintf(a.out, "Your initial balance: $%s\n", acct.Balance.StringFixed(2))
	return nil
}

// Logout drops the session.
func (a *App) Logout(ctx context.Context) error {
	if a.session != nil {
		fmt.Fprintf(a.out, "Goodbye, %s!\n", a.session.Name)
	}
	a.session = nil
	return nil
}
