package cli

import (
	"errors"
	"regexp"
)

var (
	usernameRe  = regexp.MustCompile(`^[a-z0-9_]+$`)
	nameRe      = regexp.MustCompile(`^[a-zA-Z ]+$`)
	hasLetterRe = regexp.MustCompile(`[A-Za-z]`)
	hasDigitRe  = regexp.MustCompile(`\d`)
)

// validateUsername checks the signup rules for usernames: at least three
// characters, lowercase letters, digits and underscores only. Input is
// expected to be normalized (lowercased) already.
func validateUsername(username string) error {
	if len(username) < 3 {
		return errors.New("username must be at least 3 characters long")
	}
	if !usernameRe.MatchString(username) {
		return errors.New("username can only contain letters, numbers, and underscores")
	}
	return nil
}

func validateName(name string) error {
	if len(name) < 2 {
		return errors.New("name must be at least 2 characters long")
	}
	if !nameRe.MatchString(name) {
		return errors.New("name can only contain letters and spaces")
	}
	return nil
}

// validatePassword enforces the minimum strength rules: six or more
// characters with at least one letter and one digit.
func validatePassword(password []byte) error {
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters long")
	}
	if !hasLetterRe.Match(password) {
		return errors.New("password must contain at least one letter")
	}
	if !hasDigitRe.Match(password) {
		return errors.New("password must contain at least one number")
	}
	return nil
}
