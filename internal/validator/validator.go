package validator

import (
	"errors"
	"regexp"
)

var (
	ErrInvalidEmail      = errors.New("invalid email")
	ErrInvalidUsername   = errors.New("invalid username")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrInvalidMemberCode = errors.New("invalid member code")
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")
)

var (
	emailRegex      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	usernameRegex   = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	memberCodeRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{1,19}$`)
	dateRegex       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrInvalidPassword
	}
	return nil
}

func ValidateMemberCode(code string) error {
	if !memberCodeRegex.MatchString(code) {
		return ErrInvalidMemberCode
	}
	return nil
}

func ValidateDate(date string) error {
	if !dateRegex.MatchString(date) {
		return ErrInvalidDate
	}
	return nil
}
