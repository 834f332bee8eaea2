package money

import (
	"errors"
	"strconv"
	"strings"
)

// Amounts are Vietnamese dong. VND has no minor unit, so an amount is a
// whole number of dong stored as int64.

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrFractionalDong = errors.New("amount must be a whole number of dong")
)

func ParseVND(input string) (int64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, ErrInvalidAmount
	}
	sign := int64(1)
	switch trimmed[0] {
	case '-':
		sign = -1
		trimmed = trimmed[1:]
	case '+':
		trimmed = trimmed[1:]
	}
	if strings.Contains(trimmed, ".") || strings.Contains(trimmed, ",") {
		return 0, ErrFractionalDong
	}
	if !isDigits(trimmed) {
		return 0, ErrInvalidAmount
	}
	value, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return sign * value, nil
}

func FormatVND(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)
	formatted := strings.Join(groups, ".")
	if negative {
		return "-" + formatted
	}
	return formatted
}

func isDigits(input string) bool {
	if input == "" {
		return false
	}
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
