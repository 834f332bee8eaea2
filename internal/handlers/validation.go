package handlers

import (
	"errors"

	"htxagri/internal/money"

	"github.com/shopspring/decimal"
)

var (
	errInvalidAmount   = errors.New("invalid amount")
	errInvalidQuantity = errors.New("invalid quantity")
	errInvalidPrice    = errors.New("invalid price")
)

func parseAmountVND(raw string) (int64, error) {
	amount, err := money.ParseVND(raw)
	if err != nil || amount <= 0 {
		return 0, errInvalidAmount
	}
	return amount, nil
}

func validateQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return errInvalidQuantity
	}
	if quantity.Exponent() < -3 {
		return errInvalidQuantity
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return errInvalidPrice
	}
	if price.Exponent() < -2 {
		return errInvalidPrice
	}
	return nil
}
