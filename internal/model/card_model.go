package model

import "strings"

// PaymentCard is a saved card. Only the last four digits are kept.
type PaymentCard struct {
	Number string `json:"number"`
	Last4  string `json:"last4"`
	Holder string `json:"holder"`
	Expiry string `json:"expiry"`
}

// CardInput is the raw add-card form.
type CardInput struct {
	Number string `json:"card_number"`
	Holder string `json:"card_holder"`
	Expiry string `json:"expiry"`
}

// ParseCard validates in and masks the number.
func ParseCard(in CardInput) (PaymentCard, error) {
	verr := &ValidationError{}
	digits := MobileDigits(in.Number)
	holder := strings.TrimSpace(in.Holder)
	expiry := strings.TrimSpace(in.Expiry)

	if len(digits) < 12 || len(digits) > 19 {
		verr.Add("card_number", "card number must have 12 to 19 digits")
	}
	if holder == "" {
		verr.Add("card_holder", "card holder is required")
	}
	if !expiryRegex.MatchString(expiry) {
		verr.Add("expiry", "expiry must be MM/YY")
	}
	if err := verr.Err(); err != nil {
		return PaymentCard{}, err
	}

	last4 := digits[len(digits)-4:]
	return PaymentCard{
		Number: "**** **** **** " + last4,
		Last4:  last4,
		Holder: holder,
		Expiry: expiry,
	}, nil
}
