package model

import "strings"

// Address is an address-book entry; at most one entry is the default.
type Address struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	Street    string `json:"street"`
	City      string `json:"city"`
	Zip       string `json:"zip,omitempty"`
	IsDefault bool   `json:"is_default"`
}

// SameAs reports whether a and b would be listed as duplicates
// (same name and street).
func (a Address) SameAs(b Address) bool {
	return a.Name == b.Name && a.Street == b.Street
}

// AddressInput is the raw contact form.
type AddressInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
	Street string `json:"street"`
	City   string `json:"city"`
	Zip    string `json:"zip"`
}

// ParseAddress validates in. Name, street and city are required, the email
// must be local@domain.tld and the mobile must carry at least ten digits.
func ParseAddress(in AddressInput) (Address, error) {
	verr := &ValidationError{}
	addr := Address{
		Name:   strings.TrimSpace(in.Name),
		Email:  strings.TrimSpace(in.Email),
		Mobile: strings.TrimSpace(in.Mobile),
		Street: strings.TrimSpace(in.Street),
		City:   strings.TrimSpace(in.City),
		Zip:    strings.TrimSpace(in.Zip),
	}

	if addr.Name == "" {
		verr.Add("name", "name is required")
	}
	if !IsEmail(addr.Email) {
		verr.Add("email", "enter a valid email address")
	}
	if addr.Street == "" {
		verr.Add("street", "street is required")
	}
	if addr.City == "" {
		verr.Add("city", "city is required")
	}
	if len(MobileDigits(addr.Mobile)) < MinMobileDigits {
		verr.Add("mobile", "mobile must have at least 10 digits")
	}

	if err := verr.Err(); err != nil {
		return Address{}, err
	}
	return addr, nil
}

// Payment method codes accepted at checkout.
const (
	PaymentCOD    = "cod"
	PaymentWallet = "wallet"
	PaymentOnline = "online"
)

// PaymentLabel maps a checkout payment code to its display label.
func PaymentLabel(code string) string {
	switch code {
	case PaymentCOD, "":
		return "Cash on Delivery"
	case PaymentWallet:
		return "Wallet"
	default:
		return "Online Payment"
	}
}

// CheckoutInput is the submitted checkout form.
type CheckoutInput struct {
	AddressInput
	PaymentMethod string `json:"payment_method"`
	SaveInfo      bool   `json:"save_info"`
}

// ParseCheckoutForm validates the contact part of in and resolves the
// payment label. An empty payment method means cash on delivery.
func ParseCheckoutForm(in CheckoutInput) (Address, string, error) {
	addr, err := ParseAddress(in.AddressInput)
	if err != nil {
		return Address{}, "", err
	}
	return addr, PaymentLabel(in.PaymentMethod), nil
}
