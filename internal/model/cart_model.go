package model

import (
	"errors"
	"strings"

	"github.com/spf13/cast"
)

// Defaults applied when a line is added without an explicit selection.
const (
	DefaultSize     = "L"
	DefaultColor    = "Black"
	DefaultQuantity = 1
)

// CartLine is one purchasable configuration in the cart. Two lines are the
// same line iff Key() matches.
type CartLine struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Rating   float64 `json:"rating"`
	Size     string  `json:"size"`
	Color    string  `json:"color"`
	Quantity int     `json:"quantity"`
}

// LineKey identifies a cart line.
type LineKey struct {
	ID    string
	Size  string
	Color string
}

func (l CartLine) Key() LineKey {
	return LineKey{ID: l.ID, Size: l.Size, Color: l.Color}
}

// Subtotal is price times quantity.
func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// WishlistEntry is a saved product; one entry per product id.
type WishlistEntry struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Image  string  `json:"image"`
	Rating float64 `json:"rating"`
}

// EntryFromProduct copies the wishlist fields of p.
func EntryFromProduct(p Product) WishlistEntry {
	return WishlistEntry{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image, Rating: p.Rating}
}

// Summary is the derived totals block shown beside the cart and at checkout.
type Summary struct {
	Subtotal             float64 `json:"subtotal"`
	Delivery             float64 `json:"delivery"`
	Total                float64 `json:"total"`
	FreeShipping         bool    `json:"free_shipping"`
	FreeShippingProgress float64 `json:"free_shipping_progress"`
	RemainingForFree     float64 `json:"remaining_for_free"`
}

// Pricing holds the delivery rules.
type Pricing struct {
	FreeShippingThreshold float64
	FlatDeliveryFee       float64
}

// DefaultPricing is free shipping from 200 and a flat 20 below it.
func DefaultPricing() Pricing {
	return Pricing{FreeShippingThreshold: 200, FlatDeliveryFee: 20}
}

// ErrMalformedLine marks a persisted cart line that must be dropped.
var ErrMalformedLine = errors.New("malformed cart line")

// ParseCartLine validates a persisted cart record. Lines without id, name or
// a numeric price are rejected and never repaired, as are lines holding a
// quantity below 1. Rating and quantity are coerced; a missing quantity
// becomes 1.
func ParseCartLine(raw map[string]any) (CartLine, error) {
	line, err := parseLineFields(raw)
	if err != nil {
		return CartLine{}, err
	}
	if q, err := cast.ToIntE(raw["quantity"]); err == nil && raw["quantity"] != nil {
		if q < 1 {
			return CartLine{}, ErrMalformedLine
		}
		line.Quantity = q
	}
	return line, nil
}

// ParseWishlistEntry validates a persisted wishlist record. It needs the
// same id, name and price as a cart line; quantity is not part of an entry.
func ParseWishlistEntry(raw map[string]any) (WishlistEntry, error) {
	line, err := parseLineFields(raw)
	if err != nil {
		return WishlistEntry{}, err
	}
	return WishlistEntry{ID: line.ID, Name: line.Name, Price: line.Price, Image: line.Image, Rating: line.Rating}, nil
}

func parseLineFields(raw map[string]any) (CartLine, error) {
	if raw == nil {
		return CartLine{}, ErrMalformedLine
	}
	id, _ := raw["id"].(string)
	name, _ := raw["name"].(string)
	price, numeric := raw["price"].(float64)
	if strings.TrimSpace(id) == "" || strings.TrimSpace(name) == "" || !numeric {
		return CartLine{}, ErrMalformedLine
	}
	return CartLine{
		ID:       id,
		Name:     name,
		Price:    price,
		Image:    cast.ToString(raw["image"]),
		Rating:   cast.ToFloat64(raw["rating"]),
		Size:     cast.ToString(raw["size"]),
		Color:    cast.ToString(raw["color"]),
		Quantity: DefaultQuantity,
	}, nil
}
