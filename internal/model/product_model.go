package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cast"
)

// Product is a catalog entry. The engine never mutates it.
type Product struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Price    float64  `json:"price" yaml:"price"`
	Image    string   `json:"image" yaml:"image"`
	Rating   float64  `json:"rating" yaml:"rating"`
	Category string   `json:"category" yaml:"category"`
	Color    string   `json:"color" yaml:"color"`
	Sizes    []string `json:"sizes" yaml:"sizes"`
	Date     string   `json:"date,omitempty" yaml:"date,omitempty"`
}

// HasSize reports whether the product is offered in size.
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// ReleasedAt parses Date. A missing or unreadable date yields the zero time,
// which orders after every real date when sorting newest first.
func (p Product) ReleasedAt() time.Time {
	if strings.TrimSpace(p.Date) == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(p.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ParseProduct builds a Product from a loosely typed catalog row. Rows
// without id, name, a positive price or an image are rejected.
func ParseProduct(raw map[string]any) (Product, error) {
	if raw == nil {
		return Product{}, errors.New("product row is empty")
	}
	p := Product{
		ID:       strings.TrimSpace(cast.ToString(raw["id"])),
		Name:     strings.TrimSpace(cast.ToString(raw["name"])),
		Image:    cast.ToString(raw["image"]),
		Category: cast.ToString(raw["category"]),
		Color:    cast.ToString(raw["color"]),
		Date:     cast.ToString(raw["date"]),
	}
	if v, ok := raw["date"].(time.Time); ok {
		p.Date = v.Format("2006-01-02")
	}

	price, err := cast.ToFloat64E(raw["price"])
	if err != nil {
		return Product{}, fmt.Errorf("product %q: price: %w", p.ID, err)
	}
	p.Price = price
	p.Rating = cast.ToFloat64(raw["rating"])
	p.Sizes = parseSizes(raw["sizes"])

	switch {
	case p.ID == "":
		return Product{}, errors.New("product id is required")
	case p.Name == "":
		return Product{}, fmt.Errorf("product %q: name is required", p.ID)
	case p.Price <= 0:
		return Product{}, fmt.Errorf("product %q: price must be > 0", p.ID)
	case p.Image == "":
		return Product{}, fmt.Errorf("product %q: image is required", p.ID)
	case p.Rating < 0 || p.Rating > 5:
		return Product{}, fmt.Errorf("product %q: rating must be within 0..5", p.ID)
	}
	return p, nil
}

// sizes arrive either as a list or as "S,M,L"
func parseSizes(v any) []string {
	var parts []string
	if s, ok := v.(string); ok {
		parts = strings.Split(s, ",")
	} else {
		parts = cast.ToStringSlice(v)
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
