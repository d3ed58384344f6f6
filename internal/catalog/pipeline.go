// Package catalog projects the product catalog into one visible page:
// filter, then sort, then paginate.
package catalog

import (
	"math"
	"sort"

	"DripmenStore/internal/model"
)

// All is the wildcard value for the category, color and size facets.
const All = "all"

// DefaultItemsPerPage is the page size used when none is configured.
const DefaultItemsPerPage = 6

// Sort keys. Anything unrecognised sorts like SortPopular.
const (
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortNewest    = "newest"
	SortPopular   = "popular"
)

// FilterState is the transient browsing state. It is never persisted.
type FilterState struct {
	Category     string  `json:"category"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
	Color        string  `json:"color"`
	Size         string  `json:"size"`
	Sort         string  `json:"sort"`
	CurrentPage  int     `json:"current_page"`
	ItemsPerPage int     `json:"items_per_page"`
}

// Page is one visible slice of the filtered, sorted catalog.
type Page struct {
	Items          []model.Product `json:"items"`
	CurrentPage    int             `json:"current_page"`
	TotalPages     int             `json:"total_pages"`
	TotalItems     int             `json:"total_items"`
	ItemsPerPage   int             `json:"items_per_page"`
	ShowPagination bool            `json:"show_pagination"`
	HasPrev        bool            `json:"has_prev"`
	HasNext        bool            `json:"has_next"`
}

// Matches reports whether p passes every facet of st. Price bounds are
// inclusive.
func Matches(p model.Product, st FilterState) bool {
	if st.Category != All && p.Category != st.Category {
		return false
	}
	if p.Price < st.MinPrice || p.Price > st.MaxPrice {
		return false
	}
	if st.Color != All && p.Color != st.Color {
		return false
	}
	if st.Size != All && !p.HasSize(st.Size) {
		return false
	}
	return true
}

// Filter keeps the products matching st, in their original order.
func Filter(products []model.Product, st FilterState) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, st) {
			out = append(out, p)
		}
	}
	return out
}

// Sort orders products in place by key. Equal elements keep their relative
// order.
func Sort(products []model.Product, key string) {
	var less func(a, b model.Product) bool
	switch key {
	case SortPriceLow:
		less = func(a, b model.Product) bool { return a.Price < b.Price }
	case SortPriceHigh:
		less = func(a, b model.Product) bool { return a.Price > b.Price }
	case SortNewest:
		less = func(a, b model.Product) bool { return a.ReleasedAt().After(b.ReleasedAt()) }
	default:
		less = func(a, b model.Product) bool { return a.Rating > b.Rating }
	}
	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}

// Paginate cuts the page st.CurrentPage out of products. The returned state
// has CurrentPage clamped into [1, totalPages].
func Paginate(products []model.Product, st FilterState) (Page, FilterState) {
	per := st.ItemsPerPage
	if per <= 0 {
		per = DefaultItemsPerPage
		st.ItemsPerPage = per
	}

	total := len(products)
	totalPages := int(math.Ceil(float64(total) / float64(per)))
	if st.CurrentPage > totalPages {
		st.CurrentPage = totalPages
	}
	if st.CurrentPage < 1 {
		st.CurrentPage = 1
	}

	start := (st.CurrentPage - 1) * per
	end := start + per
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	page := Page{
		Items:          append([]model.Product(nil), products[start:end]...),
		CurrentPage:    st.CurrentPage,
		TotalPages:     totalPages,
		TotalItems:     total,
		ItemsPerPage:   per,
		ShowPagination: total > per,
		HasPrev:        st.CurrentPage > 1,
		HasNext:        st.CurrentPage < totalPages,
	}
	return page, st
}

// Project runs the full filter → sort → paginate pass over the catalog.
func Project(products []model.Product, st FilterState) (Page, FilterState) {
	filtered := Filter(products, st)
	Sort(filtered, st.Sort)
	return Paginate(filtered, st)
}
