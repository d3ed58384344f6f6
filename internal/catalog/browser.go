package catalog

import (
	"fmt"
	"math"

	"DripmenStore/internal/model"
)

// Facet names accepted by ApplyFilter.
const (
	FacetCategory = "category"
	FacetColor    = "color"
	FacetSize     = "size"
)

// Browser holds the filter state of one shopper over a fixed product set.
// Filter and sort changes go back to page 1; only page changes move the
// page. Every call re-runs the whole projection.
type Browser struct {
	products []model.Product
	defaults FilterState
	state    FilterState
}

// NewBrowser starts with every facet at All, sorted by popularity, and a
// price range spanning the whole product set.
func NewBrowser(products []model.Product, itemsPerPage int) *Browser {
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultItemsPerPage
	}
	lo, hi := PriceBounds(products)
	st := FilterState{
		Category:     All,
		MinPrice:     lo,
		MaxPrice:     hi,
		Color:        All,
		Size:         All,
		Sort:         SortPopular,
		CurrentPage:  1,
		ItemsPerPage: itemsPerPage,
	}
	return &Browser{products: products, defaults: st, state: st}
}

// PriceBounds returns floor(min price) and ceil(max price) of products.
func PriceBounds(products []model.Product) (float64, float64) {
	if len(products) == 0 {
		return 0, 0
	}
	lo, hi := products[0].Price, products[0].Price
	for _, p := range products[1:] {
		lo = math.Min(lo, p.Price)
		hi = math.Max(hi, p.Price)
	}
	return math.Floor(lo), math.Ceil(hi)
}

// State returns the current filter state.
func (b *Browser) State() FilterState {
	return b.state
}

// Current renders the page for the current state.
func (b *Browser) Current() Page {
	page, st := Project(b.products, b.state)
	b.state = st
	return page
}

// ApplyFilter sets one facet and returns to page 1.
func (b *Browser) ApplyFilter(facet, value string) (Page, error) {
	if value == "" {
		value = All
	}
	switch facet {
	case FacetCategory:
		b.state.Category = value
	case FacetColor:
		b.state.Color = value
	case FacetSize:
		b.state.Size = value
	default:
		return Page{}, fmt.Errorf("unknown filter facet %q", facet)
	}
	b.state.CurrentPage = 1
	return b.Current(), nil
}

// SetPriceRange sets the inclusive price bounds, swapping them when given
// in the wrong order, and returns to page 1.
func (b *Browser) SetPriceRange(min, max float64) Page {
	if min > max {
		min, max = max, min
	}
	b.state.MinPrice = min
	b.state.MaxPrice = max
	b.state.CurrentPage = 1
	return b.Current()
}

// ChangeSort sets the sort key and returns to page 1.
func (b *Browser) ChangeSort(key string) Page {
	b.state.Sort = key
	b.state.CurrentPage = 1
	return b.Current()
}

// ChangePage moves to page; out-of-range pages are clamped.
func (b *Browser) ChangePage(page int) Page {
	b.state.CurrentPage = page
	return b.Current()
}

func (b *Browser) NextPage() Page {
	return b.ChangePage(b.state.CurrentPage + 1)
}

func (b *Browser) PrevPage() Page {
	return b.ChangePage(b.state.CurrentPage - 1)
}

// Reset restores the initial state.
func (b *Browser) Reset() Page {
	b.state = b.defaults
	return b.Current()
}
