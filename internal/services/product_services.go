package services

import (
	"DripmenStore/internal/catalog"
	"DripmenStore/internal/model"
)

// ProductService serves the catalog to the one shopper this store has: a
// single Browser holds the filter state between requests.
type ProductService struct {
	Catalog *catalog.Catalog
	Browser *catalog.Browser
}

func NewProductService(c *catalog.Catalog, itemsPerPage int) *ProductService {
	return &ProductService{Catalog: c, Browser: catalog.NewBrowser(c.All(), itemsPerPage)}
}

// PageView is the visible page together with the state that produced it.
type PageView struct {
	Page  catalog.Page        `json:"page"`
	State catalog.FilterState `json:"state"`
}

func (s *ProductService) view(p catalog.Page) *PageView {
	return &PageView{Page: p, State: s.Browser.State()}
}

func (s *ProductService) Current() *PageView {
	return s.view(s.Browser.Current())
}

func (s *ProductService) Filter(facet, value string) (*PageView, error) {
	p, err := s.Browser.ApplyFilter(facet, value)
	if err != nil {
		return nil, err
	}
	return s.view(p), nil
}

func (s *ProductService) SetPriceRange(min, max float64) *PageView {
	return s.view(s.Browser.SetPriceRange(min, max))
}

func (s *ProductService) Sort(key string) *PageView {
	return s.view(s.Browser.ChangeSort(key))
}

func (s *ProductService) ChangePage(page int) *PageView {
	return s.view(s.Browser.ChangePage(page))
}

func (s *ProductService) Reset() *PageView {
	return s.view(s.Browser.Reset())
}

// Facets lists the filter options of the whole catalog.
func (s *ProductService) Facets() catalog.Facets {
	return s.Catalog.Facets()
}

func (s *ProductService) Get(id string) (model.Product, error) {
	return s.Catalog.Get(id)
}
