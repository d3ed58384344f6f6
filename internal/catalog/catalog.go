package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"DripmenStore/internal/model"
	"DripmenStore/internal/store"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrProductNotFound is returned by Catalog.Get for unknown ids.
var ErrProductNotFound = errors.New("product not found")

// Catalog is the read-only product set, fixed once loaded.
type Catalog struct {
	products []model.Product
	byID     map[string]int
}

// New indexes products. Later duplicates of an id are dropped.
func New(products []model.Product) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(products))}
	for _, p := range products {
		if _, dup := c.byID[p.ID]; dup {
			zap.S().Warnw("duplicate product id in catalog", "id", p.ID)
			continue
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c
}

// All returns a copy of every product in catalog order.
func (c *Catalog) All() []model.Product {
	return append([]model.Product(nil), c.products...)
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// Get looks a product up by id.
func (c *Catalog) Get(id string) (model.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return model.Product{}, ErrProductNotFound
	}
	return c.products[i], nil
}

// LoadFile reads a catalog from a .yaml/.yml or .json file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	return Load(data, ext == ".json")
}

// Load parses catalog rows. Rows failing model.ParseProduct are skipped and
// logged rather than failing the whole catalog.
func Load(data []byte, isJSON bool) (*Catalog, error) {
	var rows []map[string]any
	if isJSON {
		if err := store.Decode(data, &rows); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&rows); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
	}

	products := make([]model.Product, 0, len(rows))
	for i, row := range rows {
		p, err := model.ParseProduct(row)
		if err != nil {
			zap.S().Warnw("skipping catalog row", "row", i, "error", err)
			continue
		}
		products = append(products, p)
	}
	return New(products), nil
}

// Facets lists the distinct values a shopper can filter on, in first-seen
// order.
type Facets struct {
	Categories []string `json:"categories"`
	Colors     []string `json:"colors"`
	Sizes      []string `json:"sizes"`
	MinPrice   float64  `json:"min_price"`
	MaxPrice   float64  `json:"max_price"`
}

func (c *Catalog) Facets() Facets {
	var f Facets
	seen := map[string]bool{}
	add := func(list *[]string, kind, v string) {
		if v == "" || seen[kind+"\x00"+v] {
			return
		}
		seen[kind+"\x00"+v] = true
		*list = append(*list, v)
	}
	for _, p := range c.products {
		add(&f.Categories, FacetCategory, p.Category)
		add(&f.Colors, FacetColor, p.Color)
		for _, s := range p.Sizes {
			add(&f.Sizes, FacetSize, s)
		}
	}
	f.MinPrice, f.MaxPrice = PriceBounds(c.products)
	return f
}
