package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
- id: black-tshirt
  name: Black Tshirt
  price: 145
  image: black.png
  rating: 4.5
  category: tshirts
  color: Black
  sizes: S, M,L
  date: "2023-11-02"
- id: broken
  name: No Price
  image: broken.png
- id: white-hoodie
  name: White Hoodie
  price: "240.50"
  image: white.png
  rating: 4
  category: hoodies
  color: White
  sizes: [M, L]
- id: black-tshirt
  name: Duplicate
  price: 1
  image: dup.png
`

func TestLoadYAML(t *testing.T) {
	c, err := Load([]byte(sampleYAML), false)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	p, err := c.Get("black-tshirt")
	require.NoError(t, err)
	assert.Equal(t, "Black Tshirt", p.Name)
	assert.Equal(t, []string{"S", "M", "L"}, p.Sizes)
	assert.Equal(t, 2023, p.ReleasedAt().Year())

	p, err = c.Get("white-hoodie")
	require.NoError(t, err)
	assert.Equal(t, 240.5, p.Price)
	assert.Equal(t, []string{"M", "L"}, p.Sizes)

	_, err = c.Get("broken")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestLoadJSON(t *testing.T) {
	data := []byte(`[{"id":"cap","name":"Cap","price":25,"image":"cap.png","rating":3.5,"category":"accessories","color":"Red","sizes":["One"]}]`)
	c, err := Load(data, true)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "cap", c.All()[0].ID)
}

func TestLoadRejectsGarbage(t *testing.T) {
	_, err := Load([]byte(`{not json`), true)
	assert.Error(t, err)

	_, err = Load([]byte("id: [unterminated"), false)
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"a","name":"A","price":5,"image":"a.png"}]`), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBundledCatalog(t *testing.T) {
	c, err := LoadFile("../../catalog.yaml")
	require.NoError(t, err)
	assert.Equal(t, 8, c.Len())
	for _, p := range c.All() {
		assert.NotEmpty(t, p.Sizes, p.ID)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	c, err := Load([]byte(sampleYAML), false)
	require.NoError(t, err)
	all := c.All()
	all[0].Name = "changed"
	p, _ := c.Get(all[0].ID)
	assert.NotEqual(t, "changed", p.Name)
}

func TestFacets(t *testing.T) {
	c, err := Load([]byte(sampleYAML), false)
	require.NoError(t, err)

	f := c.Facets()
	assert.Equal(t, []string{"tshirts", "hoodies"}, f.Categories)
	assert.Equal(t, []string{"Black", "White"}, f.Colors)
	assert.Equal(t, []string{"S", "M", "L"}, f.Sizes)
	assert.Equal(t, 145.0, f.MinPrice)
	assert.Equal(t, 241.0, f.MaxPrice)
}
