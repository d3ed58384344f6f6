package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverBolt, cfg.StoreDriver)
	assert.Equal(t, "dripmen.db", cfg.StorePath)
	assert.Equal(t, "catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, 6, cfg.ItemsPerPage)
	assert.Equal(t, 24, cfg.JWTTTLHours)
	assert.False(t, cfg.SeedDemo)
	assert.Equal(t, 200.0, cfg.Pricing().FreeShippingThreshold)
	assert.Equal(t, 20.0, cfg.Pricing().FlatDeliveryFee)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"STORE_DRIVER":            "Postgres",
		"DATABASE_URL":            "postgres://localhost/dripmen",
		"ITEMS_PER_PAGE":          "9",
		"SEED_DEMO":               "true",
		"JWT_TTL_HOURS":           "2",
		"FREE_SHIPPING_THRESHOLD": "150",
		"FLAT_DELIVERY_FEE":       "12.5",
	})
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 9, cfg.ItemsPerPage)
	assert.True(t, cfg.SeedDemo)
	assert.Equal(t, 2, cfg.JWTTTLHours)
	assert.Equal(t, 150.0, cfg.Pricing().FreeShippingThreshold)
	assert.Equal(t, 12.5, cfg.Pricing().FlatDeliveryFee)
}

func TestLoadRejectsBadValues(t *testing.T) {
	_, err := LoadFrom(map[string]string{"ITEMS_PER_PAGE": "lots"})
	assert.Error(t, err)

	_, err = LoadFrom(map[string]string{"STORE_DRIVER": "postgres"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{StoreDriver: "bolt", StorePath: "x.db", ItemsPerPage: 6, JWTTTLHours: 1}
	require.NoError(t, base.Validate())

	c := base
	c.StoreDriver = "sqlite"
	assert.Error(t, c.Validate())

	c = base
	c.StorePath = " "
	assert.Error(t, c.Validate())

	c = base
	c.ItemsPerPage = 0
	assert.Error(t, c.Validate())

	c = base
	c.FlatDeliveryFee = -1
	assert.Error(t, c.Validate())
}
