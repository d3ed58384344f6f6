package repository

import (
	"time"

	"DripmenStore/internal/model"
)

// DemoOrders is the order history a fresh demo install starts with: one
// delivered order that can be returned and one processing order that can
// be cancelled.
func DemoOrders(now time.Time) []model.Order {
	addr := model.Address{
		Name:      "Alex Morgan",
		Email:     "alex@example.com",
		Mobile:    "0123456789",
		Street:    "12 Market Street",
		City:      "Springfield",
		Zip:       "12345",
		IsDefault: true,
	}
	delivered := []model.CartLine{
		{ID: "black-tshirt", Name: "Black Tshirt", Price: 145, Image: "images/black-tshirt.png", Rating: 4.5, Size: "M", Color: "Black", Quantity: 1},
		{ID: "cargo-pants", Name: "Cargo Pants", Price: 95, Image: "images/cargo-pants.png", Rating: 4.6, Size: "L", Color: "Green", Quantity: 1},
	}
	processing := []model.CartLine{
		{ID: "red-polo", Name: "Red Polo", Price: 60, Image: "images/red-polo.png", Rating: 3.9, Size: "S", Color: "Red", Quantity: 2},
	}
	return []model.Order{
		{
			ID:            "#DEMO00000002",
			Date:          now.AddDate(0, 0, -2).UTC().Truncate(time.Second),
			Status:        model.StatusProcessing,
			Subtotal:      120,
			Delivery:      20,
			Total:         140,
			Items:         processing,
			Address:       addr,
			PaymentMethod: model.PaymentLabel(model.PaymentCOD),
		},
		{
			ID:            "#DEMO00000001",
			Date:          now.AddDate(0, 0, -14).UTC().Truncate(time.Second),
			Status:        model.StatusDelivered,
			Subtotal:      240,
			Delivery:      0,
			Total:         240,
			Items:         delivered,
			Address:       addr,
			PaymentMethod: model.PaymentLabel(model.PaymentOnline),
		},
	}
}
