package model

import (
	"strings"
	"time"
)

type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
	StatusRefunded   OrderStatus = "Refunded"

	// display-only statuses found in historical data
	StatusCompleted OrderStatus = "Completed"
	StatusPending   OrderStatus = "Pending"
)

// Terminal reports whether no transition leaves s.
func (s OrderStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusRefunded
}

// Order is a placed order. Items is a private copy of the cart at checkout.
type Order struct {
	ID            string      `json:"id"`
	Date          time.Time   `json:"date"`
	Status        OrderStatus `json:"status"`
	Subtotal      float64     `json:"subtotal"`
	Delivery      float64     `json:"delivery"`
	Total         float64     `json:"total"`
	Items         []CartLine  `json:"items"`
	Address       Address     `json:"address"`
	PaymentMethod string      `json:"payment_method"`
}

// DateLabel renders Date the way order lists show it ("Nov 12, 2023").
func (o Order) DateLabel() string {
	return o.Date.Format("Jan 2, 2006")
}

// Clone returns a deep copy of o.
func (o Order) Clone() Order {
	c := o
	c.Items = append([]CartLine(nil), o.Items...)
	return c
}

// NormalizeOrderID accepts ids with or without the leading '#'.
func NormalizeOrderID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || strings.HasPrefix(id, "#") {
		return id
	}
	return "#" + id
}

// Confirmation is returned to the shopper after checkout.
type Confirmation struct {
	OrderID    string  `json:"order_id"`
	Total      float64 `json:"total"`
	TotalLabel string  `json:"total_label"`
}

// Invoice is the order-details view. Delivery comes from the order record.
type Invoice struct {
	Order    Order   `json:"order"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Delivery float64 `json:"delivery"`
	Total    float64 `json:"total"`
}

// InvoiceFor builds the invoice of o. Orders recorded before subtotal and
// delivery were stored get their subtotal from the items.
func InvoiceFor(o Order) Invoice {
	subtotal := o.Subtotal
	if subtotal == 0 {
		for _, it := range o.Items {
			subtotal += it.Subtotal()
		}
	}
	return Invoice{
		Order:    o,
		Subtotal: Round2(subtotal),
		Tax:      0,
		Delivery: o.Delivery,
		Total:    o.Total,
	}
}
