package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"DripmenStore/internal/events"
	"DripmenStore/internal/model"
	"DripmenStore/internal/repository"
	"DripmenStore/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxOrderIDAttempts = 5

type OrderService struct {
	Repo        *repository.OrderRepository
	CartRepo    *repository.CartRepository
	AddressRepo *repository.AddressRepository
	Guard       AuthGuard
	Bus         *events.Bus
	Pricing     model.Pricing

	Now   func() time.Time
	NewID func() string
}

func NewOrderService(r *repository.OrderRepository, cr *repository.CartRepository, ar *repository.AddressRepository, g AuthGuard, bus *events.Bus, pricing model.Pricing) *OrderService {
	return &OrderService{
		Repo:        r,
		CartRepo:    cr,
		AddressRepo: ar,
		Guard:       g,
		Bus:         bus,
		Pricing:     pricing,
		Now:         time.Now,
		NewID:       NewOrderID,
	}
}

// NewOrderID returns "#" followed by 12 upper-case hex digits of a random
// UUID.
func NewOrderID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "#" + strings.ToUpper(hex[:12])
}

// Totals is the checkout page summary of the current cart.
func (s *OrderService) Totals(ctx context.Context) (*CartView, error) {
	lines, err := s.CartRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	return &CartView{Items: lines, Summary: ComputeSummary(lines, s.Pricing)}, nil
}

// PlaceOrder validates the checkout form and turns the cart into a
// Processing order. The order insert, the cart clear and the optional
// address save share one transaction. Nothing is written when validation
// fails.
func (s *OrderService) PlaceOrder(ctx context.Context, in model.CheckoutInput) (*model.Confirmation, error) {
	if err := requireLogin(ctx, s.Guard); err != nil {
		s.Bus.Notify(events.LevelError, "Please login to place an order")
		return nil, err
	}
	addr, payment, err := model.ParseCheckoutForm(in)
	if err != nil {
		s.Bus.Notify(events.LevelError, "Please fix the highlighted fields")
		return nil, err
	}

	var order model.Order
	err = s.Repo.DB.Update(ctx, func(tx store.Tx) error {
		lines, err := s.CartRepo.LoadTx(tx)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		id, err := s.uniqueID(tx)
		if err != nil {
			return err
		}
		sum := ComputeSummary(lines, s.Pricing)
		order = model.Order{
			ID:            id,
			Date:          s.Now().UTC(),
			Status:        model.StatusProcessing,
			Subtotal:      sum.Subtotal,
			Delivery:      sum.Delivery,
			Total:         sum.Total,
			Items:         append([]model.CartLine(nil), lines...),
			Address:       addr,
			PaymentMethod: payment,
		}
		if err := s.Repo.InsertTx(tx, order); err != nil {
			return err
		}
		if err := s.CartRepo.ClearTx(tx); err != nil {
			return err
		}
		if in.SaveInfo {
			return s.saveAddressTx(tx, addr)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			s.Bus.Notify(events.LevelError, "Your cart is empty")
		}
		return nil, err
	}

	zap.S().Infow("order placed", "order_id", order.ID, "total", order.Total, "items", len(order.Items))
	s.Bus.Notify(events.LevelSuccess, "Order placed successfully!")
	s.Bus.Updated(events.TopicCartUpdated)
	s.Bus.Updated(events.TopicOrdersUpdated)
	return &model.Confirmation{
		OrderID:    order.ID,
		Total:      order.Total,
		TotalLabel: model.FormatMoney(order.Total),
	}, nil
}

func (s *OrderService) uniqueID(tx store.Tx) (string, error) {
	for i := 0; i < maxOrderIDAttempts; i++ {
		id := s.NewID()
		exists, err := s.Repo.ExistsTx(tx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: gave up after %d attempts", repository.ErrDuplicateOrderID, maxOrderIDAttempts)
}

// saveAddressTx appends addr to the address book unless an entry with the
// same name and street is already there.
func (s *OrderService) saveAddressTx(tx store.Tx, addr model.Address) error {
	addrs, err := s.AddressRepo.LoadTx(tx)
	if err != nil {
		return err
	}
	for _, a := range addrs {
		if a.SameAs(addr) {
			return nil
		}
	}
	addr.IsDefault = len(addrs) == 0
	return s.AddressRepo.SaveTx(tx, append(addrs, addr))
}

// Cancel moves a Processing order to cancellations.
func (s *OrderService) Cancel(ctx context.Context, id string) (*model.Order, error) {
	o, err := s.transition(ctx, id, repository.KeyCancellations, model.StatusProcessing, model.StatusCancelled)
	if err != nil {
		return nil, err
	}
	s.Bus.Notify(events.LevelSuccess, fmt.Sprintf("Order %s cancelled", o.ID))
	return o, nil
}

// Return moves a Delivered order to returns as Refunded.
func (s *OrderService) Return(ctx context.Context, id string) (*model.Order, error) {
	o, err := s.transition(ctx, id, repository.KeyReturns, model.StatusDelivered, model.StatusRefunded)
	if err != nil {
		return nil, err
	}
	s.Bus.Notify(events.LevelSuccess, fmt.Sprintf("Return requested for order %s", o.ID))
	return o, nil
}

// transition looks id up among the live orders only, checks its status and
// moves it.
func (s *OrderService) transition(ctx context.Context, id, to string, from, next model.OrderStatus) (*model.Order, error) {
	if err := requireLogin(ctx, s.Guard); err != nil {
		return nil, err
	}
	id = model.NormalizeOrderID(id)

	var moved model.Order
	err := s.Repo.DB.Update(ctx, func(tx store.Tx) error {
		o, err := s.Repo.FindTx(tx, repository.KeyOrders, id)
		if err != nil {
			return err
		}
		if o.Status != from {
			return fmt.Errorf("%w: %s is %s, want %s", ErrInvalidTransition, id, o.Status, from)
		}
		moved, err = s.Repo.MoveTx(tx, id, repository.KeyOrders, to, next)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.Bus.Notify(events.LevelError, "Order not found")
		}
		return nil, err
	}
	zap.S().Infow("order moved", "order_id", id, "status", next, "collection", to)
	s.Bus.Updated(events.TopicOrdersUpdated)
	return &moved, nil
}

// List returns one order collection: orders, cancellations or returns.
func (s *OrderService) List(ctx context.Context, collection string) ([]model.Order, error) {
	orders, err := s.Repo.List(ctx, collection)
	if orders == nil && err == nil {
		orders = []model.Order{}
	}
	return orders, err
}

// Get finds an order in any collection. The leading '#' is optional.
func (s *OrderService) Get(ctx context.Context, id string) (*model.Order, error) {
	o, _, err := s.Repo.FindByID(ctx, model.NormalizeOrderID(id))
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *OrderService) Invoice(ctx context.Context, id string) (*model.Invoice, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	inv := model.InvoiceFor(*o)
	return &inv, nil
}

// SeedDemo fills an orders collection that was never written with demo
// history.
func (s *OrderService) SeedDemo(ctx context.Context) error {
	seeded, err := s.Repo.SeedIfAbsent(ctx, repository.DemoOrders(s.Now()))
	if err != nil {
		return err
	}
	if seeded {
		zap.S().Infow("seeded demo orders")
	}
	return nil
}
