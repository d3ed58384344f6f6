package repository

import (
	"context"
	"errors"
	"fmt"

	"DripmenStore/internal/model"
	"DripmenStore/internal/store"
)

var ErrDuplicateOrderID = errors.New("order id already in use")

// OrderCollections lists the three disjoint order collections. An order id
// lives in exactly one of them.
var OrderCollections = []string{KeyOrders, KeyCancellations, KeyReturns}

type OrderRepository struct {
	DB store.Store
}

func NewOrderRepository(db store.Store) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) LoadTx(tx store.Tx, collection string) ([]model.Order, error) {
	if err := validCollection(collection); err != nil {
		return nil, err
	}
	return readList[model.Order](tx, collection)
}

func (r *OrderRepository) SaveTx(tx store.Tx, collection string, orders []model.Order) error {
	if err := validCollection(collection); err != nil {
		return err
	}
	return writeList(tx, collection, orders)
}

// ExistsTx reports whether id is used in any order collection.
func (r *OrderRepository) ExistsTx(tx store.Tx, id string) (bool, error) {
	for _, c := range OrderCollections {
		orders, err := r.LoadTx(tx, c)
		if err != nil {
			return false, err
		}
		if indexOf(orders, id) >= 0 {
			return true, nil
		}
	}
	return false, nil
}

// InsertTx puts o at the front of the orders collection.
func (r *OrderRepository) InsertTx(tx store.Tx, o model.Order) error {
	exists, err := r.ExistsTx(tx, o.ID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrDuplicateOrderID, o.ID)
	}
	orders, err := r.LoadTx(tx, KeyOrders)
	if err != nil {
		return err
	}
	orders = append([]model.Order{o.Clone()}, orders...)
	return r.SaveTx(tx, KeyOrders, orders)
}

// FindTx looks id up in one collection.
func (r *OrderRepository) FindTx(tx store.Tx, collection, id string) (model.Order, error) {
	orders, err := r.LoadTx(tx, collection)
	if err != nil {
		return model.Order{}, err
	}
	i := indexOf(orders, id)
	if i < 0 {
		return model.Order{}, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return orders[i], nil
}

// MoveTx removes id from one collection, sets its status and prepends it to
// another. Both writes happen in tx, so they land together or not at all.
func (r *OrderRepository) MoveTx(tx store.Tx, id, from, to string, status model.OrderStatus) (model.Order, error) {
	src, err := r.LoadTx(tx, from)
	if err != nil {
		return model.Order{}, err
	}
	i := indexOf(src, id)
	if i < 0 {
		return model.Order{}, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	moved := src[i].Clone()
	moved.Status = status
	src = append(src[:i], src[i+1:]...)

	dst, err := r.LoadTx(tx, to)
	if err != nil {
		return model.Order{}, err
	}
	dst = append([]model.Order{moved}, dst...)

	if err := r.SaveTx(tx, from, src); err != nil {
		return model.Order{}, err
	}
	if err := r.SaveTx(tx, to, dst); err != nil {
		return model.Order{}, err
	}
	return moved, nil
}

func (r *OrderRepository) List(ctx context.Context, collection string) ([]model.Order, error) {
	var orders []model.Order
	err := r.DB.View(ctx, func(tx store.Tx) error {
		var err error
		orders, err = r.LoadTx(tx, collection)
		return err
	})
	return orders, err
}

// FindByID searches every collection and reports where id was found.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (model.Order, string, error) {
	var (
		found      model.Order
		collection string
	)
	err := r.DB.View(ctx, func(tx store.Tx) error {
		for _, c := range OrderCollections {
			o, err := r.FindTx(tx, c, id)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			found, collection = o, c
			return nil
		}
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	})
	return found, collection, err
}

// SeedIfAbsent writes orders only when the orders collection was never
// written. It reports whether it seeded.
func (r *OrderRepository) SeedIfAbsent(ctx context.Context, orders []model.Order) (bool, error) {
	seeded := false
	err := r.DB.Update(ctx, func(tx store.Tx) error {
		_, err := tx.Get(KeyOrders)
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		seeded = true
		return r.SaveTx(tx, KeyOrders, orders)
	})
	return seeded, err
}

func indexOf(orders []model.Order, id string) int {
	for i, o := range orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func validCollection(c string) error {
	for _, known := range OrderCollections {
		if c == known {
			return nil
		}
	}
	return fmt.Errorf("unknown order collection %q", c)
}
