package repository

import (
	"context"

	"DripmenStore/internal/model"
	"DripmenStore/internal/store"
)

type CartRepository struct {
	DB store.Store
}

func NewCartRepository(db store.Store) *CartRepository {
	return &CartRepository{DB: db}
}

// LoadTx returns the cart with malformed lines dropped.
func (r *CartRepository) LoadTx(tx store.Tx) ([]model.CartLine, error) {
	raw, err := readList[any](tx, KeyCart)
	if err != nil {
		return nil, err
	}
	lines := make([]model.CartLine, 0, len(raw))
	for _, item := range raw {
		rec, _ := item.(map[string]any)
		line, err := model.ParseCartLine(rec)
		if err != nil {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (r *CartRepository) SaveTx(tx store.Tx, lines []model.CartLine) error {
	return writeList(tx, KeyCart, lines)
}

// ClearTx empties the cart.
func (r *CartRepository) ClearTx(tx store.Tx) error {
	return writeList[model.CartLine](tx, KeyCart, nil)
}

func (r *CartRepository) Load(ctx context.Context) ([]model.CartLine, error) {
	var lines []model.CartLine
	err := r.DB.View(ctx, func(tx store.Tx) error {
		var err error
		lines, err = r.LoadTx(tx)
		return err
	})
	return lines, err
}

func (r *CartRepository) Save(ctx context.Context, lines []model.CartLine) error {
	return r.DB.Update(ctx, func(tx store.Tx) error {
		return r.SaveTx(tx, lines)
	})
}
