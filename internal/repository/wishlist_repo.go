package repository

import (
	"context"

	"DripmenStore/internal/model"
	"DripmenStore/internal/store"
)

type WishlistRepository struct {
	DB store.Store
}

func NewWishlistRepository(db store.Store) *WishlistRepository {
	return &WishlistRepository{DB: db}
}

// LoadTx returns the wishlist. Malformed entries and repeated product ids
// are dropped.
func (r *WishlistRepository) LoadTx(tx store.Tx) ([]model.WishlistEntry, error) {
	raw, err := readList[any](tx, KeyWishlist)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(raw))
	entries := make([]model.WishlistEntry, 0, len(raw))
	for _, item := range raw {
		rec, _ := item.(map[string]any)
		e, err := model.ParseWishlistEntry(rec)
		if err != nil || seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *WishlistRepository) SaveTx(tx store.Tx, entries []model.WishlistEntry) error {
	return writeList(tx, KeyWishlist, entries)
}

func (r *WishlistRepository) Load(ctx context.Context) ([]model.WishlistEntry, error) {
	var entries []model.WishlistEntry
	err := r.DB.View(ctx, func(tx store.Tx) error {
		var err error
		entries, err = r.LoadTx(tx)
		return err
	})
	return entries, err
}

func (r *WishlistRepository) Save(ctx context.Context, entries []model.WishlistEntry) error {
	return r.DB.Update(ctx, func(tx store.Tx) error {
		return r.SaveTx(tx, entries)
	})
}
