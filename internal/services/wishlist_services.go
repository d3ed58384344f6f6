package services

import (
	"context"
	"fmt"

	"DripmenStore/internal/catalog"
	"DripmenStore/internal/events"
	"DripmenStore/internal/model"
	"DripmenStore/internal/repository"
	"DripmenStore/internal/store"
)

type WishlistService struct {
	Repo     *repository.WishlistRepository
	CartRepo *repository.CartRepository
	Catalog  *catalog.Catalog
	Guard    AuthGuard
	Bus      *events.Bus
}

func NewWishlistService(r *repository.WishlistRepository, cr *repository.CartRepository, c *catalog.Catalog, g AuthGuard, bus *events.Bus) *WishlistService {
	return &WishlistService{Repo: r, CartRepo: cr, Catalog: c, Guard: g, Bus: bus}
}

func (s *WishlistService) List(ctx context.Context) ([]model.WishlistEntry, error) {
	entries, err := s.Repo.Load(ctx)
	if entries == nil && err == nil {
		entries = []model.WishlistEntry{}
	}
	return entries, err
}

// Toggle removes productID from the wishlist if present and adds it
// otherwise. It reports whether the product is now wishlisted.
func (s *WishlistService) Toggle(ctx context.Context, productID string) (bool, []model.WishlistEntry, error) {
	p, err := s.Catalog.Get(productID)
	if err != nil {
		return false, nil, err
	}
	return s.ToggleEntry(ctx, model.EntryFromProduct(p))
}

// ToggleEntry is Toggle for an entry that is not looked up in the catalog.
func (s *WishlistService) ToggleEntry(ctx context.Context, entry model.WishlistEntry) (bool, []model.WishlistEntry, error) {
	var (
		entries []model.WishlistEntry
		added   bool
	)
	err := s.Repo.DB.Update(ctx, func(tx store.Tx) error {
		var err error
		if entries, err = s.Repo.LoadTx(tx); err != nil {
			return err
		}
		for i, e := range entries {
			if e.ID == entry.ID {
				entries = append(entries[:i], entries[i+1:]...)
				return s.Repo.SaveTx(tx, entries)
			}
		}
		added = true
		entries = append(entries, entry)
		return s.Repo.SaveTx(tx, entries)
	})
	if err != nil {
		return false, nil, err
	}
	if added {
		s.Bus.Notify(events.LevelSuccess, "Added to wishlist")
	} else {
		s.Bus.Notify(events.LevelInfo, "Removed from wishlist")
	}
	s.Bus.Updated(events.TopicWishlistUpdated)
	return added, entries, nil
}

// Remove deletes the entry at index.
func (s *WishlistService) Remove(ctx context.Context, index int) ([]model.WishlistEntry, error) {
	var entries []model.WishlistEntry
	err := s.Repo.DB.Update(ctx, func(tx store.Tx) error {
		var err error
		if entries, err = s.Repo.LoadTx(tx); err != nil {
			return err
		}
		if err := repository.CheckIndex(index, len(entries)); err != nil {
			return fmt.Errorf("wishlist entry: %w", err)
		}
		entries = append(entries[:index], entries[index+1:]...)
		return s.Repo.SaveTx(tx, entries)
	})
	if err != nil {
		return nil, err
	}
	s.Bus.Notify(events.LevelInfo, "Removed from wishlist")
	s.Bus.Updated(events.TopicWishlistUpdated)
	return entries, nil
}

// AddToCart puts one unit of the entry at index into the cart with the
// default size and color. The entry stays on the wishlist.
func (s *WishlistService) AddToCart(ctx context.Context, index int) ([]model.CartLine, error) {
	if err := requireLogin(ctx, s.Guard); err != nil {
		s.Bus.Notify(events.LevelError, "Please login to add items to your cart")
		return nil, err
	}

	var (
		lines []model.CartLine
		name  string
	)
	err := s.Repo.DB.Update(ctx, func(tx store.Tx) error {
		entries, err := s.Repo.LoadTx(tx)
		if err != nil {
			return err
		}
		if err := repository.CheckIndex(index, len(entries)); err != nil {
			return fmt.Errorf("wishlist entry: %w", err)
		}
		if lines, err = s.CartRepo.LoadTx(tx); err != nil {
			return err
		}
		name = entries[index].Name
		lines = MergeLine(lines, lineFromEntry(entries[index]))
		return s.CartRepo.SaveTx(tx, lines)
	})
	if err != nil {
		return nil, err
	}
	s.Bus.Notify(events.LevelSuccess, fmt.Sprintf("%s added to cart", name))
	s.Bus.Updated(events.TopicCartUpdated)
	return lines, nil
}

// MoveAllToCart merges every wishlist entry into the cart and empties the
// wishlist, all in one transaction. An empty wishlist changes nothing.
func (s *WishlistService) MoveAllToCart(ctx context.Context) ([]model.CartLine, error) {
	if err := requireLogin(ctx, s.Guard); err != nil {
		s.Bus.Notify(events.LevelError, "Please login to add items to your cart")
		return nil, err
	}

	var (
		lines []model.CartLine
		moved int
	)
	err := s.Repo.DB.Update(ctx, func(tx store.Tx) error {
		entries, err := s.Repo.LoadTx(tx)
		if err != nil {
			return err
		}
		if lines, err = s.CartRepo.LoadTx(tx); err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		for _, e := range entries {
			lines = MergeLine(lines, lineFromEntry(e))
		}
		moved = len(entries)
		if err := s.CartRepo.SaveTx(tx, lines); err != nil {
			return err
		}
		return s.Repo.SaveTx(tx, nil)
	})
	if err != nil {
		return nil, err
	}
	if moved == 0 {
		s.Bus.Notify(events.LevelInfo, "Your wishlist is empty")
		return lines, nil
	}
	s.Bus.Notify(events.LevelSuccess, "All items moved to cart")
	s.Bus.Updated(events.TopicCartUpdated)
	s.Bus.Updated(events.TopicWishlistUpdated)
	return lines, nil
}

func lineFromEntry(e model.WishlistEntry) model.CartLine {
	return model.CartLine{
		ID:       e.ID,
		Name:     e.Name,
		Price:    e.Price,
		Image:    e.Image,
		Rating:   e.Rating,
		Size:     model.DefaultSize,
		Color:    model.DefaultColor,
		Quantity: 1,
	}
}
