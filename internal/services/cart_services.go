package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"DripmenStore/internal/catalog"
	"DripmenStore/internal/events"
	"DripmenStore/internal/model"
	"DripmenStore/internal/repository"
	"DripmenStore/internal/store"
)

// CouponCode is the one code the store recognises.
const CouponCode = "DRIP20"

type CartService struct {
	Repo         *repository.CartRepository
	WishlistRepo *repository.WishlistRepository
	Catalog      *catalog.Catalog
	Guard        AuthGuard
	Bus          *events.Bus
	Pricing      model.Pricing
}

func NewCartService(r *repository.CartRepository, wr *repository.WishlistRepository, c *catalog.Catalog, g AuthGuard, bus *events.Bus, pricing model.Pricing) *CartService {
	return &CartService{
		Repo:         r,
		WishlistRepo: wr,
		Catalog:      c,
		Guard:        g,
		Bus:          bus,
		Pricing:      pricing,
	}
}

// CartView is the cart page: lines plus totals.
type CartView struct {
	Items   []model.CartLine `json:"items"`
	Summary model.Summary    `json:"summary"`
}

// Counts feeds the header badges.
type Counts struct {
	Cart     int `json:"cart"`
	Wishlist int `json:"wishlist"`
}

// ComputeSummary applies the delivery rules to lines. Delivery is free for
// an empty cart and from the threshold up.
func ComputeSummary(lines []model.CartLine, p model.Pricing) model.Summary {
	var subtotal float64
	for _, l := range lines {
		subtotal += l.Subtotal()
	}
	subtotal = model.Round2(subtotal)

	delivery := p.FlatDeliveryFee
	if subtotal == 0 || subtotal >= p.FreeShippingThreshold {
		delivery = 0
	}

	sum := model.Summary{
		Subtotal:     subtotal,
		Delivery:     delivery,
		Total:        model.Round2(subtotal + delivery),
		FreeShipping: subtotal >= p.FreeShippingThreshold,
	}
	if p.FreeShippingThreshold > 0 {
		sum.FreeShippingProgress = model.Round2(math.Min(100, subtotal/p.FreeShippingThreshold*100))
		sum.RemainingForFree = model.Round2(math.Max(0, p.FreeShippingThreshold-subtotal))
	} else {
		sum.FreeShipping = true
		sum.FreeShippingProgress = 100
	}
	return sum
}

// MergeLine adds line to lines. A line with the same (id, size, color) has
// its quantity raised instead of a second line being appended. Empty size
// and color take the store defaults.
func MergeLine(lines []model.CartLine, line model.CartLine) []model.CartLine {
	if line.Size == "" {
		line.Size = model.DefaultSize
	}
	if line.Color == "" {
		line.Color = model.DefaultColor
	}
	if line.Quantity <= 0 {
		line.Quantity = model.DefaultQuantity
	}
	for i := range lines {
		if lines[i].Key() == line.Key() {
			lines[i].Quantity += line.Quantity
			return lines
		}
	}
	return append(lines, line)
}

// Add merges line into the cart. The stored cart is filtered of malformed
// lines first.
func (s *CartService) Add(ctx context.Context, line model.CartLine) ([]model.CartLine, error) {
	if err := requireLogin(ctx, s.Guard); err != nil {
		s.Bus.Notify(events.LevelError, "Please login to add items to your cart")
		return nil, err
	}

	var lines []model.CartLine
	merged := false
	err := s.Repo.DB.Update(ctx, func(tx store.Tx) error {
		var err error
		if lines, err = s.Repo.LoadTx(tx); err != nil {
			return err
		}
		before := len(lines)
		lines = MergeLine(lines, line)
		merged = len(lines) == before
		return s.Repo.SaveTx(tx, lines)
	})
	if err != nil {
		return nil, err
	}
	if merged {
		s.Bus.Notify(events.LevelSuccess, "Quantity updated in cart")
	} else {
		s.Bus.Notify(events.LevelSuccess, fmt.Sprintf("%s added to cart", line.Name))
	}
	s.Bus.Updated(events.TopicCartUpdated)
	return lines, nil
}

// AddProduct adds a catalog product in the chosen size and color. Products
// sold in sizes need one picked.
func (s *CartService) AddProduct(ctx context.Context, productID, size, color string, qty int) ([]model.CartLine, error) {
	p, err := s.Catalog.Get(productID)
	if err != nil {
		return nil, err
	}
	size = strings.TrimSpace(size)
	if len(p.Sizes) > 0 {
		if size == "" {
			s.Bus.Notify(events.LevelError, "Please select a size")
			return nil, ErrSizeRequired
		}
		if !p.HasSize(size) {
			return nil, fmt.Errorf("%w: %s", ErrSizeUnavailable, size)
		}
	}
	if qty < 1 {
		qty = model.DefaultQuantity
	}
	return s.Add(ctx, model.CartLine{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Rating:   p.Rating,
		Size:     size,
		Color:    strings.TrimSpace(color),
		Quantity: qty,
	})
}

// ChangeQuantity adds delta to the line at index. A line that drops to zero
// or below is removed.
func (s *CartService) ChangeQuantity(ctx context.Context, index, delta int) ([]model.CartLine, error) {
	var (
		lines   []model.CartLine
		removed bool
	)
	err := s.Repo.DB.Update(ctx, func(tx store.Tx) error {
		var err error
		if lines, err = s.Repo.LoadTx(tx); err != nil {
			return err
		}
		if err := repository.CheckIndex(index, len(lines)); err != nil {
			return fmt.Errorf("cart line: %w", err)
		}
		lines[index].Quantity += delta
		if lines[index].Quantity <= 0 {
			lines = append(lines[:index], lines[index+1:]...)
			removed = true
		}
		return s.Repo.SaveTx(tx, lines)
	})
	if err != nil {
		return nil, err
	}
	if removed {
		s.Bus.Notify(events.LevelInfo, "Item removed from cart")
	}
	s.Bus.Updated(events.TopicCartUpdated)
	return lines, nil
}

func (s *CartService) RemoveLine(ctx context.Context, index int) ([]model.CartLine, error) {
	var lines []model.CartLine
	err := s.Repo.DB.Update(ctx, func(tx store.Tx) error {
		var err error
		if lines, err = s.Repo.LoadTx(tx); err != nil {
			return err
		}
		if err := repository.CheckIndex(index, len(lines)); err != nil {
			return fmt.Errorf("cart line: %w", err)
		}
		lines = append(lines[:index], lines[index+1:]...)
		return s.Repo.SaveTx(tx, lines)
	})
	if err != nil {
		return nil, err
	}
	s.Bus.Notify(events.LevelInfo, "Item removed from cart")
	s.Bus.Updated(events.TopicCartUpdated)
	return lines, nil
}

// Get returns the cart with its summary.
func (s *CartService) Get(ctx context.Context) (*CartView, error) {
	lines, err := s.Repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []model.CartLine{}
	}
	return &CartView{Items: lines, Summary: ComputeSummary(lines, s.Pricing)}, nil
}

// Counts returns the cart quantity total and the wishlist size.
func (s *CartService) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	err := s.Repo.DB.View(ctx, func(tx store.Tx) error {
		lines, err := s.Repo.LoadTx(tx)
		if err != nil {
			return err
		}
		for _, l := range lines {
			c.Cart += l.Quantity
		}
		entries, err := s.WishlistRepo.LoadTx(tx)
		if err != nil {
			return err
		}
		c.Wishlist = len(entries)
		return nil
	})
	return c, err
}

// ApplyCoupon checks code. A valid code is acknowledged; no discount is
// taken off the totals.
func (s *CartService) ApplyCoupon(ctx context.Context, code string) error {
	if err := requireLogin(ctx, s.Guard); err != nil {
		return err
	}
	if !strings.EqualFold(strings.TrimSpace(code), CouponCode) {
		s.Bus.Notify(events.LevelError, "Invalid coupon code")
		return ErrInvalidCoupon
	}
	s.Bus.Notify(events.LevelSuccess, "Coupon applied successfully!")
	return nil
}
