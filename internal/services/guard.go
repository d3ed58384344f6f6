package services

import (
	"context"
	"errors"
)

var (
	ErrLoginRequired     = errors.New("please login to continue")
	ErrSizeRequired      = errors.New("please select a size")
	ErrSizeUnavailable   = errors.New("size not available for this product")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("order cannot make this transition")
	ErrInvalidCoupon     = errors.New("invalid coupon code")
)

// AuthGuard answers whether a shopper is signed in.
// repository.AuthRepository satisfies it.
type AuthGuard interface {
	IsAuthenticated(ctx context.Context) (bool, error)
}

// GuardFunc adapts a plain function to AuthGuard.
type GuardFunc func(ctx context.Context) (bool, error)

func (f GuardFunc) IsAuthenticated(ctx context.Context) (bool, error) {
	return f(ctx)
}

// requireLogin aborts with ErrLoginRequired when g reports signed out.
// A nil guard lets everything through.
func requireLogin(ctx context.Context, g AuthGuard) error {
	if g == nil {
		return nil
	}
	ok, err := g.IsAuthenticated(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrLoginRequired
	}
	return nil
}
