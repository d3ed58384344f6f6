package repository

import (
	"errors"
	"fmt"

	"DripmenStore/internal/store"

	"go.uber.org/zap"
)

// Keys of the persisted collections.
const (
	KeyCart          = "cart"
	KeyWishlist      = "wishlist"
	KeyAddresses     = "addresses"
	KeyCards         = "cards"
	KeyOrders        = "orders"
	KeyCancellations = "cancellations"
	KeyReturns       = "returns"
	KeyAuthToken     = "auth_token"
	KeyAccounts      = "accounts"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrOutOfRange = errors.New("index out of range")
)

// readList loads the collection at key. A missing key is an empty
// collection. An undecodable document is logged and also treated as empty;
// the next write replaces it.
func readList[T any](tx store.Tx, key string) ([]T, error) {
	data, err := tx.Get(key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	var out []T
	if err := store.Decode(data, &out); err != nil {
		zap.S().Warnw("collection is corrupt, resetting to empty", "key", key, "error", err)
		return nil, nil
	}
	return out, nil
}

func writeList[T any](tx store.Tx, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := store.Encode(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := tx.Put(key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// CheckIndex validates a position into a collection of length n. Failures
// wrap ErrOutOfRange.
func CheckIndex(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, n)
	}
	return nil
}
