// Package store is the key-value layer every collection is persisted through.
//
// A collection is one key holding one JSON document. Callers read the whole
// document, change it in memory and write it back inside a single Update, so
// a multi-key change (moving an order between collections, emptying the cart
// while inserting an order) either lands completely or not at all.
package store

import (
	"context"
	"errors"

	jsoniter "github.com/json-iterator/go"
)

// ErrNotFound is returned by Tx.Get when the key was never written.
var ErrNotFound = errors.New("key not found")

// Tx is the view of the store inside a View or Update call.
type Tx interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

// Store runs functions against a consistent snapshot (View) or a
// read-write transaction (Update). A non-nil error from fn discards every
// write made by fn.
type Store interface {
	View(ctx context.Context, fn func(tx Tx) error) error
	Update(ctx context.Context, fn func(tx Tx) error) error
	Close() error
}

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// Encode serialises v into the document format used by every backend.
func Encode(v any) ([]byte, error) {
	return codec.Marshal(v)
}

// Decode parses a document produced by Encode.
func Decode(data []byte, v any) error {
	return codec.Unmarshal(data, v)
}
