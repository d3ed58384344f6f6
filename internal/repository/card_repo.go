package repository

import (
	"context"

	"DripmenStore/internal/model"
	"DripmenStore/internal/store"
)

type CardRepository struct {
	DB store.Store
}

func NewCardRepository(db store.Store) *CardRepository {
	return &CardRepository{DB: db}
}

func (r *CardRepository) LoadTx(tx store.Tx) ([]model.PaymentCard, error) {
	return readList[model.PaymentCard](tx, KeyCards)
}

func (r *CardRepository) SaveTx(tx store.Tx, cards []model.PaymentCard) error {
	return writeList(tx, KeyCards, cards)
}

func (r *CardRepository) List(ctx context.Context) ([]model.PaymentCard, error) {
	var cards []model.PaymentCard
	err := r.DB.View(ctx, func(tx store.Tx) error {
		var err error
		cards, err = r.LoadTx(tx)
		return err
	})
	return cards, err
}

// Add appends card and returns the new list.
func (r *CardRepository) Add(ctx context.Context, card model.PaymentCard) ([]model.PaymentCard, error) {
	var cards []model.PaymentCard
	err := r.DB.Update(ctx, func(tx store.Tx) error {
		var err error
		if cards, err = r.LoadTx(tx); err != nil {
			return err
		}
		cards = append(cards, card)
		return r.SaveTx(tx, cards)
	})
	return cards, err
}

// Remove deletes the card at index i and returns the new list.
func (r *CardRepository) Remove(ctx context.Context, i int) ([]model.PaymentCard, error) {
	var cards []model.PaymentCard
	err := r.DB.Update(ctx, func(tx store.Tx) error {
		var err error
		if cards, err = r.LoadTx(tx); err != nil {
			return err
		}
		if err := CheckIndex(i, len(cards)); err != nil {
			return err
		}
		cards = append(cards[:i], cards[i+1:]...)
		return r.SaveTx(tx, cards)
	})
	return cards, err
}
