package repository

import (
	"context"

	"DripmenStore/internal/model"
	"DripmenStore/internal/store"
)

type AddressRepository struct {
	DB store.Store
}

func NewAddressRepository(db store.Store) *AddressRepository {
	return &AddressRepository{DB: db}
}

func (r *AddressRepository) LoadTx(tx store.Tx) ([]model.Address, error) {
	return readList[model.Address](tx, KeyAddresses)
}

func (r *AddressRepository) SaveTx(tx store.Tx, addrs []model.Address) error {
	return writeList(tx, KeyAddresses, addrs)
}

func (r *AddressRepository) List(ctx context.Context) ([]model.Address, error) {
	var addrs []model.Address
	err := r.DB.View(ctx, func(tx store.Tx) error {
		var err error
		addrs, err = r.LoadTx(tx)
		return err
	})
	return addrs, err
}

// Get returns the address at index i.
func (r *AddressRepository) Get(ctx context.Context, i int) (model.Address, error) {
	addrs, err := r.List(ctx)
	if err != nil {
		return model.Address{}, err
	}
	if err := CheckIndex(i, len(addrs)); err != nil {
		return model.Address{}, err
	}
	return addrs[i], nil
}

func (r *AddressRepository) Save(ctx context.Context, addrs []model.Address) error {
	return r.DB.Update(ctx, func(tx store.Tx) error {
		return r.SaveTx(tx, addrs)
	})
}
