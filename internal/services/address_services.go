package services

import (
	"context"

	"DripmenStore/internal/events"
	"DripmenStore/internal/model"
	"DripmenStore/internal/repository"
	"DripmenStore/internal/store"
)

// AddressService keeps the address book. When the book is not empty exactly
// one entry has IsDefault set.
type AddressService struct {
	Repo *repository.AddressRepository
	Bus  *events.Bus
}

func NewAddressService(r *repository.AddressRepository, bus *events.Bus) *AddressService {
	return &AddressService{Repo: r, Bus: bus}
}

func (s *AddressService) List(ctx context.Context) ([]model.Address, error) {
	addrs, err := s.Repo.List(ctx)
	if addrs == nil && err == nil {
		addrs = []model.Address{}
	}
	return addrs, err
}

// Default returns the default address, or false when the book is empty.
func (s *AddressService) Default(ctx context.Context) (model.Address, bool, error) {
	addrs, err := s.Repo.List(ctx)
	if err != nil {
		return model.Address{}, false, err
	}
	for _, a := range addrs {
		if a.IsDefault {
			return a, true, nil
		}
	}
	return model.Address{}, false, nil
}

// Prefill converts the address at index into checkout form fields.
func (s *AddressService) Prefill(ctx context.Context, index int) (model.AddressInput, error) {
	a, err := s.Repo.Get(ctx, index)
	if err != nil {
		return model.AddressInput{}, err
	}
	return model.AddressInput{Name: a.Name, Email: a.Email, Mobile: a.Mobile, Street: a.Street, City: a.City, Zip: a.Zip}, nil
}

// Add validates in and appends it. The first address becomes the default.
func (s *AddressService) Add(ctx context.Context, in model.AddressInput) ([]model.Address, error) {
	addr, err := model.ParseAddress(in)
	if err != nil {
		return nil, err
	}
	addrs, err := s.mutate(ctx, func(addrs []model.Address) ([]model.Address, error) {
		return append(addrs, addr), nil
	})
	if err != nil {
		return nil, err
	}
	s.Bus.Notify(events.LevelSuccess, "Address saved")
	return addrs, nil
}

// Update replaces the address at index, keeping its default flag.
func (s *AddressService) Update(ctx context.Context, index int, in model.AddressInput) ([]model.Address, error) {
	addr, err := model.ParseAddress(in)
	if err != nil {
		return nil, err
	}
	addrs, err := s.mutate(ctx, func(addrs []model.Address) ([]model.Address, error) {
		if err := repository.CheckIndex(index, len(addrs)); err != nil {
			return nil, err
		}
		addr.IsDefault = addrs[index].IsDefault
		addrs[index] = addr
		return addrs, nil
	})
	if err != nil {
		return nil, err
	}
	s.Bus.Notify(events.LevelSuccess, "Address updated")
	return addrs, nil
}

// Remove deletes the address at index.
func (s *AddressService) Remove(ctx context.Context, index int) ([]model.Address, error) {
	addrs, err := s.mutate(ctx, func(addrs []model.Address) ([]model.Address, error) {
		if err := repository.CheckIndex(index, len(addrs)); err != nil {
			return nil, err
		}
		return append(addrs[:index], addrs[index+1:]...), nil
	})
	if err != nil {
		return nil, err
	}
	s.Bus.Notify(events.LevelInfo, "Address removed")
	return addrs, nil
}

func (s *AddressService) SetDefault(ctx context.Context, index int) ([]model.Address, error) {
	return s.mutate(ctx, func(addrs []model.Address) ([]model.Address, error) {
		if err := repository.CheckIndex(index, len(addrs)); err != nil {
			return nil, err
		}
		for i := range addrs {
			addrs[i].IsDefault = i == index
		}
		return addrs, nil
	})
}

// mutate runs fn over the book in one transaction and repairs the default
// flag afterwards.
func (s *AddressService) mutate(ctx context.Context, fn func([]model.Address) ([]model.Address, error)) ([]model.Address, error) {
	var addrs []model.Address
	err := s.Repo.DB.Update(ctx, func(tx store.Tx) error {
		current, err := s.Repo.LoadTx(tx)
		if err != nil {
			return err
		}
		if addrs, err = fn(current); err != nil {
			return err
		}
		normalizeDefault(addrs)
		return s.Repo.SaveTx(tx, addrs)
	})
	if err != nil {
		return nil, err
	}
	return addrs, nil
}

// normalizeDefault leaves exactly one default: the first flagged entry, or
// the first entry when none is flagged.
func normalizeDefault(addrs []model.Address) {
	found := false
	for i := range addrs {
		if addrs[i].IsDefault && !found {
			found = true
			continue
		}
		addrs[i].IsDefault = false
	}
	if !found && len(addrs) > 0 {
		addrs[0].IsDefault = true
	}
}
