package services

import (
	"context"

	"DripmenStore/internal/events"
	"DripmenStore/internal/model"
	"DripmenStore/internal/repository"
)

type CardService struct {
	Repo *repository.CardRepository
	Bus  *events.Bus
}

func NewCardService(r *repository.CardRepository, bus *events.Bus) *CardService {
	return &CardService{Repo: r, Bus: bus}
}

func (s *CardService) List(ctx context.Context) ([]model.PaymentCard, error) {
	cards, err := s.Repo.List(ctx)
	if cards == nil && err == nil {
		cards = []model.PaymentCard{}
	}
	return cards, err
}

// Add validates in and stores the card masked to its last four digits.
func (s *CardService) Add(ctx context.Context, in model.CardInput) ([]model.PaymentCard, error) {
	card, err := model.ParseCard(in)
	if err != nil {
		return nil, err
	}
	cards, err := s.Repo.Add(ctx, card)
	if err != nil {
		return nil, err
	}
	s.Bus.Notify(events.LevelSuccess, "Card added")
	return cards, nil
}

func (s *CardService) Remove(ctx context.Context, index int) ([]model.PaymentCard, error) {
	cards, err := s.Repo.Remove(ctx, index)
	if err != nil {
		return nil, err
	}
	s.Bus.Notify(events.LevelInfo, "Card removed")
	return cards, nil
}
