package services

import (
	"context"

	"github.com/relawan/portal/internal/store"
	"github.com/relawan/portal/pkg/sanitizer"
)

type NewDonation struct {
	Donator string `json:"donator" validate:"required,max=64"`
	Money   int64  `json:"money" validate:"gt=0"`
}

type Donations struct {
	repo DonationRepository
}

func (s *Donations) Add(ctx context.Context, in NewDonation) (store.Donation, error) {
	d := store.Donation{Donator: sanitizer.PlainText(in.Donator), Money: in.Money}
	if err := s.repo.Create(ctx, &d); err != nil {
		return store.Donation{}, err
	}
	return d, nil
}

func (s *Donations) List(ctx context.Context) ([]store.Donation, error) {
	return s.repo.List(ctx)
}
