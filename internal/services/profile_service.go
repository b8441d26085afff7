package services

import (
	"context"
	"errors"
	"time"

	"jobadmin/internal/core"
	"jobadmin/internal/store"
)

// ProfileService manages business settings.
type ProfileService struct {
	store store.Store
}

func NewProfileService(st store.Store) *ProfileService {
	return &ProfileService{store: st}
}

// Get returns the profile, creating defaults when none exists yet.
func (s *ProfileService) Get(ctx context.Context, userID string) (store.BusinessProfile, error) {
	p, err := s.store.GetBusinessProfile(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		p = store.BusinessProfile{UserID: userID, TaxRate: 0.2, UpdatedAt: time.Now()}
		if err := s.store.UpsertBusinessProfile(ctx, p); err != nil {
			return store.BusinessProfile{}, err
		}
		return p, nil
	}
	return p, err
}

// ProfileUpdate carries a partial settings change. Nil fields keep the
// stored value.
type ProfileUpdate struct {
	BusinessName       *string
	TradeType          *string
	WeeklyTargetIncome *core.Money
	TaxRate            *float64
	FixedWeeklyCosts   *core.Money
}

func (s *ProfileService) Update(ctx context.Context, userID string, upd ProfileUpdate) (store.BusinessProfile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return store.BusinessProfile{}, err
	}

	if upd.BusinessName != nil {
		p.BusinessName = *upd.BusinessName
	}
	if upd.TradeType != nil {
		p.TradeType = *upd.TradeType
	}
	if upd.WeeklyTargetIncome != nil {
		p.WeeklyTargetIncome = *upd.WeeklyTargetIncome
	}
	if upd.TaxRate != nil {
		p.TaxRate = *upd.TaxRate
	}
	if upd.FixedWeeklyCosts != nil {
		p.FixedWeeklyCosts = *upd.FixedWeeklyCosts
	}
	p.UpdatedAt = time.Now()

	if err := s.store.UpsertBusinessProfile(ctx, p); err != nil {
		return store.BusinessProfile{}, err
	}
	return p, nil
}
