// Package services holds the application use cases between the HTTP
// layer and the store.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"jobadmin/internal/core"
	"jobadmin/internal/store"
)

// DashboardService assembles the weekly summary.
type DashboardService struct {
	store store.Store
}

func NewDashboardService(st store.Store) *DashboardService {
	return &DashboardService{store: st}
}

// WeeklySummary fetches the profile and both entry lists concurrently
// and folds them into the summary for the week containing now. A failed
// fetch fails the whole summary, partial results are never served.
func (s *DashboardService) WeeklySummary(ctx context.Context, userID string, now time.Time) (core.WeeklySummary, error) {
	since := core.ResolveWeek(now).StartDate()

	var (
		profile  store.BusinessProfile
		income   []core.Entry
		expenses []core.Entry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.store.GetBusinessProfile(gctx, userID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("get business profile: %w", err)
		}
		// A missing profile means no target has been set yet.
		if err == nil {
			profile = p
		}
		return nil
	})
	g.Go(func() error {
		list, err := s.store.ListIncome(gctx, userID, since)
		if err != nil {
			return fmt.Errorf("list income: %w", err)
		}
		income = list
		return nil
	})
	g.Go(func() error {
		list, err := s.store.ListExpenses(gctx, userID, since)
		if err != nil {
			return fmt.Errorf("list expenses: %w", err)
		}
		expenses = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return core.WeeklySummary{}, err
	}

	incomeRecords := make([]core.IncomeRecord, len(income))
	for i, e := range income {
		incomeRecords[i] = core.IncomeRecord{Entry: e}
	}
	expenseRecords := make([]core.ExpenseRecord, len(expenses))
	for i, e := range expenses {
		expenseRecords[i] = core.ExpenseRecord{Entry: e}
	}

	return core.BuildWeeklySummary(incomeRecords, expenseRecords, profile.WeeklyTargetIncome, now), nil
}
