package services

import (
	"context"
	"testing"

	"jobadmin/internal/core"
	"jobadmin/internal/store/memory"
)

func TestProfileService_GetCreatesDefaults(t *testing.T) {
	svc := NewProfileService(memory.New())

	p, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if p.UserID != "u1" {
		t.Errorf("Get() UserID = %v, want u1", p.UserID)
	}
	if p.TaxRate != 0.2 {
		t.Errorf("Get() TaxRate = %v, want 0.2 default", p.TaxRate)
	}
	if p.WeeklyTargetIncome.Pence != 0 {
		t.Errorf("Get() target = %d, want 0", p.WeeklyTargetIncome.Pence)
	}
}

func TestProfileService_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(memory.New())

	name := "Joe's Plumbing"
	target := core.Money{Pence: 100000}
	if _, err := svc.Update(ctx, "u1", ProfileUpdate{BusinessName: &name, WeeklyTargetIncome: &target}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	// Second partial update must not clobber earlier fields.
	rate := 0.25
	p, err := svc.Update(ctx, "u1", ProfileUpdate{TaxRate: &rate})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if p.BusinessName != "Joe's Plumbing" {
		t.Errorf("BusinessName = %v, want preserved value", p.BusinessName)
	}
	if p.WeeklyTargetIncome.Pence != 100000 {
		t.Errorf("WeeklyTargetIncome = %d, want 100000", p.WeeklyTargetIncome.Pence)
	}
	if p.TaxRate != 0.25 {
		t.Errorf("TaxRate = %v, want 0.25", p.TaxRate)
	}
}
