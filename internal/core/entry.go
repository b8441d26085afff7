package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

var ErrEmptyDate = errors.New("date is required")

// Entry is a single dated record owned by one user. Date is carried in its
// wire form and resolved through ParseLocalDate exactly once, during
// bucketing; entries with unparseable dates are skipped there rather than
// failing a whole aggregation.
type Entry struct {
	ID           string    `json:"id"`
	UserID       string    `json:"-"`
	Amount       Money     `json:"amount"`
	Date         string    `json:"date"`
	Counterparty string    `json:"-"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

func (e Entry) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Date) == "" {
		return ErrEmptyDate
	}
	if _, err := ParseLocalDate(e.Date); err != nil {
		return err
	}
	return nil
}

// ExpenseCounterpartyAliases are the legacy field names older clients used
// for an expense's counterparty, in coalescing priority order.
var ExpenseCounterpartyAliases = []string{
	"supplierName", "customer", "customerName", "vendor", "name",
}

// CoalesceCounterparty picks the first non-empty value. Alias handling
// lives here, at the data-model boundary, so it is never re-inferred at
// individual call sites.
func CoalesceCounterparty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// IncomeRecord is an Entry whose counterparty is a customer.
type IncomeRecord struct {
	Entry
}

// ExpenseRecord is an Entry whose counterparty is a supplier. Decoding
// accepts all legacy aliases for the supplier field; encoding always emits
// the canonical "supplierName".
type ExpenseRecord struct {
	Entry
}

type incomeWire struct {
	ID           string    `json:"id"`
	Amount       Money     `json:"amount"`
	Date         string    `json:"date"`
	CustomerName string    `json:"customerName,omitempty"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

func (r IncomeRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(incomeWire{
		ID:           r.ID,
		Amount:       r.Amount,
		Date:         r.Date,
		CustomerName: r.Counterparty,
		Description:  r.Description,
		CreatedAt:    r.CreatedAt,
	})
}

func (r *IncomeRecord) UnmarshalJSON(b []byte) error {
	var w incomeWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	r.Entry = Entry{
		ID:           w.ID,
		Amount:       w.Amount,
		Date:         w.Date,
		Counterparty: w.CustomerName,
		Description:  w.Description,
		CreatedAt:    w.CreatedAt,
	}
	return nil
}

type expenseWire struct {
	ID           string    `json:"id"`
	Amount       Money     `json:"amount"`
	Date         string    `json:"date"`
	SupplierName string    `json:"supplierName,omitempty"`
	Customer     string    `json:"customer,omitempty"`
	CustomerName string    `json:"customerName,omitempty"`
	Vendor       string    `json:"vendor,omitempty"`
	Name         string    `json:"name,omitempty"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

func (r ExpenseRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(expenseWire{
		ID:           r.ID,
		Amount:       r.Amount,
		Date:         r.Date,
		SupplierName: r.Counterparty,
		Description:  r.Description,
		CreatedAt:    r.CreatedAt,
	})
}

func (r *ExpenseRecord) UnmarshalJSON(b []byte) error {
	var w expenseWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	r.Entry = Entry{
		ID:           w.ID,
		Amount:       w.Amount,
		Date:         w.Date,
		Counterparty: CoalesceCounterparty(w.SupplierName, w.Customer, w.CustomerName, w.Vendor, w.Name),
		Description:  w.Description,
		CreatedAt:    w.CreatedAt,
	}
	return nil
}
