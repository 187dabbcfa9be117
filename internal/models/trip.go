package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/calculator"
)

// Trip represents a shared trip and everything spent on it.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	// Knowing the ID is what grants access to the trip, see auth.TokenManager.
	ID string `json:"id"`

	// Name is the display name of the trip (e.g., "Sample Trip to Bali").
	Name string `json:"name"`

	// Description is an optional free-form note.
	Description string `json:"description"`

	// Members is the list of member names, in the order they joined.
	Members []string `json:"members"`

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64 `json:"created_at"`

	// Expenses are the payments recorded for this trip, oldest first.
	Expenses []Expense `json:"expenses"`
}

// HasMember reports whether name is one of the trip's members.
func (t *Trip) HasMember(name string) bool {
	for _, m := range t.Members {
		if m == name {
			return true
		}
	}
	return false
}

// TotalAmount returns the sum of all expense amounts.
// Summed in decimal so that e.g. 0.1 + 0.2 reports 0.3.
func (t *Trip) TotalAmount() float64 {
	total := decimal.Zero
	for _, e := range t.Expenses {
		total = total.Add(decimal.NewFromFloat(e.Amount))
	}
	return total.InexactFloat64()
}

// Snapshot converts the trip into the calculator's input format.
func (t *Trip) Snapshot() calculator.Trip {
	expenses := make([]calculator.Expense, len(t.Expenses))
	for i, e := range t.Expenses {
		expenses[i] = calculator.Expense{
			Description: e.Description,
			Amount:      e.Amount,
			PaidBy:      e.PaidBy,
			SplitAmong:  e.SplitAmong,
			Date:        time.Unix(e.Date, 0),
		}
	}
	return calculator.Trip{
		Members:  t.Members,
		Expenses: expenses,
	}
}
