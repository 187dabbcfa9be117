package models

import "github.com/mmynk/tripsplit/internal/calculator"

// TripDetails is a trip together with its derived balances and settlements.
type TripDetails struct {
	Trip *Trip `json:"trip"`

	// Balances maps every member (and any non-member named in an expense) to their
	// unrounded net balance.
	Balances calculator.Balances `json:"balances"`

	// MemberBalances is the paid/owed breakdown behind Balances, sorted by name.
	MemberBalances []calculator.MemberBalance `json:"member_balances"`

	// Settlements are the transfers that settle the trip, in the order generated.
	Settlements []calculator.Settlement `json:"settlements"`
}

// TripOverview summarizes a trip for listings (public summary and admin dashboard).
type TripOverview struct {
	ID            string                  `json:"id"`
	Name          string                  `json:"name"`
	Description   string                  `json:"description"`
	CreatedAt     int64                   `json:"created_at"`
	MembersCount  int                     `json:"members_count"`
	ExpensesCount int                     `json:"expenses_count"`
	TotalAmount   float64                 `json:"total_amount"`
	Settlements   []calculator.Settlement `json:"settlements"`
}

// NewTripOverview computes the overview of a trip, including its settlements.
func NewTripOverview(trip *Trip) TripOverview {
	return TripOverview{
		ID:            trip.ID,
		Name:          trip.Name,
		Description:   trip.Description,
		CreatedAt:     trip.CreatedAt,
		MembersCount:  len(trip.Members),
		ExpensesCount: len(trip.Expenses),
		TotalAmount:   trip.TotalAmount(),
		Settlements:   calculator.ComputeSettlements(trip.Snapshot()),
	}
}

// Stats reports database-wide totals.
type Stats struct {
	TripCount    int     `json:"trip_count"`
	ExpenseCount int     `json:"expense_count"`
	TotalAmount  float64 `json:"total_amount"`
}
