package models

// Expense represents a single payment made by one person for the trip.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// TripID is the trip this expense belongs to.
	TripID string `json:"trip_id"`

	// Description is what was paid for (e.g., "Hotel booking").
	Description string `json:"description"`

	// Amount is the total paid. Never negative.
	Amount float64 `json:"amount"`

	// PaidBy is the name of the member who paid.
	PaidBy string `json:"paid_by"`

	// SplitAmong is the list of member names sharing this expense.
	// Empty means the expense is split equally among all trip members.
	SplitAmong []string `json:"split_among"`

	// Date is the Unix timestamp when the expense was recorded.
	Date int64 `json:"date"`
}
