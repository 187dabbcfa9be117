package calculator

import "time"

// Expense is a single payment with the minimal information needed for balance calculations.
type Expense struct {
	Description string
	Amount      float64
	PaidBy      string
	SplitAmong  []string // Empty means split equally among all trip members
	Date        time.Time
}

// Trip is a read-only snapshot of a trip's members and expenses.
type Trip struct {
	Members  []string
	Expenses []Expense
}

// ExpenseShare returns the people an expense is split among and the share each one owes.
//
// An expense with no explicit split falls back to every trip member. If that is empty too,
// the share is 0 rather than a division by zero.
func ExpenseShare(expense Expense, members []string) ([]string, float64) {
	splitAmong := expense.SplitAmong
	if len(splitAmong) == 0 {
		splitAmong = members
	}
	if len(splitAmong) == 0 {
		return nil, 0
	}
	return splitAmong, expense.Amount / float64(len(splitAmong))
}
