package calculator

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// Epsilon is the tolerance below which a balance, remaining debt or remaining credit
// counts as settled. Float division leaves residuals around 1e-13 on typical currency
// amounts, which would otherwise produce extra 0.00 transfers.
const Epsilon = 1e-9

// SettlementStatus is the state a computed settlement is emitted in.
type SettlementStatus string

// StatusPending is the only status the calculator emits. Settlements are recomputed from
// scratch on every call and never transition.
const StatusPending SettlementStatus = "pending"

// Balances maps member name to net balance.
// Positive = is owed money, negative = owes money. Values are not rounded.
type Balances map[string]float64

// MemberBalance represents the balance information for one trip member.
type MemberBalance struct {
	MemberName string  `json:"member_name"`
	NetBalance float64 `json:"net_balance"` // Positive = owed money, Negative = owes money
	TotalPaid  float64 `json:"total_paid"`  // Total amount paid across all expenses
	TotalOwed  float64 `json:"total_owed"`  // Total share of expenses this person owes
}

// Settlement represents a recommended transfer from a debtor to a creditor.
type Settlement struct {
	From   string           `json:"from"` // Person who owes
	To     string           `json:"to"`   // Person who is owed
	Amount float64          `json:"amount"`
	Status SettlementStatus `json:"status"`
}

// ledger accumulates paid/owed totals per name, creating entries on first use.
// order keeps names in the order they were first seen: members first, then any
// non-member payer or participant as it appears in the expenses.
type ledger struct {
	entries map[string]*MemberBalance
	order   []string
}

func (l *ledger) entry(name string) *MemberBalance {
	bal, exists := l.entries[name]
	if !exists {
		bal = &MemberBalance{MemberName: name}
		l.entries[name] = bal
		l.order = append(l.order, name)
	}
	return bal
}

func buildLedger(trip Trip) *ledger {
	l := &ledger{entries: make(map[string]*MemberBalance, len(trip.Members))}
	for _, member := range trip.Members {
		l.entry(member)
	}

	for _, expense := range trip.Expenses {
		splitAmong, share := ExpenseShare(expense, trip.Members)

		// Payer is credited the full amount even if they are not a member
		payer := l.entry(expense.PaidBy)
		payer.TotalPaid += expense.Amount
		payer.NetBalance += expense.Amount

		for _, person := range splitAmong {
			bal := l.entry(person)
			bal.TotalOwed += share
			bal.NetBalance -= share
		}
	}
	return l
}

// ComputeBalances returns the net balance of every member and of every name that appears
// as a payer or split participant in any expense. Members without expenses are present at 0.
func ComputeBalances(trip Trip) Balances {
	l := buildLedger(trip)
	balances := make(Balances, len(l.order))
	for name, bal := range l.entries {
		balances[name] = bal.NetBalance
	}
	return balances
}

// ComputeMemberBalances returns the paid/owed breakdown per name, sorted by name.
func ComputeMemberBalances(trip Trip) []MemberBalance {
	l := buildLedger(trip)
	memberBalances := make([]MemberBalance, 0, len(l.order))
	for _, name := range l.order {
		memberBalances = append(memberBalances, *l.entries[name])
	}
	slices.SortFunc(memberBalances, func(a, b MemberBalance) int {
		return cmp.Compare(a.MemberName, b.MemberName)
	})
	return memberBalances
}

// position is a name with an outstanding amount, always stored as a positive value.
type position struct {
	name      string
	remaining float64
}

// ComputeSettlements returns the transfers that zero out all balances of a trip.
//
// Algorithm (greedy, largest outstanding first):
//   - debtors sorted by balance ascending (owes the most first)
//   - creditors sorted by balance descending (owed the most first), order fixed once
//   - each debtor pays creditors in order, min(debt, credit) per transfer
//   - creditor credit depletes across debtors and is never reset
//
// This is an approximation: it does not guarantee the minimum number of transfers.
// Amounts are rounded to 2 decimals; balances used for matching are not.
func ComputeSettlements(trip Trip) []Settlement {
	settlements := []Settlement{}
	if len(trip.Expenses) == 0 {
		return settlements
	}

	l := buildLedger(trip)

	var debtors, creditors []position
	for _, name := range l.order {
		amount := l.entries[name].NetBalance
		if amount < -Epsilon {
			debtors = append(debtors, position{name: name, remaining: -amount})
		} else if amount > Epsilon {
			creditors = append(creditors, position{name: name, remaining: amount})
		}
	}

	// Largest outstanding first; equal amounts keep first-seen order
	byRemaining := func(a, b position) int {
		return cmp.Compare(b.remaining, a.remaining)
	}
	slices.SortStableFunc(debtors, byRemaining)
	slices.SortStableFunc(creditors, byRemaining)

	for _, debtor := range debtors {
		settlements = matchDebtor(debtor, creditors, settlements)
	}

	return settlements
}

// matchDebtor pays off one debtor against creditors in order, mutating the creditors'
// remaining credit in place.
func matchDebtor(debtor position, creditors []position, settlements []Settlement) []Settlement {
	debt := debtor.remaining
	for i := range creditors {
		creditor := &creditors[i]
		if creditor.remaining <= Epsilon {
			continue
		}

		amount := min(debt, creditor.remaining)
		settlements = append(settlements, Settlement{
			From:   debtor.name,
			To:     creditor.name,
			Amount: roundCents(amount),
			Status: StatusPending,
		})

		debt -= amount
		creditor.remaining -= amount

		if debt <= Epsilon {
			break
		}
	}
	return settlements
}

// roundCents rounds half away from zero to 2 decimal places.
func roundCents(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}
