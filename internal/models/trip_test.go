package models

import (
	"testing"
)

func TestTrip_TotalAmount(t *testing.T) {
	tests := []struct {
		name     string
		expenses []Expense
		want     float64
	}{
		{name: "no expenses", expenses: nil, want: 0},
		{name: "decimal sum", expenses: []Expense{{Amount: 0.1}, {Amount: 0.2}}, want: 0.3},
		{name: "reference trip", expenses: []Expense{{Amount: 300}, {Amount: 120}, {Amount: 80}}, want: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := &Trip{Expenses: tt.expenses}
			if got := trip.TotalAmount(); got != tt.want {
				t.Errorf("TotalAmount() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrip_Snapshot(t *testing.T) {
	trip := &Trip{
		ID:      "trip-1",
		Members: []string{"Alice", "Bob"},
		Expenses: []Expense{
			{ID: "e1", Description: "Fuel", Amount: 40, PaidBy: "Alice", Date: 1700000000},
			{ID: "e2", Description: "Lunch", Amount: 20, PaidBy: "Bob", SplitAmong: []string{"Alice"}},
		},
	}

	snap := trip.Snapshot()
	if len(snap.Members) != 2 {
		t.Errorf("expected 2 members, got %d", len(snap.Members))
	}
	if len(snap.Expenses) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(snap.Expenses))
	}
	if snap.Expenses[0].PaidBy != "Alice" || snap.Expenses[0].Amount != 40 {
		t.Errorf("unexpected first expense: %+v", snap.Expenses[0])
	}
	if snap.Expenses[0].Date.Unix() != 1700000000 {
		t.Errorf("date = %d, want 1700000000", snap.Expenses[0].Date.Unix())
	}
	if len(snap.Expenses[1].SplitAmong) != 1 || snap.Expenses[1].SplitAmong[0] != "Alice" {
		t.Errorf("split = %v, want [Alice]", snap.Expenses[1].SplitAmong)
	}
}

func TestNewTripOverview(t *testing.T) {
	members := []string{"Alice", "Bob", "Charlie"}
	trip := &Trip{
		ID:      "trip-1",
		Name:    "Bali",
		Members: members,
		Expenses: []Expense{
			{Amount: 300, PaidBy: "Alice", SplitAmong: members},
			{Amount: 120, PaidBy: "Bob", SplitAmong: members},
			{Amount: 80, PaidBy: "Charlie", SplitAmong: members},
		},
	}

	overview := NewTripOverview(trip)
	if overview.MembersCount != 3 || overview.ExpensesCount != 3 {
		t.Errorf("counts = %d/%d, want 3/3", overview.MembersCount, overview.ExpensesCount)
	}
	if overview.TotalAmount != 500 {
		t.Errorf("total = %v, want 500", overview.TotalAmount)
	}
	if len(overview.Settlements) != 2 {
		t.Errorf("expected 2 settlements, got %d", len(overview.Settlements))
	}
	if !trip.HasMember("Bob") || trip.HasMember("Zed") {
		t.Error("HasMember returned unexpected result")
	}
}
