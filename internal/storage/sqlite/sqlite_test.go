package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_Trips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateTrip generates ID and timestamp", func(t *testing.T) {
		trip := &models.Trip{
			Name:    "Weekend in Lisbon",
			Members: []string{"Alice", "Bob"},
		}

		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}
		if trip.ID == "" {
			t.Error("Expected trip ID to be generated")
		}
		if trip.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("CreateTrip keeps caller ID", func(t *testing.T) {
		trip := &models.Trip{ID: "trip_sample_001", Name: "Sample"}
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}
		if trip.ID != "trip_sample_001" {
			t.Errorf("ID = %s, want trip_sample_001", trip.ID)
		}
	})

	t.Run("GetTrip retrieves members in order", func(t *testing.T) {
		original := &models.Trip{
			Name:        "Ski trip",
			Description: "Alps",
			Members:     []string{"Zoe", "Adam", "Mia"},
		}
		if err := store.CreateTrip(ctx, original); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}

		retrieved, err := store.GetTrip(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}

		if retrieved.Name != original.Name || retrieved.Description != original.Description {
			t.Errorf("Trip mismatch: got %+v", retrieved)
		}
		if len(retrieved.Members) != 3 {
			t.Fatalf("Members count mismatch: got %d, want 3", len(retrieved.Members))
		}
		for i, name := range original.Members {
			if retrieved.Members[i] != name {
				t.Errorf("Member %d = %s, want %s", i, retrieved.Members[i], name)
			}
		}
		if len(retrieved.Expenses) != 0 {
			t.Errorf("Expected no expenses, got %d", len(retrieved.Expenses))
		}
	})

	t.Run("GetTrip returns ErrNotFound for nonexistent trip", func(t *testing.T) {
		_, err := store.GetTrip(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteTrip removes trip and expenses", func(t *testing.T) {
		trip := &models.Trip{Name: "Doomed", Members: []string{"Alice"}}
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}
		expense := &models.Expense{TripID: trip.ID, Description: "Fuel", Amount: 10, PaidBy: "Alice"}
		if err := store.AddExpense(ctx, expense); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}

		if err := store.DeleteTrip(ctx, trip.ID); err != nil {
			t.Fatalf("DeleteTrip failed: %v", err)
		}
		if _, err := store.GetTrip(ctx, trip.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
		if err := store.DeleteExpense(ctx, trip.ID, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected expense to be cascaded, got %v", err)
		}
		if err := store.DeleteTrip(ctx, trip.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestSQLiteStore_ListTrips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trips, err := store.ListTrips(ctx)
	if err != nil {
		t.Fatalf("ListTrips failed: %v", err)
	}
	if len(trips) != 0 {
		t.Fatalf("Expected no trips, got %d", len(trips))
	}

	older := &models.Trip{Name: "Older", CreatedAt: 1000, Members: []string{"A"}}
	newer := &models.Trip{Name: "Newer", CreatedAt: 2000, Members: []string{"B"}}
	for _, trip := range []*models.Trip{older, newer} {
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}
	}
	if err := store.AddExpense(ctx, &models.Expense{TripID: older.ID, Description: "X", Amount: 5, PaidBy: "A"}); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	trips, err = store.ListTrips(ctx)
	if err != nil {
		t.Fatalf("ListTrips failed: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("Expected 2 trips, got %d", len(trips))
	}
	if trips[0].Name != "Newer" || trips[1].Name != "Older" {
		t.Errorf("Expected newest first, got %s, %s", trips[0].Name, trips[1].Name)
	}
	if len(trips[1].Expenses) != 1 {
		t.Errorf("Expected listed trip to include expenses, got %d", len(trips[1].Expenses))
	}
}

func TestSQLiteStore_Members(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trip := &models.Trip{Name: "Road trip", Members: []string{"Alice", "Bob", "Charlie"}}
	if err := store.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	t.Run("AddMember appends", func(t *testing.T) {
		if err := store.AddMember(ctx, trip.ID, "Diana"); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		got, err := store.GetTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}
		if len(got.Members) != 4 || got.Members[3] != "Diana" {
			t.Errorf("Members = %v, want Diana last", got.Members)
		}
	})

	t.Run("AddMember rejects duplicates", func(t *testing.T) {
		err := store.AddMember(ctx, trip.ID, "Alice")
		if !errors.Is(err, storage.ErrAlreadyExists) {
			t.Errorf("Expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("AddMember to unknown trip", func(t *testing.T) {
		err := store.AddMember(ctx, "missing", "Alice")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("RemoveMember cascades to expenses and splits", func(t *testing.T) {
		paidByBob := &models.Expense{
			TripID: trip.ID, Description: "Gas", Amount: 60, PaidBy: "Bob",
			SplitAmong: []string{"Alice", "Bob", "Charlie"},
		}
		sharedWithBob := &models.Expense{
			TripID: trip.ID, Description: "Food", Amount: 30, PaidBy: "Alice",
			SplitAmong: []string{"Alice", "Bob", "Charlie"},
		}
		onlyBob := &models.Expense{
			TripID: trip.ID, Description: "Souvenir", Amount: 12, PaidBy: "Charlie",
			SplitAmong: []string{"Bob"},
		}
		for _, e := range []*models.Expense{paidByBob, sharedWithBob, onlyBob} {
			if err := store.AddExpense(ctx, e); err != nil {
				t.Fatalf("AddExpense failed: %v", err)
			}
		}

		if err := store.RemoveMember(ctx, trip.ID, "Bob"); err != nil {
			t.Fatalf("RemoveMember failed: %v", err)
		}

		got, err := store.GetTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}
		if got.HasMember("Bob") {
			t.Error("Expected Bob to be removed from members")
		}
		if len(got.Expenses) != 2 {
			t.Fatalf("Expected 2 remaining expenses, got %d", len(got.Expenses))
		}
		for _, e := range got.Expenses {
			if e.PaidBy == "Bob" {
				t.Errorf("Expense %s paid by Bob should be deleted", e.Description)
			}
			for _, p := range e.SplitAmong {
				if p == "Bob" {
					t.Errorf("Expense %s still split with Bob", e.Description)
				}
			}
		}
		// Souvenir lost its only participant: it now splits among everyone
		for _, e := range got.Expenses {
			if e.Description == "Souvenir" && len(e.SplitAmong) != 0 {
				t.Errorf("Souvenir split = %v, want empty", e.SplitAmong)
			}
		}
	})

	t.Run("RemoveMember unknown member", func(t *testing.T) {
		err := store.RemoveMember(ctx, trip.ID, "Nobody")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStore_Expenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trip := &models.Trip{Name: "Bali", Members: []string{"Alice", "Bob"}}
	other := &models.Trip{Name: "Other", Members: []string{"Carl"}}
	for _, tr := range []*models.Trip{trip, other} {
		if err := store.CreateTrip(ctx, tr); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}
	}

	t.Run("AddExpense generates ID and date and round-trips splits", func(t *testing.T) {
		expense := &models.Expense{
			TripID:      trip.ID,
			Description: "Hotel booking",
			Amount:      300.5,
			PaidBy:      "Alice",
			SplitAmong:  []string{"Bob", "Alice"},
		}
		if err := store.AddExpense(ctx, expense); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}
		if expense.ID == "" || expense.Date == 0 {
			t.Errorf("Expected ID and Date to be generated, got %+v", expense)
		}

		got, err := store.GetTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}
		if len(got.Expenses) != 1 {
			t.Fatalf("Expected 1 expense, got %d", len(got.Expenses))
		}
		e := got.Expenses[0]
		if e.Amount != 300.5 || e.PaidBy != "Alice" || e.Description != "Hotel booking" {
			t.Errorf("Expense mismatch: %+v", e)
		}
		if len(e.SplitAmong) != 2 || e.SplitAmong[0] != "Bob" || e.SplitAmong[1] != "Alice" {
			t.Errorf("SplitAmong = %v, want [Bob Alice]", e.SplitAmong)
		}
	})

	t.Run("AddExpense with empty split", func(t *testing.T) {
		expense := &models.Expense{TripID: trip.ID, Description: "Taxi", Amount: 20, PaidBy: "Bob"}
		if err := store.AddExpense(ctx, expense); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}
		got, err := store.GetTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}
		last := got.Expenses[len(got.Expenses)-1]
		if last.ID != expense.ID || len(last.SplitAmong) != 0 {
			t.Errorf("Expected last expense %s with empty split, got %+v", expense.ID, last)
		}
		// Reads encode as "split_among": [] like freshly created expenses
		if last.SplitAmong == nil {
			t.Error("Expected non-nil empty split list")
		}
	})

	t.Run("AddExpense to unknown trip", func(t *testing.T) {
		err := store.AddExpense(ctx, &models.Expense{TripID: "missing", Description: "X", PaidBy: "A"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteExpense scoped to trip", func(t *testing.T) {
		expense := &models.Expense{TripID: trip.ID, Description: "Dinner", Amount: 50, PaidBy: "Alice"}
		if err := store.AddExpense(ctx, expense); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}

		if err := store.DeleteExpense(ctx, other.ID, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for foreign trip, got %v", err)
		}
		if err := store.DeleteExpense(ctx, trip.ID, expense.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if err := store.DeleteExpense(ctx, trip.ID, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestSQLiteStore_StatsAndReset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trip := &models.Trip{Name: "Bali", Members: []string{"Alice"}}
	if err := store.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	for _, amount := range []float64{300, 120, 80} {
		e := &models.Expense{TripID: trip.ID, Description: "X", Amount: amount, PaidBy: "Alice"}
		if err := store.AddExpense(ctx, e); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TripCount != 1 || stats.ExpenseCount != 3 || stats.TotalAmount != 500 {
		t.Errorf("Stats = %+v, want 1 trip, 3 expenses, 500 total", stats)
	}

	if err := store.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	stats, err = store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TripCount != 0 || stats.ExpenseCount != 0 || stats.TotalAmount != 0 {
		t.Errorf("Stats after reset = %+v, want zeros", stats)
	}
}
