package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/tripsplit/internal/models"
)

// SampleTripID is the fixed ID of the sample trip.
const SampleTripID = "trip_sample_001"

// SeedSampleData adds the sample Bali trip. It does nothing when any trip already exists,
// and reports whether data was added.
func (s *TripService) SeedSampleData(ctx context.Context) (bool, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return false, err
	}
	if stats.TripCount > 0 {
		slog.Info("Database already contains data, skipping sample data")
		return false, nil
	}

	members := []string{"Alice Johnson", "Bob Smith", "Charlie Brown"}
	trip := &models.Trip{
		ID:          SampleTripID,
		Name:        "Sample Trip to Bali",
		Description: "Test trip for expense management",
		Members:     members,
	}
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		return false, fmt.Errorf("failed to create sample trip: %w", err)
	}

	expenses := []models.Expense{
		{ID: "exp_sample_001", Description: "Hotel booking", Amount: 300, PaidBy: "Alice Johnson"},
		{ID: "exp_sample_002", Description: "Restaurant dinner", Amount: 120, PaidBy: "Bob Smith"},
		{ID: "exp_sample_003", Description: "Transportation", Amount: 80, PaidBy: "Charlie Brown"},
	}
	for i := range expenses {
		expenses[i].TripID = trip.ID
		expenses[i].SplitAmong = members
		if err := s.store.AddExpense(ctx, &expenses[i]); err != nil {
			return false, fmt.Errorf("failed to add sample expense: %w", err)
		}
	}
	trip.Expenses = expenses

	slog.Info("Sample data added",
		"trip", trip.Name,
		"expenses", len(expenses),
		"total_amount", trip.TotalAmount(),
	)
	return true, nil
}
