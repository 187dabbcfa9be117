// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tripsplit/internal/models"
)

var (
	// ErrNotFound is returned (wrapped) when a trip, member or expense does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned (wrapped) when adding a member that is already present.
	ErrAlreadyExists = errors.New("already exists")
)

// Store defines the interface for trip storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateTrip persists a new trip with its members.
	// The trip.ID and trip.CreatedAt fields are populated by the store when empty.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a trip by ID, including members and expenses.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// ListTrips retrieves all trips, newest first, including members and expenses.
	ListTrips(ctx context.Context) ([]*models.Trip, error)

	// DeleteTrip removes a trip and all its expenses.
	DeleteTrip(ctx context.Context, tripID string) error

	// AddMember appends a member to the trip.
	AddMember(ctx context.Context, tripID, name string) error

	// RemoveMember removes a member from the trip, deletes every expense they paid and
	// removes them from the split list of the remaining expenses.
	RemoveMember(ctx context.Context, tripID, name string) error

	// AddExpense persists a new expense for expense.TripID.
	// The expense.ID and expense.Date fields are populated by the store when empty.
	AddExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense. An expense belonging to another trip is not found.
	DeleteExpense(ctx context.Context, tripID, expenseID string) error

	// Stats returns database-wide totals.
	Stats(ctx context.Context) (*models.Stats, error)

	// Close releases any resources held by the store.
	Close() error
}
