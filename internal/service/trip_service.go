// Package service implements trip management on top of storage and the settlement calculator.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// TripService handles trips, members, expenses and settlements.
type TripService struct {
	store   storage.Store
	tokens  *auth.TokenManager
	admin   auth.Authenticator
	metrics *metrics.Metrics
}

// NewTripService creates a new TripService.
// admin may be nil, in which case admin login is disabled.
func NewTripService(store storage.Store, tokens *auth.TokenManager, admin auth.Authenticator, m *metrics.Metrics) *TripService {
	return &TripService{
		store:   store,
		tokens:  tokens,
		admin:   admin,
		metrics: m,
	}
}

// AddExpenseInput is the data needed to record an expense.
type AddExpenseInput struct {
	TripID      string
	Description string
	Amount      float64
	PaidBy      string
	SplitAmong  []string
}

// normalizeNames trims names, drops empty ones and removes duplicates, keeping order.
func normalizeNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// validateMembers checks that every name is a member of the trip.
func validateMembers(field string, names []string, trip *models.Trip) error {
	for _, n := range names {
		if !trip.HasMember(n) {
			return invalid("%s '%s' must be a trip member", field, n)
		}
	}
	return nil
}

// settle computes settlements for a trip and records the run.
func (s *TripService) settle(trip *models.Trip) []calculator.Settlement {
	settlements := calculator.ComputeSettlements(trip.Snapshot())
	s.metrics.ObserveSettlement(len(settlements))
	return settlements
}

// getTrip loads a trip, translating storage errors.
func (s *TripService) getTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, fromStore(err)
	}
	return trip, nil
}

// CreateTrip creates a new trip with an initial member list.
func (s *TripService) CreateTrip(ctx context.Context, name, description string, members []string) (*models.Trip, error) {
	slog.Info("CreateTrip request received",
		"name", name,
		"members_count", len(members),
	)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name required")
	}

	trip := &models.Trip{
		Name:        name,
		Description: strings.TrimSpace(description),
		Members:     normalizeNames(members),
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		slog.Error("CreateTrip failed", "error", err)
		return nil, err
	}
	s.metrics.IncTripOperation("create_trip")

	slog.Info("Trip created", "trip_id", trip.ID)
	return trip, nil
}

// EnterTrip exchanges a typed trip ID for a capability token on that trip.
func (s *TripService) EnterTrip(ctx context.Context, tripID, enteredID string) (string, error) {
	slog.Info("EnterTrip request received", "trip_id", tripID)

	if _, err := s.getTrip(ctx, tripID); err != nil {
		slog.Warn("EnterTrip failed - trip not found", "trip_id", tripID, "error", err)
		return "", err
	}

	entered := strings.TrimSpace(enteredID)
	if entered == "" {
		return "", invalid("please enter the trip id")
	}
	if entered != tripID {
		slog.Warn("EnterTrip failed - id mismatch", "trip_id", tripID)
		return "", ErrInvalidTripID
	}

	token, err := s.tokens.IssueTripToken(tripID)
	if err != nil {
		slog.Error("EnterTrip failed - could not issue token", "trip_id", tripID, "error", err)
		return "", err
	}

	slog.Info("Trip access granted", "trip_id", tripID)
	return token, nil
}

// GetTripDetails returns a trip with its balances and settlements.
func (s *TripService) GetTripDetails(ctx context.Context, tripID string) (*models.TripDetails, error) {
	slog.Info("GetTripDetails request received", "trip_id", tripID)

	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		slog.Error("GetTripDetails failed", "trip_id", tripID, "error", err)
		return nil, err
	}

	snapshot := trip.Snapshot()
	details := &models.TripDetails{
		Trip:           trip,
		Balances:       calculator.ComputeBalances(snapshot),
		MemberBalances: calculator.ComputeMemberBalances(snapshot),
		Settlements:    s.settle(trip),
	}

	slog.Info("GetTripDetails successful",
		"trip_id", tripID,
		"members_count", len(trip.Members),
		"expenses_count", len(trip.Expenses),
		"settlements_count", len(details.Settlements),
	)
	return details, nil
}

// GetSettlements returns the settlements of a trip and its total amount.
func (s *TripService) GetSettlements(ctx context.Context, tripID string) ([]calculator.Settlement, float64, error) {
	slog.Info("GetSettlements request received", "trip_id", tripID)

	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		slog.Error("GetSettlements failed", "trip_id", tripID, "error", err)
		return nil, 0, err
	}

	settlements := s.settle(trip)
	return settlements, trip.TotalAmount(), nil
}

// AddMember adds a member and returns the updated member list.
func (s *TripService) AddMember(ctx context.Context, tripID, name string) ([]string, error) {
	slog.Info("AddMember request received", "trip_id", tripID, "name", name)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name required")
	}

	if err := s.store.AddMember(ctx, tripID, name); err != nil {
		slog.Error("AddMember failed", "trip_id", tripID, "error", err)
		return nil, fromStore(err)
	}
	s.metrics.IncTripOperation("add_member")

	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	slog.Info("Member added", "trip_id", tripID, "name", name)
	return trip.Members, nil
}

// DeleteMember removes a member along with the expenses they paid and their share of
// other expenses. Returns the updated member list.
func (s *TripService) DeleteMember(ctx context.Context, tripID, name string) ([]string, error) {
	slog.Info("DeleteMember request received", "trip_id", tripID, "name", name)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name required")
	}

	// Distinguish a missing trip from a missing member
	if _, err := s.getTrip(ctx, tripID); err != nil {
		return nil, err
	}

	if err := s.store.RemoveMember(ctx, tripID, name); err != nil {
		slog.Error("DeleteMember failed", "trip_id", tripID, "error", err)
		return nil, fromStore(err)
	}
	s.metrics.IncTripOperation("delete_member")

	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	slog.Info("Member deleted", "trip_id", tripID, "name", name)
	return trip.Members, nil
}

// AddExpense records an expense. The payer and every split participant must be members.
func (s *TripService) AddExpense(ctx context.Context, in AddExpenseInput) (*models.Expense, error) {
	slog.Info("AddExpense request received",
		"trip_id", in.TripID,
		"amount", in.Amount,
		"paid_by", in.PaidBy,
		"split_count", len(in.SplitAmong),
	)

	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, invalid("description required")
	}
	if math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) || in.Amount < 0 {
		return nil, invalid("amount must be a non-negative number")
	}
	paidBy := strings.TrimSpace(in.PaidBy)
	if paidBy == "" {
		return nil, invalid("paid_by required")
	}

	trip, err := s.getTrip(ctx, in.TripID)
	if err != nil {
		slog.Error("AddExpense failed - trip not found", "trip_id", in.TripID, "error", err)
		return nil, err
	}

	splitAmong := normalizeNames(in.SplitAmong)
	if err := validateMembers("paid_by", []string{paidBy}, trip); err != nil {
		return nil, err
	}
	if err := validateMembers("split_among", splitAmong, trip); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		TripID:      trip.ID,
		Description: description,
		Amount:      in.Amount,
		PaidBy:      paidBy,
		SplitAmong:  splitAmong,
	}
	if err := s.store.AddExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "trip_id", trip.ID, "error", err)
		return nil, fromStore(err)
	}
	s.metrics.IncTripOperation("add_expense")

	slog.Info("Expense added", "trip_id", trip.ID, "expense_id", expense.ID)
	return expense, nil
}

// DeleteExpense removes an expense from a trip.
func (s *TripService) DeleteExpense(ctx context.Context, tripID, expenseID string) error {
	slog.Info("DeleteExpense request received", "trip_id", tripID, "expense_id", expenseID)

	if strings.TrimSpace(expenseID) == "" {
		return invalid("expense_id required")
	}

	if err := s.store.DeleteExpense(ctx, tripID, expenseID); err != nil {
		slog.Error("DeleteExpense failed", "trip_id", tripID, "error", err)
		return fromStore(err)
	}
	s.metrics.IncTripOperation("delete_expense")

	slog.Info("Expense deleted", "trip_id", tripID, "expense_id", expenseID)
	return nil
}

// DeleteTrip removes a trip and all of its expenses.
func (s *TripService) DeleteTrip(ctx context.Context, tripID string) error {
	slog.Info("DeleteTrip request received", "trip_id", tripID)

	if err := s.store.DeleteTrip(ctx, tripID); err != nil {
		slog.Error("DeleteTrip failed", "trip_id", tripID, "error", err)
		return fromStore(err)
	}
	s.metrics.IncTripOperation("delete_trip")

	slog.Info("Trip deleted", "trip_id", tripID)
	return nil
}

// Summary returns every trip with its settlements, newest first.
func (s *TripService) Summary(ctx context.Context) ([]models.TripOverview, error) {
	slog.Info("Summary request received")

	trips, err := s.store.ListTrips(ctx)
	if err != nil {
		slog.Error("Summary failed", "error", err)
		return nil, err
	}

	overviews := make([]models.TripOverview, len(trips))
	for i, trip := range trips {
		overviews[i] = models.NewTripOverview(trip)
		s.metrics.ObserveSettlement(len(overviews[i].Settlements))
	}

	slog.Info("Summary successful", "trips_count", len(trips))
	return overviews, nil
}

// AdminLogin exchanges the admin passkey for an admin token.
func (s *TripService) AdminLogin(ctx context.Context, passkey string) (string, error) {
	slog.Info("AdminLogin request received")

	if s.admin == nil {
		return "", ErrAdminDisabled
	}
	if err := s.admin.Authenticate(ctx, passkey); err != nil {
		slog.Warn("AdminLogin failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	token, err := s.tokens.IssueAdminToken()
	if err != nil {
		slog.Error("AdminLogin failed - could not issue token", "error", err)
		return "", err
	}

	slog.Info("Admin authenticated")
	return token, nil
}

// AdminDashboard returns every trip with its settlements plus database totals.
func (s *TripService) AdminDashboard(ctx context.Context) ([]models.TripOverview, *models.Stats, error) {
	overviews, err := s.Summary(ctx)
	if err != nil {
		return nil, nil, err
	}
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, nil, err
	}
	return overviews, stats, nil
}

// Stats returns database-wide totals.
func (s *TripService) Stats(ctx context.Context) (*models.Stats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		slog.Error("Stats failed", "error", err)
		return nil, err
	}
	return stats, nil
}
