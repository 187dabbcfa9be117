package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/models"
)

// AddExpense persists a new expense and its split list.
func (s *SQLiteStore) AddExpense(ctx context.Context, expense *models.Expense) error {
	// Generate ID if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.Date == 0 {
		expense.Date = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tripExists(ctx, tx, expense.TripID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, trip_id, description, amount, paid_by, date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.TripID, expense.Description, expense.Amount, expense.PaidBy, expense.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, participant := range expense.SplitAmong {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, participant, position) VALUES (?, ?, ?)",
			expense.ID, participant, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteExpense removes an expense by ID. Its splits are removed by cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, tripID, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND trip_id = ?",
		expenseID, tripID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return requireAffected(res, "expense", expenseID)
}

// listExpenses returns the trip's expenses in the order they were recorded.
func (s *SQLiteStore) listExpenses(ctx context.Context, tripID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, description, amount, paid_by, date
		 FROM expenses WHERE trip_id = ? ORDER BY date, rowid`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	expenses := []models.Expense{}
	index := make(map[string]int)
	for rows.Next() {
		e := models.Expense{SplitAmong: []string{}}
		if err := rows.Scan(&e.ID, &e.TripID, &e.Description, &e.Amount, &e.PaidBy, &e.Date); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		index[e.ID] = len(expenses)
		expenses = append(expenses, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	// Load all splits of the trip in one query instead of one per expense
	splitRows, err := s.db.QueryContext(ctx,
		`SELECT s.expense_id, s.participant
		 FROM expense_splits s JOIN expenses e ON e.id = s.expense_id
		 WHERE e.trip_id = ? ORDER BY s.expense_id, s.position`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var expenseID, participant string
		if err := splitRows.Scan(&expenseID, &participant); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		if i, ok := index[expenseID]; ok {
			expenses[i].SplitAmong = append(expenses[i].SplitAmong, participant)
		}
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}

	return expenses, nil
}
