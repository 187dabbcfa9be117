// Package models defines the core domain models for tripsplit.
//
// # Models
//
//   - Trip: a named group activity with members and expenses
//   - Expense: a single payment by one member, shared among a subset of members
//   - TripDetails / TripOverview: read models combining a trip with its computed
//     balances and settlements
//
// Members are identified by name strings; there are no user accounts. Names are unique
// within a trip and are the key used by expenses (PaidBy, SplitAmong).
//
// Balances and settlements are never stored. They are derived on every read by the
// calculator package from a Trip snapshot.
package models
