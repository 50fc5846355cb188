// Package models defines the domain records of the grind tracker.
//
// Every record except User is owned by exactly one user and carries that
// user's ID. Relationships are expressed with ID strings, never pointers.
//
//   - User: identity anchor, created at registration
//   - Session: one ledger entry (a play or study session with its result)
//   - Bankroll: the materialized running balance, one per user
//   - PlayerNote: free-form note about an opponent
//   - UserSettings: weekly goals and standing session notes, one per user
//   - StatsReport: derived, never stored
package models
