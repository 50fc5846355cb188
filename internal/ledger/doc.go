// Package ledger is the core of the tracker: it keeps each user's bankroll
// consistent with their session ledger, computes windowed statistics and
// manages the simpler per-user records (player notes, settings).
//
// Every operation takes the caller's user ID, which must come from the
// identity resolver and never from request fields. Records owned by another
// user behave exactly like records that do not exist.
//
// The bankroll invariant: amount == sum of earnings over the user's sessions.
// Session create and delete apply the row change and the bankroll delta in a
// single store transaction, so a failure in either half leaves both untouched.
package ledger
