package ladderdb

import "errors"

// Sentinel errors for the repository layer.
// These represent infrastructure-level conditions callers may want
// to handle specially (not business-domain errors).
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyRanked indicates a second ranking for the same team and category.
	ErrAlreadyRanked = errors.New("team already ranked in category")

	// ErrDuplicatePending indicates a second pending challenge for the same ordered
	// pair, or a second pending join request for the same team and category.
	ErrDuplicatePending = errors.New("duplicate pending row")

	// ErrMatchRecorded indicates a result was already stored for the challenge.
	ErrMatchRecorded = errors.New("match already recorded for challenge")

	// ErrRankConflict indicates a concurrent writer won a rank slot, or Postgres aborted
	// the transaction with a serialization failure or deadlock. Safe to retry.
	ErrRankConflict = errors.New("rank conflict")

	// ErrStaleState indicates a conditional UPDATE matched no rows because the row
	// left the expected state.
	ErrStaleState = errors.New("row no longer in expected state")
)
