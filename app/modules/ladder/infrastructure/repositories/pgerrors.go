package ladderdb

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	sqlStateUniqueViolation      = "23505"
	sqlStateForeignKeyViolation  = "23503"
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
)

const (
	ConstraintRankingTeamCategory  = "ladder_rankings_team_category_key"
	ConstraintRankingCategoryRank  = "ladder_rankings_category_rank_key"
	ConstraintChallengePendingPair = "ladder_challenges_pending_pair_idx"
	ConstraintJoinRequestPending   = "ladder_join_requests_pending_idx"
	ConstraintMatchChallenge       = "ladder_matches_challenge_key"
)

var constraintSentinels = map[string]error{
	ConstraintRankingTeamCategory:  ErrAlreadyRanked,
	ConstraintRankingCategoryRank:  ErrRankConflict,
	ConstraintChallengePendingPair: ErrDuplicatePending,
	ConstraintJoinRequestPending:   ErrDuplicatePending,
	ConstraintMatchChallenge:       ErrMatchRecorded,
}

// sqlState extracts the SQLSTATE code and constraint name from either driver.
// bun runs on pgdriver in the service and on pgx stdlib in integration tests.
func sqlState(err error) (code, constraint string, ok bool) {
	var pdErr pgdriver.Error
	if errors.As(err, &pdErr) {
		return pdErr.Field('C'), pdErr.Field('n'), true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName, true
	}
	return "", "", false
}

// classify maps a Postgres failure to a repository sentinel and wraps it with op.
// Errors the mapping does not recognise are wrapped unchanged.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	code, constraint, ok := sqlState(err)
	if !ok {
		return fmt.Errorf("%s: %w", op, err)
	}
	switch code {
	case sqlStateUniqueViolation:
		if sentinel, found := constraintSentinels[constraint]; found {
			return fmt.Errorf("%s: %w: %w", op, sentinel, err)
		}
	case sqlStateForeignKeyViolation:
		// The referenced team or category was deleted while this transaction waited on it.
		return fmt.Errorf("%s: %w: %w", op, ErrNotFound, err)
	case sqlStateSerializationFailure, sqlStateDeadlockDetected:
		return fmt.Errorf("%s: %w: %w", op, ErrRankConflict, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// IsRetryable reports whether err is a conflict the caller may retry with fresh state.
// The deferred rank constraint fires at COMMIT, so raw driver errors are checked too.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRankConflict) {
		return true
	}
	code, constraint, ok := sqlState(err)
	if !ok {
		return false
	}
	switch code {
	case sqlStateSerializationFailure, sqlStateDeadlockDetected:
		return true
	case sqlStateUniqueViolation:
		return constraint == ConstraintRankingCategoryRank
	}
	return false
}
