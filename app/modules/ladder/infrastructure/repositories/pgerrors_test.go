package ladderdb

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantIs    error
		retryable bool
	}{
		{
			name:   "team already ranked",
			err:    &pgconn.PgError{Code: "23505", ConstraintName: ConstraintRankingTeamCategory},
			wantIs: ErrAlreadyRanked,
		},
		{
			name:      "rank slot taken",
			err:       &pgconn.PgError{Code: "23505", ConstraintName: ConstraintRankingCategoryRank},
			wantIs:    ErrRankConflict,
			retryable: true,
		},
		{
			name:   "pending challenge pair",
			err:    &pgconn.PgError{Code: "23505", ConstraintName: ConstraintChallengePendingPair},
			wantIs: ErrDuplicatePending,
		},
		{
			name:   "pending join request",
			err:    &pgconn.PgError{Code: "23505", ConstraintName: ConstraintJoinRequestPending},
			wantIs: ErrDuplicatePending,
		},
		{
			name:   "match already stored",
			err:    &pgconn.PgError{Code: "23505", ConstraintName: ConstraintMatchChallenge},
			wantIs: ErrMatchRecorded,
		},
		{
			name:   "team deleted under a rank insert",
			err:    &pgconn.PgError{Code: "23503", ConstraintName: "ladder_rankings_team_id_fkey"},
			wantIs: ErrNotFound,
		},
		{
			name:      "serialization failure",
			err:       &pgconn.PgError{Code: "40001"},
			wantIs:    ErrRankConflict,
			retryable: true,
		},
		{
			name:      "deadlock",
			err:       &pgconn.PgError{Code: "40P01"},
			wantIs:    ErrRankConflict,
			retryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify("rankings.Insert", tt.err)
			assert.ErrorIs(t, got, tt.wantIs)
			assert.ErrorIs(t, got, tt.err, "driver error stays reachable")
			assert.Contains(t, got.Error(), "rankings.Insert")
			assert.Equal(t, tt.retryable, IsRetryable(got))
		})
	}

	t.Run("unknown constraint is passed through", func(t *testing.T) {
		src := &pgconn.PgError{Code: "23505", ConstraintName: "something_else"}
		got := classify("op", src)
		assert.NotErrorIs(t, got, ErrAlreadyRanked)
		assert.ErrorIs(t, got, src)
	})

	t.Run("non postgres error", func(t *testing.T) {
		src := errors.New("connection reset")
		got := classify("op", src)
		assert.ErrorIs(t, got, src)
		assert.False(t, IsRetryable(got))
	})

	assert.NoError(t, classify("op", nil))
}

func TestIsRetryable_RawCommitError(t *testing.T) {
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "23505", ConstraintName: ConstraintRankingCategoryRank}))
	assert.False(t, IsRetryable(&pgconn.PgError{Code: "23505", ConstraintName: ConstraintRankingTeamCategory}))
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "40P01"}))
}
