package ladderservice

import (
	"context"
	"testing"

	"github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/application/mocks"
	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	ladderevents "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/events"
	ladderdb "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func (w *ladderWorld) addJoinRequest(teamID uuid.UUID, status ladderdomain.JoinRequestStatus) uuid.UUID {
	jr := &ladderdb.JoinRequest{
		ID:         uuid.New(),
		TeamID:     teamID,
		CategoryID: w.category.ID,
		Status:     string(status),
		CreatedAt:  w.now,
	}
	w.joinRequests[jr.ID] = jr
	return jr.ID
}

func TestLadderService_CreateJoinRequest(t *testing.T) {
	tests := []struct {
		name    string
		ranked  bool
		pending bool
		actor   ladderdomain.Actor
		wantErr error
	}{
		{name: "captain asks to join", actor: captain("n")},
		{name: "admin files for the team", actor: admin},
		{name: "outsider", actor: stranger, wantErr: ladderdomain.ErrUnauthorized},
		{name: "already ranked", ranked: true, actor: captain("n"), wantErr: ladderdomain.ErrAlreadyInCategory},
		{name: "request already pending", pending: true, actor: captain("n"), wantErr: ladderdomain.ErrDuplicatePending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newLadderWorld()
			rank := 0
			if tt.ranked {
				rank = 1
			}
			teamID := w.addTeam("Nora / Nico", "n", rank)
			if tt.pending {
				w.addJoinRequest(teamID, ladderdomain.JoinRequestPending)
			}

			got, err := w.service(nil, nil).CreateJoinRequest(context.Background(), tt.actor, teamID, w.category.ID, " we play Tuesdays ")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ladderdomain.JoinRequestPending, got.Status)
			require.NotNil(t, got.Message)
			assert.Equal(t, "we play Tuesdays", *got.Message)
		})
	}
}

func TestLadderService_ApproveJoinRequest(t *testing.T) {
	tests := []struct {
		name          string
		status        ladderdomain.JoinRequestStatus
		alreadyRanked bool
		wantErr       error
		wantRank      int
	}{
		{name: "approved at the bottom", status: ladderdomain.JoinRequestPending, wantRank: 3},
		{name: "team got in through another path", status: ladderdomain.JoinRequestPending, alreadyRanked: true, wantErr: ladderdomain.ErrAlreadyInCategory},
		{name: "double approval", status: ladderdomain.JoinRequestApproved, alreadyRanked: true, wantErr: ladderdomain.ErrAlreadyInCategory},
		{name: "rejected request", status: ladderdomain.JoinRequestRejected, wantErr: ladderdomain.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			w := newLadderWorld()
			w.addTeam("A / B", "a", 1)
			w.addTeam("C / D", "c", 2)
			rank := 0
			if tt.alreadyRanked {
				rank = 3
			}
			teamID := w.addTeam("Nora / Nico", "n", rank)
			reqID := w.addJoinRequest(teamID, tt.status)

			publisher := mocks.NewMockRankingPublisher(ctrl)
			if tt.wantErr == nil {
				publisher.EXPECT().
					PublishRankingChanged(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p ladderevents.RankingChangedPayloadV1) error {
						assert.Equal(t, ladderevents.CauseRankingInserted, p.Cause)
						require.Len(t, p.Teams, 1)
						assert.Equal(t, teamID.String(), p.Teams[0].TeamID)
						return nil
					})
			}

			got, err := w.service(nil, publisher).ApproveJoinRequest(context.Background(), admin, reqID, "welcome")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, string(tt.status), w.joinRequests[reqID].Status)
				assert.Empty(t, w.audits)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRank, got.Rank)
			assert.Equal(t, ladderdomain.DefaultPoints, got.Points)

			stored := w.joinRequests[reqID]
			assert.Equal(t, string(ladderdomain.JoinRequestApproved), stored.Status)
			require.NotNil(t, stored.AdminNotes)
			assert.Equal(t, "welcome", *stored.AdminNotes)
			require.NotNil(t, stored.RespondedBy)
			assert.Equal(t, admin.ID, *stored.RespondedBy)

			require.Len(t, w.audits, 1)
			assert.Equal(t, string(ladderdomain.AuditJoinRequestApproved), w.audits[0].Action)
			w.checkPermutation(t)
		})
	}
}

func TestLadderService_RejectJoinRequest(t *testing.T) {
	w := newLadderWorld()
	teamID := w.addTeam("Nora / Nico", "n", 0)
	reqID := w.addJoinRequest(teamID, ladderdomain.JoinRequestPending)
	svc := w.service(nil, nil)

	got, err := svc.RejectJoinRequest(context.Background(), admin, reqID, "category is full")
	require.NoError(t, err)
	assert.Equal(t, ladderdomain.JoinRequestRejected, got.Status)
	assert.NotContains(t, w.repo.Trace(), "InsertRanking")
	require.Len(t, w.audits, 1)
	assert.Equal(t, string(ladderdomain.AuditJoinRequestRejected), w.audits[0].Action)

	_, err = svc.RejectJoinRequest(context.Background(), admin, reqID, "")
	assert.ErrorIs(t, err, ladderdomain.ErrInvalidTransition)

	_, err = svc.RejectJoinRequest(context.Background(), admin, uuid.New(), "")
	assert.ErrorIs(t, err, ladderdomain.ErrNotFound)
}
