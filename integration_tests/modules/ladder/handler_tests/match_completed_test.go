package ladderhandlerintegrationtests

import (
	"encoding/json"
	"testing"
	"time"

	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	ladderevents "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/events"
	"github.com/Black-And-White-Club/padel-ladder/pkg/eventbus"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMatchCompleted_OverNATS(t *testing.T) {
	deps := SetupTestLadderHandler(t)
	svc := deps.Module.Service

	fixture, err := deps.Gen.SeedCategory(deps.Ctx, svc, 3, 3)
	require.NoError(t, err)
	challenge, err := svc.CreateChallenge(deps.Ctx, fixture.Captain(2), fixture.Teams[2].ID, fixture.Teams[0].ID, fixture.Category.ID)
	require.NoError(t, err)
	_, err = svc.AcceptChallenge(deps.Ctx, fixture.Captain(0), challenge.ID)
	require.NoError(t, err)

	recorded, err := deps.Env.EventBus.Subscribe(deps.Ctx, ladderevents.MatchRecordedV1)
	require.NoError(t, err)
	failed, err := deps.Env.EventBus.Subscribe(deps.Ctx, ladderevents.MatchRecordFailedV1)
	require.NoError(t, err)
	changed, err := deps.Env.EventBus.Subscribe(deps.Ctx,
		eventbus.FormatCategoryScopedTopic(ladderevents.RankingChangedV1, fixture.Category.ID.String()))
	require.NoError(t, err)

	t.Run("result is applied and confirmed", func(t *testing.T) {
		correlationID := uuid.NewString()
		deps.Publish(t, ladderevents.MatchCompletedV1, correlationID, ladderevents.MatchCompletedPayloadV1{
			ChallengeID:  challenge.ID.String(),
			WinnerTeamID: fixture.Teams[2].ID.String(),
			WinnerScore:  2,
			LoserScore:   0,
			ReportedBy:   fixture.Teams[2].CaptainUserID,
		})

		msg := Await(t, recorded, correlationID, 20*time.Second)
		var got ladderevents.MatchRecordedPayloadV1
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, challenge.ID.String(), got.ChallengeID)
		assert.Equal(t, fixture.Teams[2].ID.String(), got.WinnerTeamID)
		assert.Equal(t, fixture.Teams[0].ID.String(), got.LoserTeamID)
		assert.True(t, got.RanksSwapped)

		// Seeding events come first on the category stream.
		ev := Await(t, changed, correlationID, 20*time.Second)
		var payload ladderevents.RankingChangedPayloadV1
		require.NoError(t, json.Unmarshal(ev.Payload, &payload))
		assert.Equal(t, ladderevents.CauseMatchResult, payload.Cause)
		assert.Len(t, payload.Teams, 2)

		standings, err := svc.GetStandings(deps.Ctx, fixture.Category.ID)
		require.NoError(t, err)
		for _, s := range standings {
			switch s.TeamID {
			case fixture.Teams[2].ID:
				assert.Equal(t, 1, s.Rank)
			case fixture.Teams[0].ID:
				assert.Equal(t, 3, s.Rank)
			}
		}
	})

	t.Run("replayed report is confirmed without reapplying", func(t *testing.T) {
		correlationID := uuid.NewString()
		deps.Publish(t, ladderevents.MatchCompletedV1, correlationID, ladderevents.MatchCompletedPayloadV1{
			ChallengeID:  challenge.ID.String(),
			WinnerTeamID: fixture.Teams[2].ID.String(),
			WinnerScore:  2,
			LoserScore:   0,
		})

		msg := Await(t, recorded, correlationID, 20*time.Second)
		var got ladderevents.MatchRecordedPayloadV1
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.False(t, got.RanksSwapped)

		standings, err := svc.GetStandings(deps.Ctx, fixture.Category.ID)
		require.NoError(t, err)
		for _, s := range standings {
			assert.LessOrEqual(t, s.Wins+s.Losses, 1)
		}
	})

	t.Run("unknown challenge is reported as failed", func(t *testing.T) {
		correlationID := uuid.NewString()
		deps.Publish(t, ladderevents.MatchCompletedV1, correlationID, ladderevents.MatchCompletedPayloadV1{
			ChallengeID:  uuid.NewString(),
			WinnerTeamID: fixture.Teams[2].ID.String(),
			WinnerScore:  2,
			LoserScore:   1,
		})

		msg := Await(t, failed, correlationID, 20*time.Second)
		var got ladderevents.MatchRecordFailedPayloadV1
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, string(ladderdomain.KindNotFound), got.Error)
		assert.NotEmpty(t, got.Message)
	})
}
