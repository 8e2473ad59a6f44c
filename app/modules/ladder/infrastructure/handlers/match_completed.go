package ladderhandlers

import (
	"context"
	"errors"
	"fmt"

	ladderservice "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/application"
	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	ladderevents "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/events"
	"github.com/Black-And-White-Club/padel-ladder/pkg/attr"
	"github.com/Black-And-White-Club/padel-ladder/pkg/handlerwrapper"
	"github.com/google/uuid"
)

// HandleMatchCompleted applies a reported match result. Refused results are answered on
// MatchRecordFailedV1; infrastructure errors are returned so the message is redelivered.
func (h *LadderHandlers) HandleMatchCompleted(ctx context.Context, payload *ladderevents.MatchCompletedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	in, err := matchResultInput(payload)
	if err != nil {
		return failed(payload.ChallengeID, err), nil
	}

	actor := ladderdomain.System
	if payload.ReportedBy != "" {
		actor = ladderdomain.Actor{ID: payload.ReportedBy}
	}

	record, err := h.service.RecordMatchResult(ctx, actor, in)
	if err != nil {
		kind := ladderdomain.KindOf(err)
		if kind == "" || kind == ladderdomain.KindConstraintConflict {
			return nil, fmt.Errorf("record match result: %w", err)
		}

		h.logger.InfoContext(ctx, "Match result refused",
			attr.ExtractCorrelationID(ctx),
			attr.String("challenge_id", payload.ChallengeID),
			attr.String("kind", string(kind)),
			attr.Error(err),
		)
		return failed(payload.ChallengeID, err), nil
	}

	if record.AlreadyRecorded {
		h.logger.InfoContext(ctx, "Match result already recorded",
			attr.ExtractCorrelationID(ctx),
			attr.String("challenge_id", payload.ChallengeID),
			attr.String("match_id", record.Match.ID.String()),
		)
	}

	recorded := ladderevents.MatchRecordedPayloadV1{
		ChallengeID:  record.Match.ChallengeID.String(),
		MatchID:      record.Match.ID.String(),
		WinnerTeamID: record.Match.WinnerTeamID.String(),
		LoserTeamID:  record.Match.LoserTeamID.String(),
	}
	if record.Outcome != nil {
		recorded.RanksSwapped = record.Outcome.Swapped
	}

	return []handlerwrapper.Result{
		{Topic: ladderevents.MatchRecordedV1, Payload: recorded},
	}, nil
}

func matchResultInput(payload *ladderevents.MatchCompletedPayloadV1) (ladderservice.MatchResultInput, error) {
	challengeID, err := uuid.Parse(payload.ChallengeID)
	if err != nil {
		return ladderservice.MatchResultInput{}, ladderdomain.Validation("invalid challenge id %q", payload.ChallengeID)
	}
	winnerID, err := uuid.Parse(payload.WinnerTeamID)
	if err != nil {
		return ladderservice.MatchResultInput{}, ladderdomain.Validation("invalid winner team id %q", payload.WinnerTeamID)
	}
	return ladderservice.MatchResultInput{
		ChallengeID:  challengeID,
		WinnerTeamID: winnerID,
		WinnerScore:  payload.WinnerScore,
		LoserScore:   payload.LoserScore,
		PlayedAt:     payload.PlayedAt,
	}, nil
}

func failed(challengeID string, err error) []handlerwrapper.Result {
	return []handlerwrapper.Result{
		{
			Topic: ladderevents.MatchRecordFailedV1,
			Payload: ladderevents.MatchRecordFailedPayloadV1{
				ChallengeID: challengeID,
				Error:       string(ladderdomain.KindOf(err)),
				Reason:      string(ladderdomain.ReasonOf(err)),
				Message:     ladderdomain.UserMessage(err),
			},
		},
	}
}
