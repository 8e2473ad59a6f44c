package ladderevents

import "time"

// Topics published and consumed by the ladder module.
const (
	// RankingChangedV1 is the base topic; the category ID is appended per publish.
	RankingChangedV1 = "ladder.ranking.changed.v1"

	// MatchCompletedV1 is consumed: a scoring client reports the result of an accepted challenge.
	MatchCompletedV1 = "ladder.match.completed.v1"
	// MatchRecordedV1 confirms a consumed result was applied, or was already applied.
	MatchRecordedV1 = "ladder.match.recorded.v1"
	// MatchRecordFailedV1 reports a result the engine refused.
	MatchRecordFailedV1 = "ladder.match.record.failed.v1"

	// NotificationRequestedV1 carries fire-and-forget notification requests to the dispatcher.
	NotificationRequestedV1 = "ladder.notification.requested.v1"
)

// RankingChangeCause names the mutation behind a RankingChanged event.
type RankingChangeCause string

const (
	CauseRankingInserted RankingChangeCause = "ranking_inserted"
	CauseRanksSwapped    RankingChangeCause = "ranks_swapped"
	CauseRankingRemoved  RankingChangeCause = "ranking_removed"
	CauseMatchResult     RankingChangeCause = "match_result"
	CauseStatsAdjusted   RankingChangeCause = "stats_adjusted"
	CauseTeamDeleted     RankingChangeCause = "team_deleted"
)

// TeamStandingV1 is one team's row after the change.
type TeamStandingV1 struct {
	TeamID string `json:"team_id"`
	Rank   int    `json:"rank"`
	Points int    `json:"points"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Streak int    `json:"streak"`
}

// RankingChangedPayloadV1 lists the rankings touched by a committed mutation.
// Rankings shifted by a bulk re-densification are not listed individually;
// consumers reload standings when Cause is ranking_removed or team_deleted.
type RankingChangedPayloadV1 struct {
	CategoryID string             `json:"category_id"`
	Cause      RankingChangeCause `json:"cause"`
	Teams      []TeamStandingV1   `json:"teams"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// MatchCompletedPayloadV1 reports the result of an accepted challenge.
type MatchCompletedPayloadV1 struct {
	ChallengeID  string     `json:"challenge_id"`
	WinnerTeamID string     `json:"winner_team_id"`
	WinnerScore  int        `json:"winner_score"`
	LoserScore   int        `json:"loser_score"`
	ReportedBy   string     `json:"reported_by"`
	PlayedAt     *time.Time `json:"played_at,omitempty"`
}

type MatchRecordedPayloadV1 struct {
	ChallengeID  string `json:"challenge_id"`
	MatchID      string `json:"match_id"`
	WinnerTeamID string `json:"winner_team_id"`
	LoserTeamID  string `json:"loser_team_id"`
	RanksSwapped bool   `json:"ranks_swapped"`
}

type MatchRecordFailedPayloadV1 struct {
	ChallengeID string `json:"challenge_id"`
	Error       string `json:"error"`
	Reason      string `json:"reason,omitempty"`
	Message     string `json:"message"`
}

// NotificationKind enumerates the notification requests the engine emits.
type NotificationKind string

const (
	NotifyChallengeCreated  NotificationKind = "challenge_created"
	NotifyChallengeAccepted NotificationKind = "challenge_accepted"
	NotifyChallengeDeclined NotificationKind = "challenge_declined"
	NotifyTeamFrozen        NotificationKind = "team_frozen"
	NotifyTeamUnfrozen      NotificationKind = "team_unfrozen"
)

// NotificationTeamV1 identifies a team by ID and display name.
type NotificationTeamV1 struct {
	TeamID string `json:"team_id"`
	Name   string `json:"name"`
}

type NotificationRequestedPayloadV1 struct {
	Kind        NotificationKind     `json:"kind"`
	Teams       []NotificationTeamV1 `json:"teams"`
	ChallengeID string               `json:"challenge_id,omitempty"`
	Reason      string               `json:"reason,omitempty"`
	Until       *time.Time           `json:"until,omitempty"`
	OccurredAt  time.Time            `json:"occurred_at"`
}
