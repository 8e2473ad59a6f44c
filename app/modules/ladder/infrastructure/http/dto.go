package ladderhttp

import (
	"time"

	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	"github.com/google/uuid"
)

type createLadderRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type createCategoryRequest struct {
	LadderID       uuid.UUID `json:"ladder_id" validate:"required"`
	Name           string    `json:"name" validate:"required,max=120"`
	ChallengeRange int       `json:"challenge_range" validate:"min=1"`
	EntryFeeCents  *int64    `json:"entry_fee_cents,omitempty" validate:"omitempty,min=0"`
}

type registerTeamRequest struct {
	Name          string  `json:"name" validate:"required,max=120"`
	CaptainUserID string  `json:"captain_user_id" validate:"required"`
	PartnerUserID *string `json:"partner_user_id,omitempty" validate:"omitempty,min=1"`
	PartnerName   *string `json:"partner_name,omitempty" validate:"omitempty,min=1,max=120"`
}

type teamRef struct {
	TeamID uuid.UUID `json:"team_id" validate:"required"`
}

type swapRanksRequest struct {
	TeamA uuid.UUID `json:"team_a" validate:"required"`
	TeamB uuid.UUID `json:"team_b" validate:"required"`
}

type adjustStatsRequest struct {
	Points *int   `json:"points,omitempty"`
	Wins   *int   `json:"wins,omitempty" validate:"omitempty,min=0"`
	Losses *int   `json:"losses,omitempty" validate:"omitempty,min=0"`
	Streak *int   `json:"streak,omitempty"`
	Notes  string `json:"notes" validate:"max=500"`
}

type freezeRequest struct {
	// Until is a preset, a timestamp, a date or a phrase such as "next friday".
	Until  string `json:"until" validate:"required"`
	Reason string `json:"reason" validate:"max=500"`
}

type createChallengeRequest struct {
	ChallengerTeamID uuid.UUID `json:"challenger_team_id" validate:"required"`
	TargetTeamID     uuid.UUID `json:"target_team_id" validate:"required"`
	CategoryID       uuid.UUID `json:"category_id" validate:"required"`
}

type declineRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type matchResultRequest struct {
	WinnerTeamID uuid.UUID  `json:"winner_team_id" validate:"required"`
	WinnerScore  int        `json:"winner_score" validate:"min=0"`
	LoserScore   int        `json:"loser_score" validate:"min=0"`
	PlayedAt     *time.Time `json:"played_at,omitempty"`
}

type createJoinRequestRequest struct {
	TeamID     uuid.UUID `json:"team_id" validate:"required"`
	CategoryID uuid.UUID `json:"category_id" validate:"required"`
	Message    string    `json:"message" validate:"max=1000"`
}

type notesRequest struct {
	Notes string `json:"notes" validate:"max=1000"`
}

type LadderView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type CategoryView struct {
	ID             uuid.UUID `json:"id"`
	LadderID       uuid.UUID `json:"ladder_id"`
	Name           string    `json:"name"`
	ChallengeRange int       `json:"challenge_range"`
	EntryFeeCents  *int64    `json:"entry_fee_cents,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type TeamView struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	CaptainUserID string     `json:"captain_user_id"`
	PartnerUserID *string    `json:"partner_user_id,omitempty"`
	PartnerName   *string    `json:"partner_name,omitempty"`
	Complete      bool       `json:"complete"`
	Frozen        bool       `json:"frozen"`
	FrozenUntil   *time.Time `json:"frozen_until,omitempty"`
	FrozenReason  *string    `json:"frozen_reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type RankingView struct {
	TeamID      uuid.UUID  `json:"team_id"`
	CategoryID  uuid.UUID  `json:"category_id"`
	Rank        int        `json:"rank"`
	Points      int        `json:"points"`
	Wins        int        `json:"wins"`
	Losses      int        `json:"losses"`
	Streak      int        `json:"streak"`
	LastMatchAt *time.Time `json:"last_match_at,omitempty"`
}

type StandingView struct {
	RankingView
	TeamName string `json:"team_name"`
	Frozen   bool   `json:"frozen"`
}

type ChallengeView struct {
	ID               uuid.UUID  `json:"id"`
	ChallengerTeamID uuid.UUID  `json:"challenger_team_id"`
	ChallengedTeamID uuid.UUID  `json:"challenged_team_id"`
	CategoryID       uuid.UUID  `json:"category_id"`
	Status           string     `json:"status"`
	DeclineReason    *string    `json:"decline_reason,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	ExpiresAt        time.Time  `json:"expires_at"`
	RespondedAt      *time.Time `json:"responded_at,omitempty"`
}

type MatchView struct {
	ID           uuid.UUID `json:"id"`
	ChallengeID  uuid.UUID `json:"challenge_id"`
	WinnerTeamID uuid.UUID `json:"winner_team_id"`
	LoserTeamID  uuid.UUID `json:"loser_team_id"`
	WinnerScore  int       `json:"winner_score"`
	LoserScore   int       `json:"loser_score"`
	PlayedAt     time.Time `json:"played_at"`
}

type MatchRecordView struct {
	Match           MatchView    `json:"match"`
	Winner          *RankingView `json:"winner,omitempty"`
	Loser           *RankingView `json:"loser,omitempty"`
	RanksSwapped    bool         `json:"ranks_swapped"`
	AlreadyRecorded bool         `json:"already_recorded"`
}

type JoinRequestView struct {
	ID          uuid.UUID  `json:"id"`
	TeamID      uuid.UUID  `json:"team_id"`
	CategoryID  uuid.UUID  `json:"category_id"`
	Status      string     `json:"status"`
	Message     *string    `json:"message,omitempty"`
	AdminNotes  *string    `json:"admin_notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

type EligibilityView struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
	Message  string `json:"message,omitempty"`
}

type AuditEntryView struct {
	ID          uuid.UUID      `json:"id"`
	AdminUserID string         `json:"admin_user_id"`
	Action      string         `json:"action"`
	TeamID      *uuid.UUID     `json:"team_id,omitempty"`
	CategoryID  *uuid.UUID     `json:"category_id,omitempty"`
	OldValues   map[string]any `json:"old_values,omitempty"`
	NewValues   map[string]any `json:"new_values,omitempty"`
	Notes       *string        `json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func ladderView(l ladderdomain.Ladder) LadderView {
	return LadderView{ID: l.ID, Name: l.Name, CreatedAt: l.CreatedAt}
}

func categoryView(c ladderdomain.Category) CategoryView {
	return CategoryView{
		ID:             c.ID,
		LadderID:       c.LadderID,
		Name:           c.Name,
		ChallengeRange: c.ChallengeRange,
		EntryFeeCents:  c.EntryFeeCents,
		CreatedAt:      c.CreatedAt,
	}
}

func teamView(t ladderdomain.Team, now time.Time) TeamView {
	v := TeamView{
		ID:            t.ID,
		Name:          t.Name,
		CaptainUserID: t.CaptainUserID,
		PartnerUserID: t.PartnerUserID,
		PartnerName:   t.PartnerName,
		Complete:      ladderdomain.IsTeamComplete(t),
		Frozen:        ladderdomain.IsFrozen(t.Freeze, now),
		CreatedAt:     t.CreatedAt,
	}
	if v.Frozen {
		v.FrozenUntil = t.Freeze.FrozenUntil
		v.FrozenReason = t.Freeze.FrozenReason
	}
	return v
}

func rankingView(r ladderdomain.Ranking) RankingView {
	return RankingView{
		TeamID:      r.TeamID,
		CategoryID:  r.CategoryID,
		Rank:        r.Rank,
		Points:      r.Points,
		Wins:        r.Wins,
		Losses:      r.Losses,
		Streak:      r.Streak,
		LastMatchAt: r.LastMatchAt,
	}
}

func standingViews(standings []ladderdomain.Standing) []StandingView {
	out := make([]StandingView, 0, len(standings))
	for _, s := range standings {
		out = append(out, StandingView{RankingView: rankingView(s.Ranking), TeamName: s.TeamName, Frozen: s.Frozen})
	}
	return out
}

func challengeView(c ladderdomain.Challenge) ChallengeView {
	return ChallengeView{
		ID:               c.ID,
		ChallengerTeamID: c.ChallengerTeamID,
		ChallengedTeamID: c.ChallengedTeamID,
		CategoryID:       c.CategoryID,
		Status:           string(c.Status),
		DeclineReason:    c.DeclineReason,
		CreatedAt:        c.CreatedAt,
		ExpiresAt:        c.ExpiresAt,
		RespondedAt:      c.RespondedAt,
	}
}

func challengeViews(cs []ladderdomain.Challenge) []ChallengeView {
	out := make([]ChallengeView, 0, len(cs))
	for _, c := range cs {
		out = append(out, challengeView(c))
	}
	return out
}

func matchView(m ladderdomain.Match) MatchView {
	return MatchView{
		ID:           m.ID,
		ChallengeID:  m.ChallengeID,
		WinnerTeamID: m.WinnerTeamID,
		LoserTeamID:  m.LoserTeamID,
		WinnerScore:  m.WinnerScore,
		LoserScore:   m.LoserScore,
		PlayedAt:     m.PlayedAt,
	}
}

func joinRequestView(jr ladderdomain.JoinRequest) JoinRequestView {
	return JoinRequestView{
		ID:          jr.ID,
		TeamID:      jr.TeamID,
		CategoryID:  jr.CategoryID,
		Status:      string(jr.Status),
		Message:     jr.Message,
		AdminNotes:  jr.AdminNotes,
		CreatedAt:   jr.CreatedAt,
		RespondedAt: jr.RespondedAt,
	}
}

func joinRequestViews(jrs []ladderdomain.JoinRequest) []JoinRequestView {
	out := make([]JoinRequestView, 0, len(jrs))
	for _, jr := range jrs {
		out = append(out, joinRequestView(jr))
	}
	return out
}

func auditEntryViews(entries []ladderdomain.AuditEntry) []AuditEntryView {
	out := make([]AuditEntryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, AuditEntryView{
			ID:          e.ID,
			AdminUserID: e.AdminUserID,
			Action:      string(e.Action),
			TeamID:      e.TeamID,
			CategoryID:  e.CategoryID,
			OldValues:   e.OldValues,
			NewValues:   e.NewValues,
			Notes:       e.Notes,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out
}
