package ladderdb

import (
	"time"

	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Ladder is a named competition instance.
type Ladder struct {
	bun.BaseModel `bun:"table:ladders,alias:l"`

	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name      string    `bun:"name,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// Category is an independently ranked pool inside a ladder.
type Category struct {
	bun.BaseModel `bun:"table:ladder_categories,alias:c"`

	ID             uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	LadderID       uuid.UUID `bun:"ladder_id,type:uuid,notnull"`
	Name           string    `bun:"name,notnull"`
	ChallengeRange int       `bun:"challenge_range,notnull"`
	EntryFeeCents  *int64    `bun:"entry_fee_cents"`
	CreatedAt      time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type Team struct {
	bun.BaseModel `bun:"table:ladder_teams,alias:t"`

	ID            uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name          string     `bun:"name,notnull"`
	CaptainUserID string     `bun:"captain_user_id,notnull"`
	PartnerUserID *string    `bun:"partner_user_id"`
	PartnerName   *string    `bun:"partner_name"`
	IsFrozen      bool       `bun:"is_frozen,notnull,default:false"`
	FrozenUntil   *time.Time `bun:"frozen_until"`
	FrozenReason  *string    `bun:"frozen_reason"`
	FrozenBy      *string    `bun:"frozen_by"`
	FrozenAt      *time.Time `bun:"frozen_at"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Ranking is one team's position in one category.
type Ranking struct {
	bun.BaseModel `bun:"table:ladder_rankings,alias:r"`

	ID          uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	TeamID      uuid.UUID  `bun:"team_id,type:uuid,notnull"`
	CategoryID  uuid.UUID  `bun:"category_id,type:uuid,notnull"`
	Rank        int        `bun:"rank,notnull"`
	Points      int        `bun:"points,notnull,default:1000"`
	Wins        int        `bun:"wins,notnull,default:0"`
	Losses      int        `bun:"losses,notnull,default:0"`
	Streak      int        `bun:"streak,notnull,default:0"`
	LastMatchAt *time.Time `bun:"last_match_at"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// StandingRow is a ranking joined with the team columns the board needs.
type StandingRow struct {
	Ranking `bun:",extend"`

	TeamName    string     `bun:"team_name"`
	IsFrozen    bool       `bun:"is_frozen"`
	FrozenUntil *time.Time `bun:"frozen_until"`
}

type Challenge struct {
	bun.BaseModel `bun:"table:ladder_challenges,alias:ch"`

	ID               uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	ChallengerTeamID uuid.UUID  `bun:"challenger_team_id,type:uuid,notnull"`
	ChallengedTeamID uuid.UUID  `bun:"challenged_team_id,type:uuid,notnull"`
	CategoryID       uuid.UUID  `bun:"ladder_category_id,type:uuid,notnull"`
	Status           string     `bun:"status,notnull,default:'pending'"`
	DeclineReason    *string    `bun:"decline_reason"`
	CreatedAt        time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	ExpiresAt        time.Time  `bun:"expires_at,notnull"`
	RespondedAt      *time.Time `bun:"responded_at"`
	RespondedBy      *string    `bun:"responded_by"`
}

type JoinRequest struct {
	bun.BaseModel `bun:"table:ladder_join_requests,alias:jr"`

	ID          uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	TeamID      uuid.UUID  `bun:"team_id,type:uuid,notnull"`
	CategoryID  uuid.UUID  `bun:"category_id,type:uuid,notnull"`
	Status      string     `bun:"status,notnull,default:'pending'"`
	Message     *string    `bun:"message"`
	AdminNotes  *string    `bun:"admin_notes"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	RespondedAt *time.Time `bun:"responded_at"`
	RespondedBy *string    `bun:"responded_by"`
}

// AuditEntry rows are insert-only.
type AuditEntry struct {
	bun.BaseModel `bun:"table:ladder_audit_log,alias:al"`

	ID          uuid.UUID      `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	AdminUserID string         `bun:"admin_user_id,notnull"`
	Action      string         `bun:"action,notnull"`
	TeamID      *uuid.UUID     `bun:"team_id,type:uuid"`
	CategoryID  *uuid.UUID     `bun:"category_id,type:uuid"`
	OldValues   map[string]any `bun:"old_values,type:jsonb"`
	NewValues   map[string]any `bun:"new_values,type:jsonb"`
	Notes       *string        `bun:"notes"`
	CreatedAt   time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type Match struct {
	bun.BaseModel `bun:"table:ladder_matches,alias:m"`

	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	ChallengeID  uuid.UUID `bun:"challenge_id,type:uuid,notnull"`
	CategoryID   uuid.UUID `bun:"category_id,type:uuid,notnull"`
	WinnerTeamID uuid.UUID `bun:"winner_team_id,type:uuid,notnull"`
	LoserTeamID  uuid.UUID `bun:"loser_team_id,type:uuid,notnull"`
	WinnerScore  int       `bun:"winner_score,notnull"`
	LoserScore   int       `bun:"loser_score,notnull"`
	RecordedBy   string    `bun:"recorded_by,notnull"`
	PlayedAt     time.Time `bun:"played_at,notnull"`
}

func (m *Ladder) ToDomain() ladderdomain.Ladder {
	return ladderdomain.Ladder{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}
}

func (m *Category) ToDomain() ladderdomain.Category {
	return ladderdomain.Category{
		ID:             m.ID,
		LadderID:       m.LadderID,
		Name:           m.Name,
		ChallengeRange: m.ChallengeRange,
		EntryFeeCents:  m.EntryFeeCents,
		CreatedAt:      m.CreatedAt,
	}
}

func (m *Team) ToDomain() ladderdomain.Team {
	return ladderdomain.Team{
		ID:            m.ID,
		Name:          m.Name,
		CaptainUserID: m.CaptainUserID,
		PartnerUserID: m.PartnerUserID,
		PartnerName:   m.PartnerName,
		Freeze: ladderdomain.FreezeWindow{
			IsFrozen:     m.IsFrozen,
			FrozenUntil:  m.FrozenUntil,
			FrozenReason: m.FrozenReason,
			FrozenBy:     m.FrozenBy,
			FrozenAt:     m.FrozenAt,
		},
		CreatedAt: m.CreatedAt,
	}
}

func (m *Ranking) ToDomain() ladderdomain.Ranking {
	return ladderdomain.Ranking{
		ID:          m.ID,
		TeamID:      m.TeamID,
		CategoryID:  m.CategoryID,
		Rank:        m.Rank,
		Points:      m.Points,
		Wins:        m.Wins,
		Losses:      m.Losses,
		Streak:      m.Streak,
		LastMatchAt: m.LastMatchAt,
	}
}

// RankingFromDomain copies the mutable counters of r onto a model for update.
func RankingFromDomain(r ladderdomain.Ranking) *Ranking {
	return &Ranking{
		ID:          r.ID,
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

func (m *StandingRow) ToDomain(asOf time.Time) ladderdomain.Standing {
	return ladderdomain.Standing{
		Ranking:  m.Ranking.ToDomain(),
		TeamName: m.TeamName,
		Frozen:   ladderdomain.IsFrozen(ladderdomain.FreezeWindow{IsFrozen: m.IsFrozen, FrozenUntil: m.FrozenUntil}, asOf),
	}
}

func (m *Challenge) ToDomain() ladderdomain.Challenge {
	return ladderdomain.Challenge{
		ID:               m.ID,
		ChallengerTeamID: m.ChallengerTeamID,
		ChallengedTeamID: m.ChallengedTeamID,
		CategoryID:       m.CategoryID,
		Status:           ladderdomain.ChallengeStatus(m.Status),
		DeclineReason:    m.DeclineReason,
		CreatedAt:        m.CreatedAt,
		ExpiresAt:        m.ExpiresAt,
		RespondedAt:      m.RespondedAt,
		RespondedBy:      m.RespondedBy,
	}
}

func (m *JoinRequest) ToDomain() ladderdomain.JoinRequest {
	return ladderdomain.JoinRequest{
		ID:          m.ID,
		TeamID:      m.TeamID,
		CategoryID:  m.CategoryID,
		Status:      ladderdomain.JoinRequestStatus(m.Status),
		Message:     m.Message,
		AdminNotes:  m.AdminNotes,
		CreatedAt:   m.CreatedAt,
		RespondedAt: m.RespondedAt,
		RespondedBy: m.RespondedBy,
	}
}

func (m *AuditEntry) ToDomain() ladderdomain.AuditEntry {
	return ladderdomain.AuditEntry{
		ID:          m.ID,
		AdminUserID: m.AdminUserID,
		Action:      ladderdomain.AuditAction(m.Action),
		TeamID:      m.TeamID,
		CategoryID:  m.CategoryID,
		OldValues:   m.OldValues,
		NewValues:   m.NewValues,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
	}
}

func (m *Match) ToDomain() ladderdomain.Match {
	return ladderdomain.Match{
		ID:           m.ID,
		ChallengeID:  m.ChallengeID,
		CategoryID:   m.CategoryID,
		WinnerTeamID: m.WinnerTeamID,
		LoserTeamID:  m.LoserTeamID,
		WinnerScore:  m.WinnerScore,
		LoserScore:   m.LoserScore,
		RecordedBy:   m.RecordedBy,
		PlayedAt:     m.PlayedAt,
	}
}
