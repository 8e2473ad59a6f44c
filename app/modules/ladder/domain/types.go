package ladderdomain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultPoints is the rating every new ranking starts from.
	DefaultPoints = 1000

	// DefaultChallengeExpiry is how long a challenge stays pending before the sweep expires it.
	DefaultChallengeExpiry = 7 * 24 * time.Hour
)

// Actor is the caller of a mutating operation, as vouched for by the identity provider.
type Actor struct {
	ID      string
	IsAdmin bool
}

// System is the actor used for scheduler- and broker-driven work.
var System = Actor{ID: "system", IsAdmin: true}

type Ladder struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

type Category struct {
	ID             uuid.UUID
	LadderID       uuid.UUID
	Name           string
	ChallengeRange int
	EntryFeeCents  *int64
	CreatedAt      time.Time
}

type Team struct {
	ID            uuid.UUID
	Name          string
	CaptainUserID string
	PartnerUserID *string
	PartnerName   *string
	Freeze        FreezeWindow
	CreatedAt     time.Time
}

// HasMember reports whether userID plays for the team.
func (t Team) HasMember(userID string) bool {
	if userID == "" {
		return false
	}
	if t.CaptainUserID == userID {
		return true
	}
	return t.PartnerUserID != nil && *t.PartnerUserID == userID
}

type Ranking struct {
	ID          uuid.UUID
	TeamID      uuid.UUID
	CategoryID  uuid.UUID
	Rank        int
	Points      int
	Wins        int
	Losses      int
	Streak      int
	LastMatchAt *time.Time
}

// Standing is a ranking row as shown on the ladder board.
type Standing struct {
	Ranking
	TeamName string
	Frozen   bool
}

type ChallengeStatus string

const (
	ChallengePending   ChallengeStatus = "pending"
	ChallengeAccepted  ChallengeStatus = "accepted"
	ChallengeDeclined  ChallengeStatus = "declined"
	ChallengeExpired   ChallengeStatus = "expired"
	ChallengeCancelled ChallengeStatus = "cancelled"
)

func (s ChallengeStatus) Valid() bool {
	switch s {
	case ChallengePending, ChallengeAccepted, ChallengeDeclined, ChallengeExpired, ChallengeCancelled:
		return true
	}
	return false
}

type Challenge struct {
	ID               uuid.UUID
	ChallengerTeamID uuid.UUID
	ChallengedTeamID uuid.UUID
	CategoryID       uuid.UUID
	Status           ChallengeStatus
	DeclineReason    *string
	CreatedAt        time.Time
	ExpiresAt        time.Time
	RespondedAt      *time.Time
	RespondedBy      *string
}

// IsOverdue reports whether a pending challenge has passed its expiry instant.
func (c Challenge) IsOverdue(asOf time.Time) bool {
	return c.Status == ChallengePending && asOf.After(c.ExpiresAt)
}

type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestApproved JoinRequestStatus = "approved"
	JoinRequestRejected JoinRequestStatus = "rejected"
)

func (s JoinRequestStatus) Valid() bool {
	switch s {
	case JoinRequestPending, JoinRequestApproved, JoinRequestRejected:
		return true
	}
	return false
}

type JoinRequest struct {
	ID          uuid.UUID
	TeamID      uuid.UUID
	CategoryID  uuid.UUID
	Status      JoinRequestStatus
	Message     *string
	AdminNotes  *string
	CreatedAt   time.Time
	RespondedAt *time.Time
	RespondedBy *string
}

// Match is the immutable record of a played challenge.
type Match struct {
	ID           uuid.UUID
	ChallengeID  uuid.UUID
	CategoryID   uuid.UUID
	WinnerTeamID uuid.UUID
	LoserTeamID  uuid.UUID
	WinnerScore  int
	LoserScore   int
	RecordedBy   string
	PlayedAt     time.Time
}

// StatsPatch is an admin correction of a ranking's counters. Nil fields are left alone.
type StatsPatch struct {
	Points *int
	Wins   *int
	Losses *int
	Streak *int
}

func (p StatsPatch) IsEmpty() bool {
	return p.Points == nil && p.Wins == nil && p.Losses == nil && p.Streak == nil
}
