package ladderdomain

// DenialReason explains why a challenge is not allowed.
type DenialReason string

const (
	ReasonSelfChallenge    DenialReason = "self_challenge"
	ReasonDuplicatePending DenialReason = "duplicate_pending"
	ReasonTargetFrozen     DenialReason = "target_frozen"
	ReasonIncompleteRoster DenialReason = "incomplete_roster"
	ReasonNotUpward        DenialReason = "not_upward"
	ReasonRangeExceeded    DenialReason = "range_exceeded"
)

// EligibilityInput gathers everything CanChallenge looks at.
type EligibilityInput struct {
	ChallengerTeamID   string
	TargetTeamID       string
	ChallengerRank     int
	TargetRank         int
	ChallengeRange     int
	TargetFrozen       bool
	HasPendingToTarget bool
	ChallengerComplete bool
}

type Eligibility struct {
	Eligible bool
	Reason   DenialReason
}

// CheckEligibility evaluates the challenge rules in order and reports the first one that fails.
// A frozen challenger may still challenge; only the target's freeze state is considered.
func CheckEligibility(in EligibilityInput) Eligibility {
	switch {
	case in.ChallengerTeamID == in.TargetTeamID:
		return deny(ReasonSelfChallenge)
	case in.HasPendingToTarget:
		return deny(ReasonDuplicatePending)
	case in.TargetFrozen:
		return deny(ReasonTargetFrozen)
	case !in.ChallengerComplete:
		return deny(ReasonIncompleteRoster)
	case in.TargetRank >= in.ChallengerRank:
		return deny(ReasonNotUpward)
	case in.ChallengerRank-in.TargetRank > in.ChallengeRange:
		return deny(ReasonRangeExceeded)
	}
	return Eligibility{Eligible: true}
}

// CanChallenge is the boolean form of CheckEligibility.
func CanChallenge(in EligibilityInput) bool {
	return CheckEligibility(in).Eligible
}

func deny(r DenialReason) Eligibility {
	return Eligibility{Eligible: false, Reason: r}
}
