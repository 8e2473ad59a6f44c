package ladderdomain

import (
	"math"
	"time"
)

// EloK is the rating sensitivity applied to every ladder match.
const EloK = 32.0

// NextWinStreak starts a fresh run after a losing streak, otherwise extends it.
func NextWinStreak(streak int) int {
	if streak < 0 {
		return 1
	}
	return streak + 1
}

// NextLossStreak mirrors NextWinStreak with negative values.
func NextLossStreak(streak int) int {
	if streak > 0 {
		return -1
	}
	return streak - 1
}

// EloChange returns the rounded points the winner gains, which the loser gives up.
func EloChange(winnerPoints, loserPoints int) int {
	expected := 1.0 / (1.0 + math.Pow(10, float64(loserPoints-winnerPoints)/400))
	return int(math.Round(EloK * (1.0 - expected)))
}

// MatchOutcome is the state of both rankings after a result is applied.
type MatchOutcome struct {
	Winner  Ranking
	Loser   Ranking
	Swapped bool
}

// ApplyMatch computes the post-match rankings. The winner takes the loser's
// rank only when it started below it; a defending higher-ranked winner keeps both ranks.
func ApplyMatch(winner, loser Ranking, playedAt time.Time) MatchOutcome {
	at := playedAt.UTC()
	delta := EloChange(winner.Points, loser.Points)

	winner.Wins++
	winner.Streak = NextWinStreak(winner.Streak)
	winner.Points += delta
	winner.LastMatchAt = &at

	loser.Losses++
	loser.Streak = NextLossStreak(loser.Streak)
	loser.Points -= delta
	loser.LastMatchAt = &at

	swapped := false
	if winner.Rank > loser.Rank {
		winner.Rank, loser.Rank = loser.Rank, winner.Rank
		swapped = true
	}

	return MatchOutcome{Winner: winner, Loser: loser, Swapped: swapped}
}

// ApplyStatsPatch returns r with the patch applied.
func ApplyStatsPatch(r Ranking, p StatsPatch) (Ranking, error) {
	if p.Wins != nil && *p.Wins < 0 {
		return r, Validation("wins cannot be negative")
	}
	if p.Losses != nil && *p.Losses < 0 {
		return r, Validation("losses cannot be negative")
	}
	if p.Points != nil && *p.Points < 0 {
		return r, Validation("points cannot be negative")
	}
	if p.Points != nil {
		r.Points = *p.Points
	}
	if p.Wins != nil {
		r.Wins = *p.Wins
	}
	if p.Losses != nil {
		r.Losses = *p.Losses
	}
	if p.Streak != nil {
		r.Streak = *p.Streak
	}
	return r, nil
}
