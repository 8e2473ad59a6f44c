package ladderdomain

import (
	"time"
)

// FreezeWindow holds a team's freeze attributes.
type FreezeWindow struct {
	IsFrozen     bool
	FrozenUntil  *time.Time
	FrozenReason *string
	FrozenBy     *string
	FrozenAt     *time.Time
}

// IsFrozen reports whether the window is in effect at asOf. A window whose
// until instant has passed no longer freezes the team even if the flag is still set.
func IsFrozen(w FreezeWindow, asOf time.Time) bool {
	return w.IsFrozen && w.FrozenUntil != nil && w.FrozenUntil.After(asOf)
}

// NewFreezeWindow builds the window stored by a freeze action.
func NewFreezeWindow(until time.Time, reason string, actorID string, now time.Time) (FreezeWindow, error) {
	if !until.After(now) {
		return FreezeWindow{}, Validation("freeze end must be in the future")
	}
	u := until.UTC()
	at := now.UTC()
	w := FreezeWindow{
		IsFrozen:    true,
		FrozenUntil: &u,
		FrozenBy:    &actorID,
		FrozenAt:    &at,
	}
	if reason != "" {
		w.FrozenReason = &reason
	}
	return w, nil
}

// FreezePreset is one of the fixed freeze durations offered to admins.
type FreezePreset string

const (
	FreezeOneWeek   FreezePreset = "1w"
	FreezeTwoWeeks  FreezePreset = "2w"
	FreezeOneMonth  FreezePreset = "1m"
	FreezeThreeDays FreezePreset = "3d"
)

var freezePresets = map[FreezePreset]time.Duration{
	FreezeThreeDays: 3 * 24 * time.Hour,
	FreezeOneWeek:   7 * 24 * time.Hour,
	FreezeTwoWeeks:  14 * 24 * time.Hour,
	FreezeOneMonth:  30 * 24 * time.Hour,
}

// Until returns the instant the preset ends when applied at now.
func (p FreezePreset) Until(now time.Time) (time.Time, bool) {
	d, ok := freezePresets[p]
	if !ok {
		return time.Time{}, false
	}
	return now.Add(d), true
}
