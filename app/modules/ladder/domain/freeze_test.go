package ladderdomain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFrozen(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name string
		w    FreezeWindow
		want bool
	}{
		{name: "not frozen", w: FreezeWindow{}, want: false},
		{name: "frozen until future", w: FreezeWindow{IsFrozen: true, FrozenUntil: &future}, want: true},
		{name: "frozen window lapsed", w: FreezeWindow{IsFrozen: true, FrozenUntil: &past}, want: false},
		{name: "until exactly now", w: FreezeWindow{IsFrozen: true, FrozenUntil: &now}, want: false},
		{name: "flag without until", w: FreezeWindow{IsFrozen: true}, want: false},
		{name: "until without flag", w: FreezeWindow{FrozenUntil: &future}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFrozen(tt.w, now))
		})
	}
}

func TestNewFreezeWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	w, err := NewFreezeWindow(now.Add(2*time.Hour), "injury", "admin-1", now)
	require.NoError(t, err)
	assert.True(t, w.IsFrozen)
	assert.Equal(t, "injury", *w.FrozenReason)
	assert.Equal(t, "admin-1", *w.FrozenBy)
	assert.True(t, IsFrozen(w, now))

	_, err = NewFreezeWindow(now, "", "admin-1", now)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewFreezeWindow(now.Add(-time.Minute), "", "admin-1", now)
	assert.ErrorIs(t, err, ErrValidation)

	w, err = NewFreezeWindow(now.Add(time.Hour), "", "admin-1", now)
	require.NoError(t, err)
	assert.Nil(t, w.FrozenReason)
}

func TestFreezeGatesEligibility(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	w, err := NewFreezeWindow(now.Add(time.Hour), "holiday", "admin-1", now)
	require.NoError(t, err)

	in := eligibleInput()

	in.TargetFrozen = IsFrozen(w, now.Add(30*time.Minute))
	assert.False(t, CanChallenge(in), "frozen target inside window")

	in.TargetFrozen = IsFrozen(w, now.Add(61*time.Minute))
	assert.True(t, CanChallenge(in), "window has passed")

	in.TargetFrozen = IsFrozen(FreezeWindow{}, now)
	assert.True(t, CanChallenge(in), "after unfreeze")
}

func TestFreezePresetUntil(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	until, ok := FreezeOneWeek.Until(now)
	require.True(t, ok)
	assert.Equal(t, now.Add(7*24*time.Hour), until)

	until, ok = FreezeOneMonth.Until(now)
	require.True(t, ok)
	assert.Equal(t, now.Add(30*24*time.Hour), until)

	_, ok = FreezePreset("forever").Until(now)
	assert.False(t, ok)
}
