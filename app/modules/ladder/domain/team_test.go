package ladderdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestIsTeamComplete(t *testing.T) {
	tests := []struct {
		name string
		team Team
		want bool
	}{
		{name: "captain only", team: Team{Name: "Smashers", CaptainUserID: "u1"}, want: false},
		{name: "registered partner", team: Team{Name: "Smashers", CaptainUserID: "u1", PartnerUserID: strPtr("u2")}, want: true},
		{name: "recorded partner name", team: Team{Name: "Smashers", CaptainUserID: "u1", PartnerName: strPtr("Bea")}, want: true},
		{name: "blank partner name", team: Team{Name: "Smashers", CaptainUserID: "u1", PartnerName: strPtr("  ")}, want: false},
		{name: "name encodes partner with slash", team: Team{Name: "Ana / Bea", CaptainUserID: "u1"}, want: true},
		{name: "name encodes partner with ampersand", team: Team{Name: "Ana & Bea", CaptainUserID: "u1"}, want: true},
		{name: "dangling separator", team: Team{Name: "Ana / ", CaptainUserID: "u1"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTeamComplete(tt.team))
		})
	}
}

func TestTeamHasMember(t *testing.T) {
	team := Team{CaptainUserID: "u1", PartnerUserID: strPtr("u2")}
	assert.True(t, team.HasMember("u1"))
	assert.True(t, team.HasMember("u2"))
	assert.False(t, team.HasMember("u3"))
	assert.False(t, team.HasMember(""))
}
