package ladderdomain

import "strings"

// partnerSeparators mark a team name that records both players, e.g. "Ana / Bea".
var partnerSeparators = []string{" / ", " & ", " + ", " y "}

// IsTeamComplete reports whether a team has the two players a ladder match needs.
// A partner may be a registered user, a recorded name, or encoded in the team name.
func IsTeamComplete(t Team) bool {
	if t.PartnerUserID != nil && strings.TrimSpace(*t.PartnerUserID) != "" {
		return true
	}
	if t.PartnerName != nil && strings.TrimSpace(*t.PartnerName) != "" {
		return true
	}
	return nameEncodesPartner(t.Name)
}

func nameEncodesPartner(name string) bool {
	for _, sep := range partnerSeparators {
		left, right, ok := strings.Cut(name, sep)
		if ok && strings.TrimSpace(left) != "" && strings.TrimSpace(right) != "" {
			return true
		}
	}
	return false
}
