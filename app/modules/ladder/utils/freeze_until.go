package ladderutil

import (
	"errors"
	"fmt"
	"strings"
	"time"

	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var ErrUnrecognizedFreezeEnd = errors.New("could not recognize freeze end")

// FreezeUntilParser turns the freeze end an admin typed into an instant.
type FreezeUntilParser interface {
	ParseFreezeUntil(input string, clock Clock) (time.Time, error)
}

type freezeUntilParser struct {
	w *when.Parser
}

func NewFreezeUntilParser() FreezeUntilParser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &freezeUntilParser{w: w}
}

// ParseFreezeUntil accepts a preset ("3d", "1w", "2w", "1m"), an RFC3339 timestamp,
// a plain date, or natural language such as "next friday" or "in 10 days".
// The result must lie after clock.Now().
func (p *freezeUntilParser) ParseFreezeUntil(input string, clock Clock) (time.Time, error) {
	now := clock.Now().UTC()
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return time.Time{}, ladderdomain.Validation("freeze end is required")
	}

	until, err := p.parse(normalized, now)
	if err != nil {
		return time.Time{}, ladderdomain.Validation("%s: %q", ErrUnrecognizedFreezeEnd.Error(), input)
	}
	if !until.After(now) {
		return time.Time{}, ladderdomain.Validation("freeze end must be in the future (parsed %s)", until.Format(time.RFC3339))
	}
	return until, nil
}

func (p *freezeUntilParser) parse(input string, now time.Time) (time.Time, error) {
	if until, ok := ladderdomain.FreezePreset(input).Until(now); ok {
		return until, nil
	}
	if t, err := time.Parse(time.RFC3339, strings.ToUpper(input)); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, input); err == nil {
		return t.UTC(), nil
	}

	r, err := p.w.Parse(input, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("when: %w", err)
	}
	if r == nil {
		return time.Time{}, ErrUnrecognizedFreezeEnd
	}
	return r.Time.UTC(), nil
}
