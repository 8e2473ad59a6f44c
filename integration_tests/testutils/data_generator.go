package testutils

import (
	"context"
	"fmt"
	"time"

	ladderservice "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/application"
	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	"github.com/brianvoe/gofakeit/v7"
)

// Admin is the actor integration tests use for administrative setup.
var Admin = ladderdomain.Actor{ID: "admin-it", IsAdmin: true}

// TestDataGenerator creates ladder fixtures with fake but stable data.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a generator; without a seed it is time based.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	s := time.Now().UnixNano()
	if len(seed) > 0 {
		s = seed[0]
	}
	return &TestDataGenerator{faker: gofakeit.New(uint64(s)), seed: s}
}

// TeamInput returns a complete two-player team with a fresh captain ID.
func (g *TestDataGenerator) TeamInput() ladderservice.RegisterTeamInput {
	partner := g.faker.FirstName()
	return ladderservice.RegisterTeamInput{
		Name:          fmt.Sprintf("%s / %s", g.faker.FirstName(), partner),
		CaptainUserID: g.faker.UUID(),
		PartnerName:   &partner,
	}
}

// SoloTeamInput returns a team with no partner recorded anywhere.
func (g *TestDataGenerator) SoloTeamInput() ladderservice.RegisterTeamInput {
	return ladderservice.RegisterTeamInput{
		Name:          g.faker.LastName(),
		CaptainUserID: g.faker.UUID(),
	}
}

// CategoryFixture is a seeded category; Teams[i] holds rank i+1.
type CategoryFixture struct {
	Ladder   ladderdomain.Ladder
	Category ladderdomain.Category
	Teams    []ladderdomain.Team
}

// Captain returns the actor playing for team i.
func (f CategoryFixture) Captain(i int) ladderdomain.Actor {
	return ladderdomain.Actor{ID: f.Teams[i].CaptainUserID}
}

// SeedCategory creates a ladder, one category and size seeded teams.
func (g *TestDataGenerator) SeedCategory(ctx context.Context, svc ladderservice.Service, size, challengeRange int) (CategoryFixture, error) {
	var f CategoryFixture
	var err error

	f.Ladder, err = svc.CreateLadder(ctx, Admin, g.faker.City()+" Padel")
	if err != nil {
		return f, fmt.Errorf("create ladder: %w", err)
	}
	f.Category, err = svc.CreateCategory(ctx, Admin, ladderservice.CreateCategoryInput{
		LadderID:       f.Ladder.ID,
		Name:           g.faker.RandomString([]string{"Mixed A", "Men B", "Women C", "Open"}),
		ChallengeRange: challengeRange,
	})
	if err != nil {
		return f, fmt.Errorf("create category: %w", err)
	}

	for range size {
		team, err := g.RegisterTeam(ctx, svc)
		if err != nil {
			return f, err
		}
		if _, err := svc.SeedRanking(ctx, Admin, f.Category.ID, team.ID); err != nil {
			return f, fmt.Errorf("seed ranking: %w", err)
		}
		f.Teams = append(f.Teams, team)
	}
	return f, nil
}

// RegisterTeam registers a complete team as its own captain.
func (g *TestDataGenerator) RegisterTeam(ctx context.Context, svc ladderservice.Service) (ladderdomain.Team, error) {
	in := g.TeamInput()
	team, err := svc.RegisterTeam(ctx, ladderdomain.Actor{ID: in.CaptainUserID}, in)
	if err != nil {
		return team, fmt.Errorf("register team: %w", err)
	}
	return team, nil
}
