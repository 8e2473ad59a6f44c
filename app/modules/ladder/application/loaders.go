package ladderservice

import (
	"context"
	"errors"

	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	ladderdb "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// notFound converts the repository miss into the domain NotFound kind.
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, ladderdb.ErrNotFound) {
		return ladderdomain.NotFound(format, args...)
	}
	return err
}

func (s *LadderService) loadTeam(ctx context.Context, db bun.IDB, id uuid.UUID) (ladderdomain.Team, error) {
	t, err := s.repo.GetTeam(ctx, db, id)
	if err != nil {
		return ladderdomain.Team{}, notFound(err, "team %s", id)
	}
	return t.ToDomain(), nil
}

// lockTeam row-locks the team for the rest of the transaction.
func (s *LadderService) lockTeam(ctx context.Context, db bun.IDB, id uuid.UUID) (ladderdomain.Team, error) {
	t, err := s.repo.GetTeamForUpdate(ctx, db, id)
	if err != nil {
		return ladderdomain.Team{}, notFound(err, "team %s", id)
	}
	return t.ToDomain(), nil
}

func (s *LadderService) loadCategory(ctx context.Context, db bun.IDB, id uuid.UUID) (ladderdomain.Category, error) {
	c, err := s.repo.GetCategory(ctx, db, id)
	if err != nil {
		return ladderdomain.Category{}, notFound(err, "category %s", id)
	}
	return c.ToDomain(), nil
}

func (s *LadderService) lockChallenge(ctx context.Context, db bun.IDB, id uuid.UUID) (ladderdomain.Challenge, error) {
	c, err := s.repo.GetChallengeForUpdate(ctx, db, id)
	if err != nil {
		return ladderdomain.Challenge{}, notFound(err, "challenge %s", id)
	}
	return c.ToDomain(), nil
}
