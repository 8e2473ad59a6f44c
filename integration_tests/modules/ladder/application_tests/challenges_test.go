package ladderintegrationtests

import (
	"sync"
	"testing"
	"time"

	ladderservice "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/application"
	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	"github.com/Black-And-White-Club/padel-ladder/integration_tests/testutils"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestChallengeLifecycle_ChallengerWinSwapsRanks(t *testing.T) {
	deps := SetupTestLadderService(t)

	fixture, err := deps.Gen.SeedCategory(deps.Ctx, deps.Service, 4, 2)
	require.NoError(t, err)
	top, challenger := fixture.Teams[1], fixture.Teams[3]

	challenge, err := deps.Service.CreateChallenge(deps.Ctx, fixture.Captain(3), challenger.ID, top.ID, fixture.Category.ID)
	require.NoError(t, err)
	require.Equal(t, ladderdomain.ChallengePending, challenge.Status)

	_, err = deps.Service.CreateChallenge(deps.Ctx, fixture.Captain(3), challenger.ID, top.ID, fixture.Category.ID)
	require.ErrorIs(t, err, ladderdomain.ErrDuplicatePending)

	_, err = deps.Service.AcceptChallenge(deps.Ctx, fixture.Captain(3), challenge.ID)
	require.ErrorIs(t, err, ladderdomain.ErrUnauthorized, "challenger cannot accept its own challenge")

	accepted, err := deps.Service.AcceptChallenge(deps.Ctx, fixture.Captain(1), challenge.ID)
	require.NoError(t, err)
	require.Equal(t, ladderdomain.ChallengeAccepted, accepted.Status)

	deps.Advance(time.Hour)
	record, err := deps.Service.RecordMatchResult(deps.Ctx, fixture.Captain(3), ladderservice.MatchResultInput{
		ChallengeID:  challenge.ID,
		WinnerTeamID: challenger.ID,
		WinnerScore:  2,
		LoserScore:   1,
	})
	require.NoError(t, err)
	require.False(t, record.AlreadyRecorded)
	require.NotNil(t, record.Outcome)
	require.True(t, record.Outcome.Swapped)

	standings, err := deps.Service.GetStandings(deps.Ctx, fixture.Category.ID)
	require.NoError(t, err)
	got := map[string]int{}
	for _, s := range standings {
		got[s.TeamID.String()] = s.Rank
	}
	want := map[string]int{
		fixture.Teams[0].ID.String(): 1,
		challenger.ID.String():       2,
		fixture.Teams[2].ID.String(): 3,
		top.ID.String():              4,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("standings after upset mismatch (-want +got):\n%s", diff)
	}

	again, err := deps.Service.RecordMatchResult(deps.Ctx, fixture.Captain(1), ladderservice.MatchResultInput{
		ChallengeID:  challenge.ID,
		WinnerTeamID: top.ID,
		WinnerScore:  2,
		LoserScore:   0,
	})
	require.NoError(t, err)
	require.True(t, again.AlreadyRecorded)
	require.Equal(t, record.Match.ID, again.Match.ID)
	require.Equal(t, challenger.ID, again.Match.WinnerTeamID)
}

func TestChallengeLifecycle_DeclineAllowsRechallenge(t *testing.T) {
	deps := SetupTestLadderService(t)

	fixture, err := deps.Gen.SeedCategory(deps.Ctx, deps.Service, 5, 5)
	require.NoError(t, err)
	x, y := 4, 1

	first, err := deps.Service.CreateChallenge(deps.Ctx, fixture.Captain(x), fixture.Teams[x].ID, fixture.Teams[y].ID, fixture.Category.ID)
	require.NoError(t, err)

	_, err = deps.Service.CreateChallenge(deps.Ctx, fixture.Captain(x), fixture.Teams[x].ID, fixture.Teams[y].ID, fixture.Category.ID)
	require.ErrorIs(t, err, ladderdomain.ErrDuplicatePending)

	declined, err := deps.Service.DeclineChallenge(deps.Ctx, fixture.Captain(y), first.ID, "")
	require.NoError(t, err)
	require.Equal(t, ladderdomain.ChallengeDeclined, declined.Status)
	require.NotNil(t, declined.RespondedAt)

	second, err := deps.Service.CreateChallenge(deps.Ctx, fixture.Captain(x), fixture.Teams[x].ID, fixture.Teams[y].ID, fixture.Category.ID)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
}

func TestRecordMatchResult_ConcurrentReportsApplyOnce(t *testing.T) {
	deps := SetupTestLadderService(t)

	fixture, err := deps.Gen.SeedCategory(deps.Ctx, deps.Service, 2, 3)
	require.NoError(t, err)

	challenge, err := deps.Service.CreateChallenge(deps.Ctx, fixture.Captain(1), fixture.Teams[1].ID, fixture.Teams[0].ID, fixture.Category.ID)
	require.NoError(t, err)
	_, err = deps.Service.AcceptChallenge(deps.Ctx, fixture.Captain(0), challenge.ID)
	require.NoError(t, err)

	const reporters = 5
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied int
		errs    []error
	)
	for range reporters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			record, err := deps.Service.RecordMatchResult(deps.Ctx, testutils.Admin, ladderservice.MatchResultInput{
				ChallengeID:  challenge.ID,
				WinnerTeamID: fixture.Teams[0].ID,
				WinnerScore:  2,
				LoserScore:   1,
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			if !record.AlreadyRecorded {
				applied++
			}
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	require.Equal(t, 1, applied)

	matches, err := testutils.CountRows(deps.Ctx, deps.BunDB, "ladder_matches")
	require.NoError(t, err)
	require.Equal(t, 1, matches)

	standings, err := deps.Service.GetStandings(deps.Ctx, fixture.Category.ID)
	require.NoError(t, err)
	require.Len(t, standings, 2)
	for _, s := range standings {
		require.Equal(t, 1, s.Wins+s.Losses, "team %s played once", s.TeamID)
	}
}

func TestCreateChallenge_EligibilityRules(t *testing.T) {
	deps := SetupTestLadderService(t)

	fixture, err := deps.Gen.SeedCategory(deps.Ctx, deps.Service, 5, 2)
	require.NoError(t, err)

	tests := []struct {
		name       string
		challenger int
		target     int
		reason     ladderdomain.DenialReason
	}{
		{name: "self challenge", challenger: 2, target: 2, reason: ladderdomain.ReasonSelfChallenge},
		{name: "downward", challenger: 1, target: 3, reason: ladderdomain.ReasonNotUpward},
		{name: "out of range", challenger: 4, target: 0, reason: ladderdomain.ReasonRangeExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := deps.Service.CreateChallenge(deps.Ctx, fixture.Captain(tt.challenger),
				fixture.Teams[tt.challenger].ID, fixture.Teams[tt.target].ID, fixture.Category.ID)
			require.ErrorIs(t, err, ladderdomain.ErrEligibilityDenied)
			require.Equal(t, tt.reason, ladderdomain.ReasonOf(err))
		})
	}

	t.Run("frozen target", func(t *testing.T) {
		_, err := deps.Service.FreezeTeam(deps.Ctx, testutils.Admin, fixture.Teams[2].ID, deps.Clock.Now().Add(72*time.Hour), "injury")
		require.NoError(t, err)

		eligibility, err := deps.Service.CheckEligibility(deps.Ctx, fixture.Teams[3].ID, fixture.Teams[2].ID, fixture.Category.ID, deps.Clock.Now())
		require.NoError(t, err)
		require.Equal(t, ladderdomain.Eligibility{Reason: ladderdomain.ReasonTargetFrozen}, eligibility)

		eligibility, err = deps.Service.CheckEligibility(deps.Ctx, fixture.Teams[3].ID, fixture.Teams[2].ID, fixture.Category.ID, deps.Clock.Now().Add(73*time.Hour))
		require.NoError(t, err)
		require.True(t, eligibility.Eligible, "freeze lapses at its end instant")

		_, err = deps.Service.UnfreezeTeam(deps.Ctx, testutils.Admin, fixture.Teams[2].ID)
		require.NoError(t, err)
		eligibility, err = deps.Service.CheckEligibility(deps.Ctx, fixture.Teams[3].ID, fixture.Teams[2].ID, fixture.Category.ID, deps.Clock.Now())
		require.NoError(t, err)
		require.True(t, eligibility.Eligible)
	})

	t.Run("incomplete roster", func(t *testing.T) {
		in := deps.Gen.SoloTeamInput()
		solo, err := deps.Service.RegisterTeam(deps.Ctx, testutils.Admin, in)
		require.NoError(t, err)
		_, err = deps.Service.SeedRanking(deps.Ctx, testutils.Admin, fixture.Category.ID, solo.ID)
		require.NoError(t, err)

		_, err = deps.Service.CreateChallenge(deps.Ctx, testutils.Admin, solo.ID, fixture.Teams[4].ID, fixture.Category.ID)
		require.ErrorIs(t, err, ladderdomain.ErrEligibilityDenied)
		require.Equal(t, ladderdomain.ReasonIncompleteRoster, ladderdomain.ReasonOf(err))
	})
}

func TestExpireOverdueChallenges(t *testing.T) {
	deps := SetupTestLadderService(t)

	fixture, err := deps.Gen.SeedCategory(deps.Ctx, deps.Service, 3, 3)
	require.NoError(t, err)

	overdue, err := deps.Service.CreateChallenge(deps.Ctx, fixture.Captain(2), fixture.Teams[2].ID, fixture.Teams[0].ID, fixture.Category.ID)
	require.NoError(t, err)
	answered, err := deps.Service.CreateChallenge(deps.Ctx, fixture.Captain(2), fixture.Teams[2].ID, fixture.Teams[1].ID, fixture.Category.ID)
	require.NoError(t, err)
	_, err = deps.Service.DeclineChallenge(deps.Ctx, fixture.Captain(1), answered.ID, "on holiday")
	require.NoError(t, err)

	deps.Advance(ladderdomain.DefaultChallengeExpiry + time.Minute)

	_, err = deps.Service.AcceptChallenge(deps.Ctx, fixture.Captain(0), overdue.ID)
	require.ErrorIs(t, err, ladderdomain.ErrInvalidTransition, "an overdue challenge cannot be accepted before the sweep")
	_, err = deps.Service.DeclineChallenge(deps.Ctx, fixture.Captain(0), overdue.ID, "too late")
	require.ErrorIs(t, err, ladderdomain.ErrInvalidTransition, "an overdue challenge cannot be declined before the sweep")

	n, err := deps.Service.ExpireOverdueChallenges(deps.Ctx, deps.Clock.Now())
	require.NoError(t, err)
	require.Equal(t, 1, n)

	expired := ladderdomain.ChallengeExpired
	list, err := deps.Service.ListChallenges(deps.Ctx, fixture.Teams[2].ID, &expired)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, overdue.ID, list[0].ID)
	require.Nil(t, list[0].RespondedAt, "expiry is not a response")
	require.Nil(t, list[0].RespondedBy)

	n, err = deps.Service.ExpireOverdueChallenges(deps.Ctx, deps.Clock.Now())
	require.NoError(t, err)
	require.Zero(t, n)
}
