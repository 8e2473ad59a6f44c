package ladderhttp

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ladderservice "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/application"
	laddermocks "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/application/servicemocks"
	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	ladderutil "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/utils"
	"github.com/Black-And-White-Club/padel-ladder/pkg/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testSecret = "test-secret-at-least-32-chars-long!!"

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

type apiFixture struct {
	service *laddermocks.MockService
	tokens  jwt.Service
	router  http.Handler
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	service := laddermocks.NewMockService(ctrl)
	tokens := jwt.NewService(testSecret, "padel-ladder")
	clock := &ladderutil.FakeClock{NowFn: func() time.Time { return testNow }}

	h := NewLadderHTTPHandlers(service, ladderutil.NewFreezeUntilParser(), clock, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return &apiFixture{
		service: service,
		tokens:  tokens,
		router:  Routes(h, tokens, RouteConfig{AllowedOrigins: []string{"https://ladder.example"}}),
	}
}

func (f *apiFixture) token(t *testing.T, actorID string, role jwt.Role) string {
	t.Helper()
	tok, err := f.tokens.GenerateToken(actorID, role, time.Hour)
	require.NoError(t, err)
	return tok
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ladderdomain.NotFound("team"), http.StatusNotFound},
		{ladderdomain.AlreadyInCategory("team"), http.StatusConflict},
		{ladderdomain.DuplicatePending("challenge"), http.StatusConflict},
		{ladderdomain.InvalidTransition("accepted"), http.StatusConflict},
		{ladderdomain.ConstraintConflict(errors.New("unique")), http.StatusConflict},
		{ladderdomain.EligibilityDenied(ladderdomain.ReasonRangeExceeded), http.StatusUnprocessableEntity},
		{ladderdomain.CategoryMismatch("categories differ"), http.StatusUnprocessableEntity},
		{ladderdomain.Unauthorized("not a member"), http.StatusForbidden},
		{ladderdomain.Validation("bad"), http.StatusBadRequest},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestActorMiddleware(t *testing.T) {
	f := newAPIFixture(t)
	teamID := uuid.New()
	expired, err := f.tokens.GenerateToken("user-1", jwt.RolePlayer, -time.Minute)
	require.NoError(t, err)
	foreign, err := jwt.NewService("another-secret-that-is-long-enough!!", "padel-ladder").GenerateToken("user-1", jwt.RoleAdmin, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantMsg string
	}{
		{name: "missing token", wantMsg: "missing bearer token"},
		{name: "expired token", token: expired, wantMsg: "token has expired"},
		{name: "foreign signature", token: foreign, wantMsg: "invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodGet, "/teams/"+teamID.String(), tt.token, nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decodeBody[ErrorResponse](t, rec)
			assert.Equal(t, "unauthenticated", body.Error)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}

	t.Run("claims become the actor", func(t *testing.T) {
		f.service.EXPECT().DeleteTeam(gomock.Any(), ladderdomain.Actor{ID: "admin-1", IsAdmin: true}, teamID).Return(nil)
		rec := f.do(t, http.MethodDelete, "/teams/"+teamID.String(), f.token(t, "admin-1", jwt.RoleAdmin), nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestLadderHTTPHandlers_CreateChallenge(t *testing.T) {
	challengerID, targetID, categoryID := uuid.New(), uuid.New(), uuid.New()
	player := ladderdomain.Actor{ID: "user-1"}
	validBody := map[string]any{
		"challenger_team_id": challengerID,
		"target_team_id":     targetID,
		"category_id":        categoryID,
	}

	tests := []struct {
		name       string
		body       any
		setup      func(m *laddermocks.MockService)
		wantStatus int
		wantError  string
		wantReason string
	}{
		{
			name: "created",
			body: validBody,
			setup: func(m *laddermocks.MockService) {
				m.EXPECT().CreateChallenge(gomock.Any(), player, challengerID, targetID, categoryID).Return(ladderdomain.Challenge{
					ID:               uuid.New(),
					ChallengerTeamID: challengerID,
					ChallengedTeamID: targetID,
					CategoryID:       categoryID,
					Status:           ladderdomain.ChallengePending,
					CreatedAt:        testNow,
					ExpiresAt:        testNow.Add(ladderdomain.DefaultChallengeExpiry),
				}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "ineligible",
			body: validBody,
			setup: func(m *laddermocks.MockService) {
				m.EXPECT().CreateChallenge(gomock.Any(), player, challengerID, targetID, categoryID).
					Return(ladderdomain.Challenge{}, ladderdomain.EligibilityDenied(ladderdomain.ReasonTargetFrozen))
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  string(ladderdomain.KindEligibilityDenied),
			wantReason: string(ladderdomain.ReasonTargetFrozen),
		},
		{
			name: "duplicate pending",
			body: validBody,
			setup: func(m *laddermocks.MockService) {
				m.EXPECT().CreateChallenge(gomock.Any(), player, challengerID, targetID, categoryID).
					Return(ladderdomain.Challenge{}, ladderdomain.DuplicatePending("challenge already pending"))
			},
			wantStatus: http.StatusConflict,
			wantError:  string(ladderdomain.KindDuplicatePending),
		},
		{
			name:       "missing target is rejected before the service",
			body:       map[string]any{"challenger_team_id": challengerID, "category_id": categoryID},
			setup:      func(m *laddermocks.MockService) {},
			wantStatus: http.StatusBadRequest,
			wantError:  string(ladderdomain.KindValidation),
		},
		{
			name:       "unknown fields are rejected",
			body:       map[string]any{"challenger_team_id": challengerID, "target_team_id": targetID, "category_id": categoryID, "rank": 1},
			setup:      func(m *laddermocks.MockService) {},
			wantStatus: http.StatusBadRequest,
			wantError:  string(ladderdomain.KindValidation),
		},
		{
			name: "infrastructure failure",
			body: validBody,
			setup: func(m *laddermocks.MockService) {
				m.EXPECT().CreateChallenge(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(ladderdomain.Challenge{}, errors.New("pool exhausted"))
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture(t)
			tt.setup(f.service)

			rec := f.do(t, http.MethodPost, "/challenges", f.token(t, "user-1", jwt.RolePlayer), tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantError == "" {
				view := decodeBody[ChallengeView](t, rec)
				assert.Equal(t, "pending", view.Status)
				assert.Equal(t, targetID, view.ChallengedTeamID)
				return
			}
			body := decodeBody[ErrorResponse](t, rec)
			assert.Equal(t, tt.wantError, body.Error)
			assert.Equal(t, tt.wantReason, body.Reason)
			assert.NotEmpty(t, body.Message)
			assert.NotContains(t, body.Message, "pool exhausted")
		})
	}
}

func TestLadderHTTPHandlers_FreezeTeam(t *testing.T) {
	teamID := uuid.New()
	admin := ladderdomain.Actor{ID: "admin-1", IsAdmin: true}

	t.Run("preset is resolved against the clock", func(t *testing.T) {
		f := newAPIFixture(t)
		until := testNow.Add(7 * 24 * time.Hour)
		f.service.EXPECT().FreezeTeam(gomock.Any(), admin, teamID, until, "injury").DoAndReturn(
			func(_ any, _ ladderdomain.Actor, id uuid.UUID, until time.Time, reason string) (ladderdomain.Team, error) {
				w, err := ladderdomain.NewFreezeWindow(until, reason, admin.ID, testNow)
				require.NoError(t, err)
				return ladderdomain.Team{ID: id, Name: "Lobbers", CaptainUserID: "user-1", Freeze: w}, nil
			})

		rec := f.do(t, http.MethodPost, "/teams/"+teamID.String()+"/freeze", f.token(t, "admin-1", jwt.RoleAdmin),
			map[string]string{"until": "1w", "reason": "injury"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		view := decodeBody[TeamView](t, rec)
		assert.True(t, view.Frozen)
		require.NotNil(t, view.FrozenUntil)
		assert.True(t, until.Equal(*view.FrozenUntil))
	})

	t.Run("past end is rejected before the service", func(t *testing.T) {
		f := newAPIFixture(t)
		rec := f.do(t, http.MethodPost, "/teams/"+teamID.String()+"/freeze", f.token(t, "admin-1", jwt.RoleAdmin),
			map[string]string{"until": "2020-01-01"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLadderHTTPHandlers_RecordMatchResult(t *testing.T) {
	challengeID, winnerID, loserID := uuid.New(), uuid.New(), uuid.New()
	match := ladderdomain.Match{ID: uuid.New(), ChallengeID: challengeID, WinnerTeamID: winnerID, LoserTeamID: loserID, WinnerScore: 6, LoserScore: 3, PlayedAt: testNow}

	tests := []struct {
		name       string
		record     ladderservice.MatchRecord
		wantStatus int
	}{
		{
			name: "applied",
			record: ladderservice.MatchRecord{
				Match: match,
				Outcome: &ladderdomain.MatchOutcome{
					Winner:  ladderdomain.Ranking{TeamID: winnerID, Rank: 2},
					Loser:   ladderdomain.Ranking{TeamID: loserID, Rank: 3},
					Swapped: true,
				},
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "already recorded",
			record:     ladderservice.MatchRecord{Match: match, AlreadyRecorded: true},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture(t)
			f.service.EXPECT().RecordMatchResult(gomock.Any(), ladderdomain.Actor{ID: "user-1"}, ladderservice.MatchResultInput{
				ChallengeID:  challengeID,
				WinnerTeamID: winnerID,
				WinnerScore:  6,
				LoserScore:   3,
			}).Return(tt.record, nil)

			rec := f.do(t, http.MethodPost, "/challenges/"+challengeID.String()+"/result", f.token(t, "user-1", jwt.RolePlayer),
				map[string]any{"winner_team_id": winnerID, "winner_score": 6, "loser_score": 3})
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			view := decodeBody[MatchRecordView](t, rec)
			assert.Equal(t, match.ID, view.Match.ID)
			assert.Equal(t, tt.record.AlreadyRecorded, view.AlreadyRecorded)
			assert.Equal(t, tt.record.Outcome != nil, view.Winner != nil)
		})
	}
}

func TestLadderHTTPHandlers_PublicReads(t *testing.T) {
	categoryID, challengerID, targetID := uuid.New(), uuid.New(), uuid.New()

	t.Run("standings", func(t *testing.T) {
		f := newAPIFixture(t)
		f.service.EXPECT().GetStandings(gomock.Any(), categoryID).Return([]ladderdomain.Standing{
			{Ranking: ladderdomain.Ranking{TeamID: targetID, Rank: 1, Points: 1016}, TeamName: "Smashers"},
			{Ranking: ladderdomain.Ranking{TeamID: challengerID, Rank: 2, Points: 984}, TeamName: "Lobbers", Frozen: true},
		}, nil)

		rec := f.do(t, http.MethodGet, "/categories/"+categoryID.String()+"/standings", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		rows := decodeBody[[]StandingView](t, rec)
		require.Len(t, rows, 2)
		assert.Equal(t, "Smashers", rows[0].TeamName)
		assert.True(t, rows[1].Frozen)
	})

	t.Run("eligibility denial carries a message", func(t *testing.T) {
		f := newAPIFixture(t)
		f.service.EXPECT().CheckEligibility(gomock.Any(), challengerID, targetID, categoryID, testNow).
			Return(ladderdomain.Eligibility{Reason: ladderdomain.ReasonNotUpward}, nil)

		rec := f.do(t, http.MethodGet, "/eligibility?challenger_team_id="+challengerID.String()+
			"&target_team_id="+targetID.String()+"&category_id="+categoryID.String(), "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		view := decodeBody[EligibilityView](t, rec)
		assert.False(t, view.Eligible)
		assert.Equal(t, string(ladderdomain.ReasonNotUpward), view.Reason)
		assert.Equal(t, ladderdomain.UserMessage(ladderdomain.EligibilityDenied(ladderdomain.ReasonNotUpward)), view.Message)
	})

	t.Run("eligibility requires every id", func(t *testing.T) {
		f := newAPIFixture(t)
		rec := f.do(t, http.MethodGet, "/eligibility?challenger_team_id="+challengerID.String(), "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLadderHTTPHandlers_ExpireOverdueChallenges(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/challenges/expire", f.token(t, "user-1", jwt.RolePlayer), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	f.service.EXPECT().ExpireOverdueChallenges(gomock.Any(), testNow).Return(3, nil)
	rec = f.do(t, http.MethodPost, "/challenges/expire", f.token(t, "admin-1", jwt.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]int{"expired": 3}, decodeBody[map[string]int](t, rec))
}

func TestLadderHTTPHandlers_ListFilters(t *testing.T) {
	teamID, categoryID := uuid.New(), uuid.New()

	t.Run("challenge status is passed through", func(t *testing.T) {
		f := newAPIFixture(t)
		pending := ladderdomain.ChallengePending
		f.service.EXPECT().ListChallenges(gomock.Any(), teamID, &pending).Return(nil, nil)

		rec := f.do(t, http.MethodGet, "/teams/"+teamID.String()+"/challenges?status=pending", f.token(t, "user-1", jwt.RolePlayer), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("audit filter", func(t *testing.T) {
		f := newAPIFixture(t)
		f.service.EXPECT().ListAuditEntries(gomock.Any(), ladderdomain.Actor{ID: "admin-1", IsAdmin: true}, ladderdomain.AuditFilter{
			CategoryID: &categoryID,
			Limit:      20,
		}).Return([]ladderdomain.AuditEntry{{ID: uuid.New(), AdminUserID: "admin-1", Action: ladderdomain.AuditRankingSwapped, CategoryID: &categoryID}}, nil)

		rec := f.do(t, http.MethodGet, "/audit?category_id="+categoryID.String()+"&limit=20", f.token(t, "admin-1", jwt.RoleAdmin), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		entries := decodeBody[[]AuditEntryView](t, rec)
		require.Len(t, entries, 1)
		assert.Equal(t, string(ladderdomain.AuditRankingSwapped), entries[0].Action)
	})

	t.Run("bad limit", func(t *testing.T) {
		f := newAPIFixture(t)
		rec := f.do(t, http.MethodGet, "/audit?limit=-1", f.token(t, "admin-1", jwt.RoleAdmin), nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMiddleware_CORSAndRateLimit(t *testing.T) {
	f := newAPIFixture(t)

	req := httptest.NewRequest(http.MethodOptions, "/challenges", nil)
	req.Header.Set("Origin", "https://ladder.example")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://ladder.example", rec.Header().Get("Access-Control-Allow-Origin"))

	limiter := NewIPRateLimiter(1, 1)
	h := RateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
