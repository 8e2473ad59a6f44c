package ladderhttp

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	ladderservice "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/application"
	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	ladderutil "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// LadderHTTPHandlers exposes the ladder service over REST.
type LadderHTTPHandlers struct {
	service  ladderservice.Service
	freeze   ladderutil.FreezeUntilParser
	clock    ladderutil.Clock
	validate *validator.Validate
	logger   *slog.Logger
}

func NewLadderHTTPHandlers(
	service ladderservice.Service,
	freeze ladderutil.FreezeUntilParser,
	clock ladderutil.Clock,
	logger *slog.Logger,
) *LadderHTTPHandlers {
	return &LadderHTTPHandlers{
		service:  service,
		freeze:   freeze,
		clock:    clock,
		validate: newValidator(),
		logger:   logger,
	}
}

func actor(r *http.Request) ladderdomain.Actor {
	a, _ := ActorFrom(r.Context())
	return a
}

func pathID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ladderdomain.Validation("invalid %s %q", param, raw)
	}
	return id, nil
}

func queryID(r *http.Request, param string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, ladderdomain.Validation("invalid %s %q", param, raw)
	}
	return &id, nil
}

func requiredQueryID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := queryID(r, param)
	if err != nil {
		return uuid.Nil, err
	}
	if id == nil {
		return uuid.Nil, ladderdomain.Validation("%s is required", param)
	}
	return *id, nil
}

// --- Administration ---

func (h *LadderHTTPHandlers) CreateLadder(w http.ResponseWriter, r *http.Request) {
	var req createLadderRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	ladder, err := h.service.CreateLadder(r.Context(), actor(r), req.Name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ladderView(ladder))
}

func (h *LadderHTTPHandlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	category, err := h.service.CreateCategory(r.Context(), actor(r), ladderservice.CreateCategoryInput{
		LadderID:       req.LadderID,
		Name:           req.Name,
		ChallengeRange: req.ChallengeRange,
		EntryFeeCents:  req.EntryFeeCents,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, categoryView(category))
}

func (h *LadderHTTPHandlers) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	var req registerTeamRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	team, err := h.service.RegisterTeam(r.Context(), actor(r), ladderservice.RegisterTeamInput{
		Name:          req.Name,
		CaptainUserID: req.CaptainUserID,
		PartnerUserID: req.PartnerUserID,
		PartnerName:   req.PartnerName,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, teamView(team, h.clock.Now()))
}

func (h *LadderHTTPHandlers) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "teamID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	team, err := h.service.GetTeam(r.Context(), teamID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, teamView(team, h.clock.Now()))
}

func (h *LadderHTTPHandlers) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "teamID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.service.DeleteTeam(r.Context(), actor(r), teamID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Rankings ---

func (h *LadderHTTPHandlers) GetStandings(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "categoryID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	standings, err := h.service.GetStandings(r.Context(), categoryID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, standingViews(standings))
}

func (h *LadderHTTPHandlers) SeedRanking(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "categoryID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req teamRef
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	ranking, err := h.service.SeedRanking(r.Context(), actor(r), categoryID, req.TeamID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rankingView(ranking))
}

func (h *LadderHTTPHandlers) SwapRanks(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "categoryID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req swapRanksRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.service.SwapRanks(r.Context(), actor(r), categoryID, req.TeamA, req.TeamB); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LadderHTTPHandlers) RemoveFromCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "categoryID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	teamID, err := pathID(r, "teamID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.service.RemoveFromCategory(r.Context(), actor(r), categoryID, teamID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LadderHTTPHandlers) AdjustStats(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "categoryID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	teamID, err := pathID(r, "teamID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req adjustStatsRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	patch := ladderdomain.StatsPatch{Points: req.Points, Wins: req.Wins, Losses: req.Losses, Streak: req.Streak}
	ranking, err := h.service.AdjustStats(r.Context(), actor(r), categoryID, teamID, patch, req.Notes)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rankingView(ranking))
}

// --- Freeze ---

func (h *LadderHTTPHandlers) FreezeTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "teamID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req freezeRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	until, err := h.freeze.ParseFreezeUntil(req.Until, h.clock)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	team, err := h.service.FreezeTeam(r.Context(), actor(r), teamID, until, req.Reason)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, teamView(team, h.clock.Now()))
}

func (h *LadderHTTPHandlers) UnfreezeTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "teamID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	team, err := h.service.UnfreezeTeam(r.Context(), actor(r), teamID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, teamView(team, h.clock.Now()))
}

// --- Challenges ---

// CheckEligibility answers whether a challenge would be allowed right now, or at as_of.
func (h *LadderHTTPHandlers) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	challengerID, err := requiredQueryID(r, "challenger_team_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	targetID, err := requiredQueryID(r, "target_team_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	categoryID, err := requiredQueryID(r, "category_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	asOf := h.clock.Now()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		asOf, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			h.writeError(w, r, ladderdomain.Validation("invalid as_of %q", raw))
			return
		}
	}

	verdict, err := h.service.CheckEligibility(r.Context(), challengerID, targetID, categoryID, asOf)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	view := EligibilityView{Eligible: verdict.Eligible, Reason: string(verdict.Reason)}
	if !verdict.Eligible {
		view.Message = ladderdomain.UserMessage(ladderdomain.EligibilityDenied(verdict.Reason))
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *LadderHTTPHandlers) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	var req createChallengeRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	challenge, err := h.service.CreateChallenge(r.Context(), actor(r), req.ChallengerTeamID, req.TargetTeamID, req.CategoryID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, challengeView(challenge))
}

func (h *LadderHTTPHandlers) AcceptChallenge(w http.ResponseWriter, r *http.Request) {
	challengeID, err := pathID(r, "challengeID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	challenge, err := h.service.AcceptChallenge(r.Context(), actor(r), challengeID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, challengeView(challenge))
}

func (h *LadderHTTPHandlers) DeclineChallenge(w http.ResponseWriter, r *http.Request) {
	challengeID, err := pathID(r, "challengeID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req declineRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	challenge, err := h.service.DeclineChallenge(r.Context(), actor(r), challengeID, req.Reason)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, challengeView(challenge))
}

func (h *LadderHTTPHandlers) CancelChallenge(w http.ResponseWriter, r *http.Request) {
	challengeID, err := pathID(r, "challengeID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	challenge, err := h.service.CancelChallenge(r.Context(), actor(r), challengeID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, challengeView(challenge))
}

func (h *LadderHTTPHandlers) ListTeamChallenges(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "teamID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var status *ladderdomain.ChallengeStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := ladderdomain.ChallengeStatus(raw)
		status = &s
	}

	challenges, err := h.service.ListChallenges(r.Context(), teamID, status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, challengeViews(challenges))
}

func (h *LadderHTTPHandlers) RecordMatchResult(w http.ResponseWriter, r *http.Request) {
	challengeID, err := pathID(r, "challengeID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req matchResultRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	record, err := h.service.RecordMatchResult(r.Context(), actor(r), ladderservice.MatchResultInput{
		ChallengeID:  challengeID,
		WinnerTeamID: req.WinnerTeamID,
		WinnerScore:  req.WinnerScore,
		LoserScore:   req.LoserScore,
		PlayedAt:     req.PlayedAt,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	view := MatchRecordView{Match: matchView(record.Match), AlreadyRecorded: record.AlreadyRecorded}
	status := http.StatusOK
	if record.Outcome != nil {
		winner := rankingView(record.Outcome.Winner)
		loser := rankingView(record.Outcome.Loser)
		view.Winner, view.Loser = &winner, &loser
		view.RanksSwapped = record.Outcome.Swapped
		status = http.StatusCreated
	}
	writeJSON(w, status, view)
}

// ExpireOverdueChallenges runs the expiry sweep on demand.
func (h *LadderHTTPHandlers) ExpireOverdueChallenges(w http.ResponseWriter, r *http.Request) {
	if !actor(r).IsAdmin {
		h.writeError(w, r, ladderdomain.Unauthorized("only admins may run the expiry sweep"))
		return
	}

	n, err := h.service.ExpireOverdueChallenges(r.Context(), h.clock.Now())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"expired": n})
}

// --- Join requests ---

func (h *LadderHTTPHandlers) CreateJoinRequest(w http.ResponseWriter, r *http.Request) {
	var req createJoinRequestRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	jr, err := h.service.CreateJoinRequest(r.Context(), actor(r), req.TeamID, req.CategoryID, req.Message)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, joinRequestView(jr))
}

func (h *LadderHTTPHandlers) ApproveJoinRequest(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathID(r, "requestID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req notesRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	ranking, err := h.service.ApproveJoinRequest(r.Context(), actor(r), requestID, req.Notes)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rankingView(ranking))
}

func (h *LadderHTTPHandlers) RejectJoinRequest(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathID(r, "requestID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req notesRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	jr, err := h.service.RejectJoinRequest(r.Context(), actor(r), requestID, req.Notes)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, joinRequestView(jr))
}

func (h *LadderHTTPHandlers) ListJoinRequests(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "categoryID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var status *ladderdomain.JoinRequestStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := ladderdomain.JoinRequestStatus(raw)
		status = &s
	}

	jrs, err := h.service.ListJoinRequests(r.Context(), categoryID, status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, joinRequestViews(jrs))
}

// --- Audit ---

func (h *LadderHTTPHandlers) ListAuditEntries(w http.ResponseWriter, r *http.Request) {
	var filter ladderdomain.AuditFilter
	var err error
	if filter.TeamID, err = queryID(r, "team_id"); err != nil {
		h.writeError(w, r, err)
		return
	}
	if filter.CategoryID, err = queryID(r, "category_id"); err != nil {
		h.writeError(w, r, err)
		return
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		filter.Limit, err = strconv.Atoi(raw)
		if err != nil || filter.Limit < 0 {
			h.writeError(w, r, ladderdomain.Validation("invalid limit %q", raw))
			return
		}
	}

	entries, err := h.service.ListAuditEntries(r.Context(), actor(r), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, auditEntryViews(entries))
}
