package ladderhttp

import (
	"github.com/Black-And-White-Club/padel-ladder/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

// RouteConfig carries the edge settings of the REST surface.
type RouteConfig struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Routes mounts the ladder API. Standings and eligibility are public; everything
// else needs a bearer token.
func Routes(h *LadderHTTPHandlers, tokens jwt.Service, cfg RouteConfig) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(CORSMiddleware(cfg.AllowedOrigins))
	if cfg.RateLimitRPS > 0 {
		r.Use(RateLimitMiddleware(NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), max(cfg.RateLimitBurst, 1))))
	}

	r.Get("/categories/{categoryID}/standings", h.GetStandings)
	r.Get("/eligibility", h.CheckEligibility)

	r.Group(func(r chi.Router) {
		r.Use(ActorMiddleware(tokens))

		r.Post("/ladders", h.CreateLadder)

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", h.CreateCategory)
			r.Route("/{categoryID}", func(r chi.Router) {
				r.Post("/rankings", h.SeedRanking)
				r.Post("/rankings/swap", h.SwapRanks)
				r.Delete("/rankings/{teamID}", h.RemoveFromCategory)
				r.Patch("/rankings/{teamID}/stats", h.AdjustStats)
				r.Get("/join-requests", h.ListJoinRequests)
			})
		})

		r.Route("/teams", func(r chi.Router) {
			r.Post("/", h.RegisterTeam)
			r.Route("/{teamID}", func(r chi.Router) {
				r.Get("/", h.GetTeam)
				r.Delete("/", h.DeleteTeam)
				r.Post("/freeze", h.FreezeTeam)
				r.Delete("/freeze", h.UnfreezeTeam)
				r.Get("/challenges", h.ListTeamChallenges)
			})
		})

		r.Route("/challenges", func(r chi.Router) {
			r.Post("/", h.CreateChallenge)
			r.Post("/expire", h.ExpireOverdueChallenges)
			r.Route("/{challengeID}", func(r chi.Router) {
				r.Post("/accept", h.AcceptChallenge)
				r.Post("/decline", h.DeclineChallenge)
				r.Post("/cancel", h.CancelChallenge)
				r.Post("/result", h.RecordMatchResult)
			})
		})

		r.Route("/join-requests", func(r chi.Router) {
			r.Post("/", h.CreateJoinRequest)
			r.Post("/{requestID}/approve", h.ApproveJoinRequest)
			r.Post("/{requestID}/reject", h.RejectJoinRequest)
		})

		r.Get("/audit", h.ListAuditEntries)
	})

	return r
}
