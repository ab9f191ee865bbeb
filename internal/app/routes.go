package app

import (
	"github.com/connyyu/pdbstats/internal/admin"
	"github.com/connyyu/pdbstats/internal/dashboard"
	"github.com/connyyu/pdbstats/internal/middleware"
	"github.com/connyyu/pdbstats/internal/platform/jwt"
	"github.com/connyyu/pdbstats/internal/platform/router"
	"github.com/connyyu/pdbstats/internal/platform/validation"
	"github.com/connyyu/pdbstats/internal/stats"
)

type routeHandlers struct {
	stats     *stats.Handler
	dashboard *dashboard.Handler
	admin     *admin.Handler
	health    *HealthHandler
}

func mountRoutes(r router.Router, handlers *routeHandlers, validator validation.Validator, signer jwt.Signer, maxBodyBytes int64) {
	r.Get("/health", handlers.health.Check)
	r.Get("/", handlers.dashboard.Show)

	r.Group("/api/v1", func(gr router.Router) {
		gr.Get("/techniques", handlers.stats.Techniques)
		gr.Get("/counts", handlers.stats.Counts)
		gr.Get("/summary", handlers.stats.Summary)

		gr.Post("/admin/token", handlers.admin.IssueToken,
			middleware.CheckContentType,
			middleware.DecodePayload[admin.TokenRequest](maxBodyBytes),
			middleware.ValidateInput[admin.TokenRequest](validator))
		gr.Post("/admin/refresh", handlers.admin.Refresh,
			admin.RequireToken(signer))
	})
}
