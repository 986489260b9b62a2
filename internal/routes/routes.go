package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/spectrumpath/aba-scheduler/internal/audit"
	"github.com/spectrumpath/aba-scheduler/internal/clock"
	"github.com/spectrumpath/aba-scheduler/internal/config"
	domain "github.com/spectrumpath/aba-scheduler/internal/domain/session"
	"github.com/spectrumpath/aba-scheduler/internal/handlers"
	"github.com/spectrumpath/aba-scheduler/internal/middleware"
	ucBatch "github.com/spectrumpath/aba-scheduler/internal/usecase/batch"
	ucComposer "github.com/spectrumpath/aba-scheduler/internal/usecase/composer"
	ucSession "github.com/spectrumpath/aba-scheduler/internal/usecase/session"
	ucTimeline "github.com/spectrumpath/aba-scheduler/internal/usecase/timeline"
)

func RegisterRoutes(r *gin.Engine, repo domain.Repository, clk clock.Clock, cfg *config.Config, logger *slog.Logger) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	auditLogger := audit.New(repo, logger)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES
	// ======================================================
	composerUC := ucComposer.New(repo, clk, cfg, auditDispatcher)
	sessionUC := ucSession.New(repo, clk, cfg, auditDispatcher)
	batchUC := ucBatch.New(repo, clk, auditDispatcher)
	timelineUC := ucTimeline.New(repo, clk, cfg)

	// ======================================================
	// HANDLERS
	// ======================================================
	catalogHandler := handlers.NewCatalogHandler()
	rosterHandler := handlers.NewRosterHandler(repo)
	sessionHandler := handlers.NewSessionHandler(sessionUC, batchUC, cfg)
	composerHandler := handlers.NewComposerHandler(composerUC)
	timelineHandler := handlers.NewTimelineHandler(timelineUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(repo)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// CATALOG
		// ------------------------------
		catalogAPI := api.Group("/catalog")
		{
			catalogAPI.GET("/intents", catalogHandler.ListIntents)
			catalogAPI.GET("/services", catalogHandler.ListServices)
			catalogAPI.GET("/locations", catalogHandler.ListLocations)
			catalogAPI.GET("/durations", catalogHandler.ListDurations)
		}

		// ------------------------------
		// ROSTER
		// ------------------------------
		api.GET("/clients", rosterHandler.ListClients)
		api.GET("/clients/:id", rosterHandler.GetClient)
		api.GET("/clients/:id/authorization", rosterHandler.GetAuthorization)
		api.GET("/staff", rosterHandler.ListStaff)
		api.GET("/rooms", rosterHandler.ListRooms)

		// ------------------------------
		// SESSIONS
		// ------------------------------
		api.GET("/sessions", sessionHandler.List)
		api.GET("/sessions/:id", sessionHandler.Get)
		api.POST("/sessions/quick", sessionHandler.QuickCreate)
		api.PATCH("/sessions/:id/position", sessionHandler.Move)
		api.PATCH("/sessions/:id/status", sessionHandler.Transition)
		api.POST("/sessions/batch", sessionHandler.Batch)

		// ------------------------------
		// COMPOSER
		// ------------------------------
		drafts := api.Group("/composer/drafts")
		{
			drafts.POST("", composerHandler.CreateDraft)
			drafts.GET("/:id", composerHandler.GetDraft)
			drafts.PATCH("/:id", composerHandler.PatchDraft)
			drafts.DELETE("/:id", composerHandler.Discard)
			drafts.POST("/:id/advance", composerHandler.Advance)
			drafts.POST("/:id/back", composerHandler.Back)
			drafts.GET("/:id/eligibility", composerHandler.Eligibility)
			drafts.GET("/:id/projection", composerHandler.Projection)
			drafts.POST("/:id/commit", composerHandler.Commit)
		}

		// ------------------------------
		// TIMELINE
		// ------------------------------
		api.GET("/timeline", timelineHandler.View)

		// ------------------------------
		// AUDIT
		// ------------------------------
		api.GET("/audit-logs", auditLogsHandler.List)
	}
}
