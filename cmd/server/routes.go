package main

import (
	"github.com/gin-gonic/gin"
	"ekoink.backend/internal/interfaces/http/handlers"
	"ekoink.backend/internal/interfaces/http/middleware"
	"ekoink.backend/internal/usecases"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	apiKeyHandler  *handlers.ApiKeyHandler
	noteHandler    *handlers.NoteHandler
	dealHandler    *handlers.DealHandler
	callHandler    *handlers.CallHandler
	usageHandler   *handlers.UsageHandler
	profileHandler *handlers.ProfileHandler
	jwtAuth        gin.HandlerFunc
}

// registerDashboardRoutes wires the JWT-protected dashboard surface under
// /api/v1.
func registerDashboardRoutes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.GET("/me", d.jwtAuth, d.authHandler.Me)
			auth.POST("/logout", d.jwtAuth, d.authHandler.Logout)
		}

		// API key management (key creation and revocation are owner-only)
		apiKeys := v1.Group("/api-keys")
		apiKeys.Use(d.jwtAuth)
		{
			apiKeys.POST("", middleware.RequireOwner(), d.apiKeyHandler.Create)
			apiKeys.GET("", d.apiKeyHandler.List)
			apiKeys.DELETE("/:id", middleware.RequireOwner(), d.apiKeyHandler.Revoke)
		}

		// Note lifecycle
		notes := v1.Group("/notes")
		notes.Use(d.jwtAuth)
		{
			notes.POST("/generate", d.noteHandler.Generate)
			notes.POST("/:id/approve", d.noteHandler.Approve)
			notes.POST("/:id/send", d.noteHandler.Send)
			notes.GET("/:id", d.noteHandler.Get)
			notes.GET("", d.noteHandler.List)
		}

		// CRM records
		deals := v1.Group("/deals")
		deals.Use(d.jwtAuth)
		{
			deals.POST("", d.dealHandler.Create)
			deals.GET("/:id", d.dealHandler.Get)
			deals.GET("", d.dealHandler.List)
		}
		calls := v1.Group("/calls")
		calls.Use(d.jwtAuth)
		{
			calls.POST("", d.callHandler.Create)
			calls.GET("/:id", d.callHandler.Get)
			calls.GET("", d.callHandler.List)
		}

		// Billing and style insight
		v1.GET("/usage", d.jwtAuth, d.usageHandler.Current)
		v1.GET("/tone-profile", d.jwtAuth, d.profileHandler.Get)
	}
}

type externalRouteDeps struct {
	noteHandler   *handlers.NoteHandler
	dealHandler   *handlers.DealHandler
	callHandler   *handlers.CallHandler
	usageHandler  *handlers.UsageHandler
	apiKeyUsecase *usecases.ApiKeyUsecase
	usageUsecase  *usecases.UsageUsecase
}

// registerExternalAPIRoutes wires the API-key-protected integration surface
// under /v1. Every route names the scope it requires; each authenticated
// request is metered against the account's monthly usage.
func registerExternalAPIRoutes(r *gin.Engine, d externalRouteDeps) {
	requireScope := func(scope string) gin.HandlerFunc {
		return middleware.APIKeyAuth(d.apiKeyUsecase, d.usageUsecase, scope)
	}

	v1 := r.Group("/v1")
	{
		notes := v1.Group("/notes")
		{
			notes.POST("/generate", requireScope("notes:generate"), d.noteHandler.Generate)
			notes.POST("/:id/approve", requireScope("notes:write"), d.noteHandler.Approve)
			notes.POST("/:id/send",
				requireScope("notes:send"),
				middleware.CardQuota(d.usageUsecase),
				middleware.IdempotencyMiddleware(),
				d.noteHandler.Send)
			notes.GET("/:id", requireScope("notes:read"), d.noteHandler.Get)
			notes.GET("", requireScope("notes:read"), d.noteHandler.List)
		}

		deals := v1.Group("/deals")
		{
			deals.POST("", requireScope("deals:write"), d.dealHandler.Create)
			deals.GET("/:id", requireScope("deals:read"), d.dealHandler.Get)
			deals.GET("", requireScope("deals:read"), d.dealHandler.List)
		}

		calls := v1.Group("/calls")
		{
			calls.POST("", requireScope("calls:write"), d.callHandler.Create)
			calls.GET("/:id", requireScope("calls:read"), d.callHandler.Get)
			calls.GET("", requireScope("calls:read"), d.callHandler.List)
		}

		v1.GET("/usage", requireScope("usage:read"), d.usageHandler.Current)
	}
}
