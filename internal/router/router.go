package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/sixphrase/slot-reservation/internal/config"
	"github.com/sixphrase/slot-reservation/internal/handler"
	"github.com/sixphrase/slot-reservation/internal/middleware"
	"github.com/sixphrase/slot-reservation/internal/model"
)

// Handlers bundles every handler the API mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Slots       *handler.SlotHandler
	Departments *handler.DepartmentHandler
	Submissions *handler.SubmissionHandler
	Admin       *handler.AdminHandler
}

// Register mounts all routes on the Echo instance.  rdb may be nil, in
// which case the response cache and rate limiter degrade to pass-through.
//
// The surface splits four ways:
//   - unauthenticated: health check, lock status, login/refresh, seed;
//   - authenticated reads: slot grid, rule derivations, catalog listings;
//   - authenticated writes: the submission endpoint (rate limited);
//   - admin: lock gate, resets, submission and account administration.
func Register(e *echo.Echo, h Handlers, jwtSecret string, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)
	e.GET("/v1/status", h.Admin.Status)

	// Session endpoints; no JWT required.
	authGroup := e.Group("/v1/auth")
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)

	// Development catalog bootstrap, guarded by the seed key.
	e.POST("/v1/seed", h.Admin.Seed)

	// Everything below requires a valid access token.
	api := e.Group("/v1")
	api.Use(middleware.JWTAuth(jwtSecret))
	api.Use(middleware.RequireRole(model.RoleAdmin, model.RoleDepartmentHead))

	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/me", h.Auth.Me)

	// Grid and rule derivations; cached briefly when Redis is present.
	reads := api.Group("")
	reads.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	reads.GET("/slots", h.Slots.List)
	reads.GET("/slots/slot3", h.Slots.Slot3)
	reads.GET("/slots/:id/slot2-options", h.Slots.Slot2Options)
	reads.GET("/departments", h.Departments.List)
	reads.GET("/departments/:id/sections", h.Departments.Sections)

	api.POST("/slots/validate", h.Slots.Validate)

	// The one write that matters; token-bucket rate limited per caller.
	api.POST("/submissions", h.Submissions.Create, middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	api.GET("/submissions/mine", h.Submissions.Mine)

	// Coordinator operations.
	admin := api.Group("/admin")
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.PUT("/lock", h.Admin.SetLock)
	admin.POST("/slots/reset", h.Admin.ResetSlots)
	admin.GET("/submissions", h.Admin.ListSubmissions)
	admin.DELETE("/submissions/:id", h.Admin.DeleteSubmission)
	admin.POST("/submissions/clear", h.Admin.ClearSubmissions)
	admin.POST("/department-heads", h.Admin.CreateDepartmentHead)
	admin.POST("/departments", h.Admin.CreateDepartment)
	admin.POST("/departments/:id/sections", h.Admin.CreateSection)
}
