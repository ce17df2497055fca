package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"orgblog/internal/authz"
	"orgblog/internal/config"
	"orgblog/internal/handlers"
	"orgblog/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	az *authz.Service,
	authHandler *handlers.AuthHandler,
	adminUserHandler *handlers.AdminUserHandler,
	orgHandler *handlers.OrgHandler,
	contentHandler *handlers.ContentHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/google", authHandler.GoogleSignIn)
	auth.Get("/verify-email", authHandler.VerifyEmail)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Public content
	api.Get("/posts", contentHandler.ListPosts)
	api.Get("/posts/:slug", contentHandler.GetPost)
	api.Get("/posts/:slug/comments", contentHandler.ListComments)
	api.Get("/categories", contentHandler.ListCategories)
	api.Get("/tags", contentHandler.ListTags)

	// Authenticated content + reporting
	api.Post("/posts/:slug/comments", middleware.JWTProtected(cfg), contentHandler.CreateComment)
	api.Post("/reports", middleware.JWTProtected(cfg), reportHandler.Create)

	// Organizations (authenticated; member mutations authorize per-org inside
	// the service, which is a different gate than the global admin group below)
	orgs := api.Group("/orgs", middleware.JWTProtected(cfg))
	orgs.Get("/", orgHandler.ListMine)
	orgs.Get("/active", orgHandler.Active)
	orgs.Get("/:slug", orgHandler.GetBySlug)
	orgs.Post("/:id/members", orgHandler.AddMember)
	orgs.Delete("/members/:memberId", orgHandler.RemoveMember)
	orgs.Post("/:id/invitations", orgHandler.Invite)

	// Admin (JWT + fresh global-role check on every request)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(az))
	admin.Post("/users", adminUserHandler.Create)
	admin.Get("/users", adminUserHandler.List)
	admin.Get("/users/:id", adminUserHandler.Get)
	admin.Patch("/users/:id", adminUserHandler.Update)
	admin.Delete("/users/:id", adminUserHandler.Delete)
	admin.Get("/reports", reportHandler.List)
	admin.Put("/reports/:id", reportHandler.Action)
}
