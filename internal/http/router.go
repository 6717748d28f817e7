// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, error
// formatting, metrics, CORS, security headers, and login rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - A single terminal error formatter; handlers never write error bodies
//   - Deterministic, minimal router setup; all dependencies injected
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/medrec/go-medrec-backend/internal/apperr"
	"github.com/medrec/go-medrec-backend/internal/config"
	"github.com/medrec/go-medrec-backend/internal/domain"
	"github.com/medrec/go-medrec-backend/internal/http/handlers"
	"github.com/medrec/go-medrec-backend/internal/http/middleware"
	"github.com/medrec/go-medrec-backend/internal/services"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine, then mounts the versioned public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything (when enabled)
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. ErrorHandler: terminal formatter for errors attached downstream
//  6. Body size limiter
//  7. Metrics, gzip, CORS, security headers
//
// Authentication is per-route: a Guard backed by the AuthService gates the
// protected surface, with role and ownership checks layered where needed.
// Only /auth/login is rate limited (per client IP).
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	if cfg.OTEL.Enabled {
		r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	}

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key",
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Terminal error formatter. Everything downstream reports failures via
	// c.Error; nothing else writes an error body.
	r.Use(middleware.ErrorHandler(!cfg.IsProduction()))

	// 6) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Compress responses; /metrics stays uncompressed for scrapers.
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// CORS. No configured origins means an open policy, which is safe here
	// because credentials stay disabled.
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Security headers (HSTS only when enabled and request is HTTPS).
	// NoStore keeps medical data out of shared caches.
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      true,
		EnablePolicy: true,
	}))

	// Fallbacks go through the same formatter as everything else.
	r.NoRoute(func(c *gin.Context) {
		c.Error(apperr.New("route not found", http.StatusNotFound))
	})
	r.NoMethod(func(c *gin.Context) {
		c.Error(apperr.New("method not allowed", http.StatusMethodNotAllowed))
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← db/config
	authSvc := services.NewAuthService(db, cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	h := handlers.New(
		authSvc,
		services.NewUserService(db, cfg.Auth.BcryptCost),
		services.NewPersonService(db),
		services.NewPatientService(db),
		services.NewDoctorService(db),
		services.NewAreaService(db),
		services.NewReportTypeService(db),
		services.NewHealthCenterService(db),
		services.NewReportService(db),
	)

	// Token guard; the auth service doubles as the identity resolver so a
	// deactivated account is rejected even with a still-valid token.
	guard := middleware.NewGuard(cfg.Auth.JWTSecret, authSvc)
	authed := guard.RequireAuth()
	optional := guard.OptionalAuth()
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// Brute-force protection on credential checks only.
	loginRL := middleware.NewRateLimiter(
		cfg.Auth.LoginRateRPS, cfg.Auth.LoginRateBurst, middleware.KeyByClientIP())

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Auth
		api.POST("/auth/login", loginRL.Handler(), h.Login)
		api.GET("/auth/me", authed, h.Me)

		// Users (registration is open; management is gated)
		api.POST("/users", optional, h.RegisterUser)
		api.GET("/users", authed, adminOnly, h.ListUsers)
		api.GET("/users/:id", authed, middleware.RequireOwnershipOrAdmin("id"), h.GetUser)
		api.PATCH("/users/:id", authed, middleware.RequireOwnershipOrAdmin("id"), h.UpdateUser)
		api.DELETE("/users/:id", authed, adminOnly, h.DeleteUser)

		// Persons (create stays open so registration flows can pre-create identities)
		api.POST("/persons", optional, h.CreatePerson)
		api.GET("/persons", authed, h.ListPersons)
		api.GET("/persons/search", authed, h.SearchPersons)
		api.GET("/persons/:id", authed, h.GetPerson)
		api.PATCH("/persons/:id", authed, h.UpdatePerson)
		api.DELETE("/persons/:id", authed, h.DeletePerson)

		// Patients
		api.POST("/patients", authed, h.CreatePatient)
		api.GET("/patients", authed, h.ListPatients)
		api.GET("/patients/search", authed, h.SearchPatients)
		api.GET("/patients/:id", authed, h.GetPatient)
		api.PATCH("/patients/:id", authed, h.UpdatePatient)
		api.DELETE("/patients/:id", authed, h.DeletePatient)

		// Doctors
		api.POST("/doctors", authed, h.CreateDoctor)
		api.GET("/doctors", authed, h.ListDoctors)
		api.GET("/doctors/:id", authed, h.GetDoctor)
		api.PATCH("/doctors/:id", authed, h.UpdateDoctor)
		api.DELETE("/doctors/:id", authed, h.DeleteDoctor)

		// Catalogs (reads for any authenticated user, mutations admin)
		api.POST("/areas", authed, adminOnly, h.CreateArea)
		api.GET("/areas", authed, h.ListAreas)
		api.GET("/areas/:id", authed, h.GetArea)
		api.PATCH("/areas/:id", authed, adminOnly, h.UpdateArea)
		api.DELETE("/areas/:id", authed, adminOnly, h.DeleteArea)

		api.POST("/report-types", authed, adminOnly, h.CreateReportType)
		api.GET("/report-types", authed, h.ListReportTypes)
		api.GET("/report-types/:id", authed, h.GetReportType)
		api.PATCH("/report-types/:id", authed, adminOnly, h.UpdateReportType)
		api.DELETE("/report-types/:id", authed, adminOnly, h.DeleteReportType)

		api.POST("/health-centers", authed, adminOnly, h.CreateHealthCenter)
		api.GET("/health-centers", authed, h.ListHealthCenters)
		api.GET("/health-centers/:id", authed, h.GetHealthCenter)
		api.PATCH("/health-centers/:id", authed, adminOnly, h.UpdateHealthCenter)
		api.DELETE("/health-centers/:id", authed, adminOnly, h.DeleteHealthCenter)

		// Medical reports
		api.POST("/reports", authed, h.CreateReport)
		api.GET("/reports", authed, h.ListReports)
		api.GET("/reports/search", authed, h.SearchReports)
		api.GET("/reports/:id", authed, h.GetReport)
		api.PATCH("/reports/:id", authed, h.UpdateReport)
		api.DELETE("/reports/:id", authed, h.DeleteReport)
		api.POST("/reports/:id/images", authed, h.AddReportImages)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
