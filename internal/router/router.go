package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/portal-backend/internal/config"
	"github.com/stemsi/portal-backend/internal/handler"
	"github.com/stemsi/portal-backend/internal/middleware"
	"github.com/stemsi/portal-backend/internal/response"
	"github.com/stemsi/portal-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Result     *handler.ResultHandler
	Assessment *handler.AssessmentHandler
	Snapshot   *handler.SnapshotHandler
	WS         *handler.WSHandler
	System     *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// loginLimiter may be nil.
func SetupRouter(
	authService *service.AuthService,
	loginLimiter *middleware.RateLimiter,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// An empty AllowedOrigins allows every origin so dev works without
	// extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.AccessLog(log))
	router.Use(middleware.Brotli())

	router.GET("/health", handlers.System.Health)

	requireAuth := []gin.HandlerFunc{
		middleware.RequireJWT(authService),
		middleware.CheckSession(authService),
	}

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		if loginLimiter != nil {
			auth.POST("/login", loginLimiter.Middleware(), handlers.Auth.Login)
		} else {
			auth.POST("/login", handlers.Auth.Login)
		}

		auth.POST("/logout", append(requireAuth, handlers.Auth.Logout)...)
		auth.GET("/me", append(requireAuth, handlers.Auth.Me)...)
	}

	// ─── 2. Student Group ──────────────────────────────────────────────
	student := router.Group("/api/v1/student")
	student.Use(requireAuth...)
	student.Use(middleware.RequireStudent(), middleware.NoStore())
	{
		student.GET("/results", handlers.Result.GetMyResults)
		student.GET("/results/export", handlers.Result.ExportMyResults)
		student.GET("/assessments", handlers.Result.GetMyAssessments)
	}

	// ─── 3. WebSocket Group (token in query) ───────────────────────────
	wsGroup := router.Group("/ws/v1/student")
	wsGroup.Use(requireAuth...)
	wsGroup.Use(middleware.RequireStudent())
	{
		wsGroup.GET("/results/stream", handlers.WS.ResultsStream)
	}

	// ─── 4. Staff Group (teacher, admin) ───────────────────────────────
	staff := router.Group("/api/v1/staff")
	staff.Use(requireAuth...)
	staff.Use(middleware.RequireStaff(), middleware.NoStore())
	{
		staff.GET("/students/:id/results", handlers.Assessment.GetStudentResults)
		staff.GET("/students/:id/assessments", handlers.Assessment.ListStudentAssessments)
		staff.POST("/assessments", handlers.Assessment.CreateAssessment)
		staff.PUT("/assessments/:id", handlers.Assessment.UpdateAssessment)
		staff.DELETE("/assessments/:id", handlers.Assessment.DeleteAssessment)
	}

	// ─── 5. Admin Group ────────────────────────────────────────────────
	admin := router.Group("/api/v1/admin")
	admin.Use(requireAuth...)
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/results", handlers.Snapshot.ListSnapshots)
	}

	return router
}
