package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobadmin/internal/auth"
	applog "jobadmin/internal/log"
	"jobadmin/internal/middleware/ratelimit"
	"jobadmin/internal/middleware/security"
	"jobadmin/internal/middleware/trace"
	"jobadmin/internal/services"
)

// Server wires the JSON API: auth, entries, settings and the weekly
// dashboard. It owns routing only; all behaviour lives in the services.
type Server struct {
	accounts  *services.AccountService
	entries   *services.EntryService
	profiles  *services.ProfileService
	dashboard *services.DashboardService
	tokens    *auth.Tokens
	limiter   *ratelimit.Limiter
	logger    *applog.Logger
	router    *gin.Engine
}

func New(
	accounts *services.AccountService,
	entries *services.EntryService,
	profiles *services.ProfileService,
	dashboard *services.DashboardService,
	tokens *auth.Tokens,
	limiter *ratelimit.Limiter,
	logger *applog.Logger,
) *Server {
	s := &Server{
		accounts:  accounts,
		entries:   entries,
		profiles:  profiles,
		dashboard: dashboard,
		tokens:    tokens,
		limiter:   limiter,
		logger:    logger.WithComponent(applog.ComponentHTTP),
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(trace.NewMiddleware().Handler())
	router.Use(security.Headers(security.DefaultHeadersConfig()))

	router.GET("/health", s.handleHealth)

	authGroup := router.Group("/auth")
	if s.limiter != nil {
		authGroup.Use(s.limiter.Middleware())
	}
	authGroup.POST("/register", s.handleRegister)
	authGroup.POST("/login", s.handleLogin)
	authGroup.POST("/password-reset/request", s.handlePasswordResetRequest)
	authGroup.POST("/password-reset/confirm", s.handlePasswordResetConfirm)

	api := router.Group("/", RequireAuth(s.tokens))

	income := api.Group("/income")
	income.GET("", s.handleListIncome)
	income.POST("", s.handleCreateIncome)
	income.PUT("/:id", s.handleUpdateIncome)
	income.DELETE("/:id", s.handleDeleteIncome)

	expenses := api.Group("/expenses")
	expenses.GET("", s.handleListExpenses)
	expenses.POST("", s.handleCreateExpense)
	expenses.PUT("/:id", s.handleUpdateExpense)
	expenses.DELETE("/:id", s.handleDeleteExpense)

	settings := api.Group("/settings")
	settings.GET("/business", s.handleGetBusinessProfile)
	settings.PUT("/business", s.handleUpdateBusinessProfile)
	settings.PUT("/email", s.handleChangeEmail)
	settings.PUT("/password", s.handleChangePassword)

	api.GET("/dashboard/weekly", s.handleWeeklyDashboard)

	return router
}

// Handler exposes the router for the http.Server in cmd and for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
