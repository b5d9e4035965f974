package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"dorm-services/internal/handler/api"
	"dorm-services/internal/handler/middleware"
	"dorm-services/internal/pkg/config"
	"dorm-services/internal/pkg/metrics"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth        *api.AuthHandler
	Reservation *api.ReservationHandler
	Complaint   *api.ComplaintHandler
	Admin       *api.AdminHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, m *metrics.Metrics) {
	setupMiddleware(engine, cfg, m)
	setupRoutes(engine, h, authMiddleware, m)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, m *metrics.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(slog.Default(), cfg.Log))
	engine.Use(middleware.MetricsMiddleware(m))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, m *metrics.Metrics) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodGet, Path: "/status", Handler: h.Auth.Status, Mw: []gin.HandlerFunc{authMiddleware.OptionalAuth()}},
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout, Mw: []gin.HandlerFunc{authMiddleware.RequireAuth()}},
			})
		}

		reservations := apiGroup.Group("/reservations")
		{
			addRoutes(reservations, []route{
				{Method: http.MethodGet, Path: "/spaces", Handler: h.Reservation.ListSpaces},
				{Method: http.MethodGet, Path: "/availability", Handler: h.Reservation.GetAvailability},
				{Method: http.MethodPost, Path: "", Handler: h.Reservation.Create},
				{Method: http.MethodGet, Path: "/my", Handler: h.Reservation.ListMine},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Reservation.Cancel},
			})
		}

		maintenance := apiGroup.Group("/maintenance")
		{
			addRoutes(maintenance, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Complaint.Submit},
				{Method: http.MethodGet, Path: "/student/:studentId", Handler: h.Complaint.ListByStudent},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth())
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/reservations", Handler: h.Admin.ListReservations},
				{Method: http.MethodDelete, Path: "/reservations/:id/purge", Handler: h.Admin.PurgeReservation},
				{Method: http.MethodGet, Path: "/maintenance", Handler: h.Admin.ListComplaints},
				{Method: http.MethodPatch, Path: "/maintenance/:id/status", Handler: h.Admin.UpdateComplaintStatus},
				{Method: http.MethodDelete, Path: "/maintenance/:id", Handler: h.Admin.DeleteComplaint},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
