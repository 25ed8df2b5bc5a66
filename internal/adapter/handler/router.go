package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	"github.com/johnquangdev/weg-assembly/internal/usecase/access"
	"github.com/johnquangdev/weg-assembly/pkg/config"
	"github.com/johnquangdev/weg-assembly/pkg/middleware"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	db             *gorm.DB
	authMW         echo.MiddlewareFunc
	authorizer     access.Authorizer
	metrics        http.Handler
	healthChecks   map[string]func(context.Context) error
	accountHandler *Account
	meetingHandler *Meeting
	conductHandler *Conduct
}

// RouterDeps are the collaborators of the router. Metrics, DB and health
// checks are optional.
type RouterDeps struct {
	Config         *config.Config
	DB             *gorm.DB
	AuthMiddleware echo.MiddlewareFunc
	Authorizer     access.Authorizer
	Metrics        http.Handler
	HealthChecks   map[string]func(context.Context) error
	Account        *Account
	Meeting        *Meeting
	Conduct        *Conduct
}

// NewRouter creates a new router with all handlers
func NewRouter(deps RouterDeps) *Router {
	return &Router{
		cfg:            deps.Config,
		db:             deps.DB,
		authMW:         deps.AuthMiddleware,
		authorizer:     deps.Authorizer,
		metrics:        deps.Metrics,
		healthChecks:   deps.HealthChecks,
		accountHandler: deps.Account,
		meetingHandler: deps.Meeting,
		conductHandler: deps.Conduct,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	if rt.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(rt.metrics))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1", rt.authMW)

	v1.GET("/me", rt.accountHandler.Me)
	rt.setupPropertyRoutes(v1)
	rt.setupMeetingRoutes(v1)
	rt.setupConductRoutes(v1)
}

// setupPropertyRoutes configures routes scoped to a property
func (rt *Router) setupPropertyRoutes(g *echo.Group) {
	properties := g.Group("/properties/:propertyId",
		middleware.RequirePropertyAccess(rt.authorizer, access.LevelMember))

	properties.GET("/meetings", rt.meetingHandler.ListMeetings)
	properties.POST("/meetings", rt.meetingHandler.ScheduleMeeting)
}

// setupMeetingRoutes configures meeting and agenda CRUD
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	member := middleware.RequireMeetingAccess(rt.authorizer, access.LevelMember)
	owner := middleware.RequireMeetingAccess(rt.authorizer, access.LevelOwner)

	g.GET("/meetings/:id", rt.meetingHandler.GetMeeting, member)
	g.PATCH("/meetings/:id", rt.meetingHandler.UpdateMeeting, member)
	g.DELETE("/meetings/:id", rt.meetingHandler.DeleteMeeting, owner)

	agenda := g.Group("/meetings/:id/agenda-items", member)
	agenda.GET("", rt.meetingHandler.ListAgendaItems)
	agenda.POST("", rt.meetingHandler.AddAgendaItem)
	agenda.PUT("/order", rt.meetingHandler.ReorderAgendaItems)
	agenda.PATCH("/:itemId", rt.meetingHandler.UpdateAgendaItem)
	agenda.DELETE("/:itemId", rt.meetingHandler.DeleteAgendaItem)
}

// setupConductRoutes configures the live meeting routes
func (rt *Router) setupConductRoutes(g *echo.Group) {
	m := g.Group("/meetings/:id", middleware.RequireMeetingAccess(rt.authorizer, access.LevelMember))
	h := rt.conductHandler

	m.POST("/start", h.StartMeeting)
	m.POST("/complete", h.CompleteMeeting)

	m.GET("/conduct", h.GetState)
	m.GET("/conduct/:step", h.GetStep)
	m.PUT("/conduct/leaders", h.ConfirmLeaders)
	m.POST("/conduct/participants/confirm", h.ConfirmParticipants)

	m.GET("/participants", h.ListParticipants)
	m.PATCH("/participants/:pid/attendance", h.SetAttendance)
	m.PATCH("/participants/:pid/representative", h.SetRepresentative)
	m.GET("/quorum", h.GetQuorum)

	m.POST("/agenda-items/:itemId/resolution", h.EnsureResolution)
	m.POST("/agenda-items/:itemId/complete", h.MarkCompleted)
	m.GET("/resolutions", h.ListResolutions)
	m.GET("/resolutions/:rid", h.GetResolution)
	m.POST("/resolutions/:rid/votes", h.CastVotes)
	m.GET("/resolutions/:rid/votes", h.ListVotes)
	m.POST("/resolutions/:rid/calculate", h.Calculate)
	m.GET("/resolutions/:rid/calculations", h.ListCalculations)

	m.GET("/protocol", h.GetProtocol)
	m.GET("/protocol/download", h.DownloadProtocol)
}

// healthCheck returns health status. The database and every registered
// dependency are checked; any failure reports 503.
func (rt *Router) healthCheck(c echo.Context) error {
	ctx := c.Request().Context()
	status := http.StatusOK
	body := map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}
	if rt.cfg != nil {
		body["environment"] = rt.cfg.Server.Environment
	}

	checks := make(map[string]func(context.Context) error, len(rt.healthChecks)+1)
	for name, check := range rt.healthChecks {
		checks[name] = check
	}
	if rt.db != nil {
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := rt.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}

	for name, check := range checks {
		state := "up"
		if err := check(ctx); err != nil {
			state = "down"
			body["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}
		body[name] = state
	}

	return c.JSON(status, body)
}
