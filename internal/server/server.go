package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/feedbackpod/feedbackpod/internal/auth"
	authdomain "github.com/feedbackpod/feedbackpod/internal/auth/domain"
	"github.com/feedbackpod/feedbackpod/internal/clock"
	"github.com/feedbackpod/feedbackpod/internal/config"
	"github.com/feedbackpod/feedbackpod/internal/event"
	eventdomain "github.com/feedbackpod/feedbackpod/internal/event/domain"
	"github.com/feedbackpod/feedbackpod/internal/feedback"
	feedbackdomain "github.com/feedbackpod/feedbackpod/internal/feedback/domain"
	"github.com/feedbackpod/feedbackpod/internal/identity"
	identitydomain "github.com/feedbackpod/feedbackpod/internal/identity/domain"
	"github.com/feedbackpod/feedbackpod/internal/logger"
	"github.com/feedbackpod/feedbackpod/internal/metrics"
	"github.com/feedbackpod/feedbackpod/internal/migration"
	"github.com/feedbackpod/feedbackpod/internal/ratelimit"
	"github.com/feedbackpod/feedbackpod/internal/token"
	tokendomain "github.com/feedbackpod/feedbackpod/internal/token/domain"
)

var Module = fx.Module("http.server",
	metrics.Module,
	identity.Module,
	token.Module,
	auth.Module,
	event.Module,
	feedback.Module,
	ratelimit.Module,
	migration.Module,
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware())
	r.Use(metrics.GinMiddleware(m))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					zap.L().Fatal("http server failed", zap.Error(err))
				}
			}()
			zap.L().Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	authsvc     authdomain.Service
	tokensvc    tokendomain.Service
	eventsvc    eventdomain.Service
	feedbacksvc feedbackdomain.Service
	tenants     identitydomain.TenantRepository
	node        *snowflake.Node
	clk         clock.Clock
	metrics     *metrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Authsvc     authdomain.Service
	Tokensvc    tokendomain.Service
	Eventsvc    eventdomain.Service
	Feedbacksvc feedbackdomain.Service
	Tenants     identitydomain.TenantRepository
	Node        *snowflake.Node
	Clk         clock.Clock
	Metrics     *metrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		authsvc:     p.Authsvc,
		tokensvc:    p.Tokensvc,
		eventsvc:    p.Eventsvc,
		feedbacksvc: p.Feedbacksvc,
		tenants:     p.Tenants,
		node:        p.Node,
		clk:         p.Clk,
		metrics:     p.Metrics,
	}

	svc.registerUserRoutes()
	svc.registerTenantRoutes()
	svc.registerEventRoutes()
	svc.registerFeedbackRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerUserRoutes() {
	users := s.engine.Group("/users")

	users.POST("/setup/create-root", s.OptionalAuth(), s.CreateRootAdmin)
	users.POST("/register", s.Register)
	users.POST("/login", s.Login)
	users.POST("/logout", s.AuthRequired(), s.Logout)
	users.POST("/refresh-token", s.RefreshToken)

	users.GET("", s.AuthRequired(), RequireRole(identitydomain.RoleRootAdmin), s.ListUsers)
	users.GET("/:username", s.AuthRequired(),
		RequireRole(identitydomain.RoleRootAdmin),
		s.GetUsersByUsername)
}

func (s *Server) registerTenantRoutes() {
	tenants := s.engine.Group("/tenants")
	tenants.Use(s.AuthRequired())

	tenants.GET("", RequireRole(identitydomain.RoleRootAdmin), s.ListTenants)
	tenants.POST("",
		RequireRole(identitydomain.RoleRootAdmin, identitydomain.RoleOwner),
		s.CreateTenant)
	tenants.GET("/o/:orgId",
		RequireRole(identitydomain.RoleRootAdmin, identitydomain.RoleOwner),
		s.GetTenant)
	tenants.PUT("/o/:orgId",
		RequireRole(identitydomain.RoleRootAdmin, identitydomain.RoleOwner),
		s.UpdateTenant)
	tenants.DELETE("/o/:orgId", RequireRole(identitydomain.RoleRootAdmin), s.DeleteTenant)
}

func (s *Server) registerEventRoutes() {
	events := s.engine.Group("/events")
	events.Use(s.AuthRequired())

	events.GET("", RequireRole(identitydomain.RoleRootAdmin), s.ListAllEvents)
	events.POST("",
		RequireRole(identitydomain.RoleRootAdmin, identitydomain.RoleOwner),
		s.CreateEvent)
	events.GET("/o/:orgId",
		RequireRole(identitydomain.RoleRootAdmin, identitydomain.RoleOwner, identitydomain.RoleAdmin),
		s.ListEvents)
	events.GET("/o/:orgId/:eventCode",
		RequireRole(identitydomain.RoleRootAdmin, identitydomain.RoleOwner),
		s.GetEvent)
	events.PUT("/o/:orgId/:eventCode",
		RequireRole(identitydomain.RoleRootAdmin, identitydomain.RoleOwner),
		s.UpdateEvent)
	events.DELETE("/o/:orgId/:eventCode",
		RequireRole(identitydomain.RoleRootAdmin, identitydomain.RoleOwner),
		s.DeleteEvent)
}

func (s *Server) registerFeedbackRoutes() {
	fb := s.engine.Group("/feedback")

	// Public submission route, no auth. The dedup engine is the gate.
	fb.POST("/o/:orgId/:eventCode", s.SubmitFeedback)

	fb.GET("", s.AuthRequired(), RequireRole(identitydomain.RoleRootAdmin), s.ListAllFeedback)
	fb.GET("/o/:orgId", s.AuthRequired(),
		RequireRole(identitydomain.RoleRootAdmin, identitydomain.RoleOwner),
		s.ListOrgFeedback)
	fb.GET("/o/:orgId/:eventCode", s.AuthRequired(),
		RequireRole(identitydomain.RoleRootAdmin, identitydomain.RoleOwner),
		s.ListEventFeedback)
	fb.GET("/:feedbackId", s.AuthRequired(),
		RequireRole(identitydomain.RoleRootAdmin, identitydomain.RoleOwner),
		s.GetFeedback)
	fb.PUT("/:feedbackId", s.AuthRequired(),
		RequireRole(identitydomain.RoleRootAdmin, identitydomain.RoleOwner),
		s.UpdateFeedback)
	fb.DELETE("/:feedbackId", s.AuthRequired(),
		RequireRole(identitydomain.RoleRootAdmin, identitydomain.RoleOwner),
		s.DeleteFeedback)
}
