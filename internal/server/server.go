package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	accountdomain "github.com/Jguyatt/backend/internal/account/domain"
	"github.com/Jguyatt/backend/internal/clock"
	"github.com/Jguyatt/backend/internal/config"
	lifecycledomain "github.com/Jguyatt/backend/internal/lifecycle/domain"
	obslogger "github.com/Jguyatt/backend/internal/observability/logger"
	obsmetrics "github.com/Jguyatt/backend/internal/observability/metrics"
	paymentdomain "github.com/Jguyatt/backend/internal/payment/domain"
	purchasedomain "github.com/Jguyatt/backend/internal/purchase/domain"
	"github.com/Jguyatt/backend/internal/store"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(CORSMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
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
	engine *gin.Engine
	cfg    config.Config
	store  *store.Store
	genID  *snowflake.Node
	clock  clock.Clock

	webhookSvc   paymentdomain.Service
	purchaseSvc  purchasedomain.Service
	accountSvc   accountdomain.Service
	lifecycleSvc lifecycledomain.Service
}

type Params struct {
	fx.In

	Gin   *gin.Engine
	Cfg   config.Config
	Store *store.Store
	GenID *snowflake.Node
	Clock clock.Clock

	WebhookSvc   paymentdomain.Service
	PurchaseSvc  purchasedomain.Service
	AccountSvc   accountdomain.Service
	LifecycleSvc lifecycledomain.Service
}

func NewServer(p Params) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		store:        p.Store,
		genID:        p.GenID,
		clock:        p.Clock,
		webhookSvc:   p.WebhookSvc,
		purchaseSvc:  p.PurchaseSvc,
		accountSvc:   p.AccountSvc,
		lifecycleSvc: p.LifecycleSvc,
	}

	svc.registerAPIRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.GET("/health", s.Health)

	// -------- Payment Webhooks --------
	api.POST("/webhooks/stripe", s.HandleStripeWebhook)

	// -------- Purchases --------
	api.GET("/purchases", s.ListPurchases)
	api.POST("/purchases/:id/process", s.ProcessPurchase)

	// -------- Customers --------
	api.GET("/customer-data/:email", s.GetCustomerData)
	api.GET("/all-customers", s.ListAllCustomers)
	api.POST("/sync-data", s.SyncData)
	api.DELETE("/customers/:email", s.DeleteCustomer)

	// -------- Onboarding --------
	api.POST("/onboarding-submission", s.SubmitOnboarding)
	api.GET("/onboarding-submissions", s.ListOnboardingSubmissions)

	// -------- Cancellations --------
	api.POST("/cancellation-request", s.FileCancellationRequest)
	api.GET("/cancellation-requests", s.ListCancellationRequests)
	api.POST("/process-cancellation", s.ProcessCancellation)
	api.POST("/cancel-project", s.CancelProject)

	// -------- Users --------
	api.DELETE("/delete-user/:email", s.DeleteUserByParam)
	api.POST("/delete-user", s.DeleteUserByBody)
	api.GET("/deleted-users", s.ListDeletedUsers)

	if s.cfg.Environment != "production" {
		api.POST("/test/create-customer", s.CreateTestCustomer)
		api.POST("/cleanup-test-data", s.CleanupTestData)
	}
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"version":         s.cfg.AppVersion,
		"webhookEndpoint": "/api/webhooks/stripe",
		"timestamp":       s.clock.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "This is an API server. Please use the frontend application.",
			"availableEndpoints": []string{
				"/api/health",
				"/api/webhooks/stripe",
				"/api/onboarding-submissions",
				"/api/all-customers",
				"/api/sync-data",
			},
			"timestamp": s.clock.Now().UTC().Format(time.RFC3339),
		})
	})
}
