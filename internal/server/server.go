package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/loyaltyhq/loyalty/internal/config"
	loyaltydomain "github.com/loyaltyhq/loyalty/internal/loyalty/domain"
	"github.com/loyaltyhq/loyalty/internal/metrics"
	orderdomain "github.com/loyaltyhq/loyalty/internal/order/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *metrics.HTTPMetrics, reg *prometheus.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(metrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return r
}

type Params struct {
	fx.In

	Engine     *gin.Engine
	Log        *zap.Logger
	OrderSvc   orderdomain.Service
	LoyaltySvc loyaltydomain.Service
}

type Server struct {
	engine     *gin.Engine
	log        *zap.Logger
	orderSvc   orderdomain.Service
	loyaltySvc loyaltydomain.Service
}

func NewServer(p Params) *Server {
	return &Server{
		engine:     p.Engine,
		log:        p.Log.Named("server"),
		orderSvc:   p.OrderSvc,
		loyaltySvc: p.LoyaltySvc,
	}
}

func (s *Server) RegisterAPIRoutes() {
	v1 := s.engine.Group("/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/customers/:id/tier", s.GetCustomerTierInfo)
	v1.GET("/customers/:id/orders", s.ListCustomerOrders)
	v1.POST("/tiers/recalculate", s.RecalculateTiers)
}

func registerRoutes(s *Server) {
	s.RegisterAPIRoutes()
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
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
