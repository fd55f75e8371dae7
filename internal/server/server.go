package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	billdomain "github.com/smallbiznis/ratebook/internal/bill/domain"
	"github.com/smallbiznis/ratebook/internal/config"
	ledgerdomain "github.com/smallbiznis/ratebook/internal/ledger/domain"
	markupdomain "github.com/smallbiznis/ratebook/internal/markup/domain"
	overviewdomain "github.com/smallbiznis/ratebook/internal/overview/domain"
	ratedomain "github.com/smallbiznis/ratebook/internal/rate/domain"
	supplierdomain "github.com/smallbiznis/ratebook/internal/supplier/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("server",
	fx.Provide(NewServer),
	fx.Invoke(RunHTTP),
)

type Server struct {
	log *zap.Logger

	supplierSvc supplierdomain.Service
	markupSvc   markupdomain.Service
	rateSvc     ratedomain.Service
	billSvc     billdomain.Service
	ledgerSvc   ledgerdomain.Service
	overviewSvc overviewdomain.Service
}

type ServerParam struct {
	fx.In

	Log *zap.Logger

	SupplierSvc supplierdomain.Service
	MarkupSvc   markupdomain.Service
	RateSvc     ratedomain.Service
	BillSvc     billdomain.Service
	LedgerSvc   ledgerdomain.Service
	OverviewSvc overviewdomain.Service
}

func NewServer(p ServerParam) *Server {
	return &Server{
		log: p.Log.Named("server"),

		supplierSvc: p.SupplierSvc,
		markupSvc:   p.MarkupSvc,
		rateSvc:     p.RateSvc,
		billSvc:     p.BillSvc,
		ledgerSvc:   p.LedgerSvc,
		overviewSvc: p.OverviewSvc,
	}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")

	v1.POST("/suppliers", s.CreateSupplier)
	v1.GET("/suppliers", s.ListSuppliers)
	v1.GET("/suppliers/:id", s.GetSupplier)
	v1.PUT("/suppliers/:id", s.UpdateSupplier)
	v1.DELETE("/suppliers/:id", s.DeleteSupplier)

	v1.GET("/suppliers/:id/markups", s.ListMarkups)
	v1.PUT("/suppliers/:id/markups", s.UpsertMarkup)
	v1.DELETE("/markups/:id", s.DeleteMarkup)

	v1.GET("/rates", s.ListRates)
	v1.PUT("/rates", s.UpsertRate)
	v1.POST("/rates/import", s.ImportRates)
	v1.PUT("/rates/history", s.ReplaceRateHistory)

	v1.GET("/bills/grid", s.BuildBillGrid)
	v1.POST("/bills/reconcile", s.ReconcileBill)
	v1.POST("/bills", s.SaveBill)

	v1.GET("/suppliers/:id/ledger", s.SupplierStatement)
	v1.GET("/suppliers/:id/due", s.SupplierNetDue)
	v1.POST("/payments", s.RecordPayment)

	v1.GET("/overview", s.OverviewSummary)
	v1.GET("/overview/variance", s.VarianceReport)
	v1.GET("/overview/trends", s.RateTrends)
}

func RunHTTP(lc fx.Lifecycle, s *Server, cfg *config.Config) {
	engine := gin.New()
	engine.Use(gin.Recovery())
	s.RegisterRoutes(engine)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				s.log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server stopped", zap.Error(err))
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
