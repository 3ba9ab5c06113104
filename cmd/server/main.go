package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	financeapp "github.com/partsflow/backend/internal/application/finance"
	partnerapp "github.com/partsflow/backend/internal/application/partner"
	procurementapp "github.com/partsflow/backend/internal/application/procurement"
	"github.com/partsflow/backend/internal/infrastructure/config"
	"github.com/partsflow/backend/internal/infrastructure/event"
	"github.com/partsflow/backend/internal/infrastructure/logger"
	"github.com/partsflow/backend/internal/infrastructure/persistence"
	"github.com/partsflow/backend/internal/interfaces/http/dto"
	"github.com/partsflow/backend/internal/interfaces/http/handler"
	"github.com/partsflow/backend/internal/interfaces/http/middleware"
	"github.com/partsflow/backend/internal/interfaces/http/router"
)

// version is set at build time via -ldflags
var version = "dev"

const maxRequestBodyBytes = 1 << 20 // 1 MiB

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server exited: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Log)
	defer func() { _ = log.Sync() }()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
	)

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	if err := dto.RegisterValidators(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	engine := newEngine(cfg, log)

	// Repositories
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	orderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	receiptRepo := persistence.NewGormGoodsReceiptRepository(db.DB)
	invoiceRepo := persistence.NewGormSupplierInvoiceRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Domain events are dispatched in-process; the audit handler logs
	// every one of them
	eventBus := event.NewBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))

	// Application services
	supplierService := partnerapp.NewSupplierService(supplierRepo, orderRepo)
	orderService := procurementapp.NewPurchaseOrderService(orderRepo, supplierRepo)
	receivingService := procurementapp.NewReceivingService(orderRepo, receiptRepo, txScope)
	invoiceService := financeapp.NewSupplierInvoiceService(invoiceRepo, supplierRepo, orderRepo, receiptRepo)

	supplierService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)
	receivingService.SetEventPublisher(eventBus)
	invoiceService.SetEventPublisher(eventBus)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler(db, version)).
		Register(handler.NewSupplierHandler(supplierService)).
		Register(handler.NewPurchaseOrderHandler(orderService)).
		Register(handler.NewGoodsReceiptHandler(receivingService)).
		Register(handler.NewSupplierInvoiceHandler(invoiceService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

func newEngine(cfg *config.Config, log *zap.Logger) *gin.Engine {
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Failed to set trusted proxies", zap.Error(err))
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins

	engine.Use(
		logger.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(corsCfg),
		middleware.Secure(),
		middleware.BodyLimit(maxRequestBodyBytes),
		middleware.Identity(),
	)

	return engine
}
