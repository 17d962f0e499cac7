package main

import (
	"fmt"

	vmetrics "github.com/VictoriaMetrics/metrics"
	httpadapter "github.com/cashflow/payment-records/internal/adapter/primary/http"
	"github.com/cashflow/payment-records/internal/adapter/secondary/database"
	"github.com/cashflow/payment-records/internal/adapter/secondary/messaging"
	"github.com/cashflow/payment-records/internal/adapter/secondary/telemetry"
	"github.com/cashflow/payment-records/internal/config"
	"github.com/cashflow/payment-records/internal/constant/model/db"
	"github.com/cashflow/payment-records/internal/core/service"
	"github.com/cashflow/payment-records/internal/logging"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.MustLoadConfig(".")
	logger := logging.GetLogger("payment-records-api")

	// Amounts go over the wire as JSON numbers, matching the API contract
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize secondary adapter: Database
	dbConn, err := db.NewDB(cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}
	defer dbConn.Close()

	// Initialize secondary adapters: Repository and Messaging (implement output ports)
	paymentRepo := database.NewGormPaymentRepository(dbConn.DB)
	msgClient, err := messaging.NewRabbitMQClient(cfg.RabbitMQ.URL, logger)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		return
	}
	defer msgClient.Close()

	// Initialize observability
	recorder := telemetry.NewVictoriaMetricsRecorder()
	telemetry.SetupPush(cfg.Metrics, logger)

	// Initialize core service (implements input port)
	paymentService := service.NewPaymentService(
		paymentRepo,
		msgClient,
		recorder,
		service.NewSimulatedSettler(logger),
		logger,
	)

	// Initialize primary adapter: HTTP handler (uses input port)
	paymentHandler := httpadapter.NewPaymentHandler(paymentService)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadapter.NewValidator()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Routes
	paymentHandler.Register(e.Group("/api/v1"))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// Prometheus-format metrics
	e.GET("/metrics", func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderContentType, "text/plain; charset=utf-8")
		vmetrics.WritePrometheus(c.Response(), true)
		return nil
	})

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("starting API server", "addr", addr)
	if err := e.Start(addr); err != nil {
		logger.Error("server stopped", "error", err)
	}
}
