package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant/cmd"
	"restaurant/internal/adapters/out/memory"
	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/core/ports"
	"restaurant/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	uowFactory, closeStorage, err := openStorage(ctx, configs)
	if err != nil {
		log.Fatalf("Error opening %s storage: %v", configs.Storage, err)
	}
	defer closeStorage()

	app := cmd.NewCompositionRoot(configs, uowFactory, logger)
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("failed to close outbound connections", "error", closeErr)
		}
	}()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		logger.Error("failed to start jobs", "error", err)
		return
	}
	defer jobManager.StopAll()

	logger.Info("service configured",
		"storage", configs.Storage,
		"port", configs.HTTPPort,
		"kafka", configs.KafkaHost != "",
		"assistant", configs.LLMToken != "")

	if err = startWebServer(ctx, app, configs.HTTPPort, logger); err != nil {
		logger.Error("web server stopped", "error", err)
	}
}

// openStorage returns the unit of work factory for STORAGE and a function releasing it.
func openStorage(ctx context.Context, configs cmd.Config) (ports.UnitOfWorkFactory, func(), error) {
	if configs.Storage == cmd.StorageMemory {
		return memory.NewUnitOfWorkFactory(memory.NewStore()), func() {}, nil
	}

	gormDB, err := cmd.OpenDatabase(ctx, configs)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}
	return postgres.NewGormUnitOfWorkFactory(gormDB), func() { _ = sqlDB.Close() }, nil
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	servers.RegisterSwaggerDoc()
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlersWithBaseURL(e, app.CreateServer(), servers.BasePath)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := e.Start(fmt.Sprintf("0.0.0.0:%s", port))
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down web server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
