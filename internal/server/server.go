// Package server owns the application boot sequence and HTTP lifecycle.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autonuoma/app/listeners"
	"autonuoma/app/repositories"
	"autonuoma/app/routes"
	"autonuoma/config"
	"autonuoma/pkg/cache"
	"autonuoma/pkg/database"
	"autonuoma/pkg/logger"
	"autonuoma/pkg/metrics"
	"autonuoma/pkg/middleware"
	"autonuoma/pkg/reqid"
	"autonuoma/pkg/response"
	"autonuoma/pkg/router"
	"autonuoma/pkg/storage"
	"autonuoma/pkg/ws"
)

const shutdownTimeout = 10 * time.Second

// Start boots every subsystem and serves HTTP until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}
	defer database.Disconnect()

	// Mirror logs into Mongo when a collection is configured.
	var sink *logger.MongoSink
	if col := config.MongoLogCollection(); col != "" {
		sink = logger.NewMongoSink(database.Collection(col))
		logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), sink))
		defer sink.Close()
	}

	// Cache and object storage are optional; the app degrades without them.
	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, continuing without it", "error", err)
	}
	storage.Connect()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ensureIndexes(ctx); err != nil {
		cancel()
		return err
	}
	cancel()

	feed := ws.NewHub()
	go feed.Run()
	listeners.Register(feed)

	r := buildRouter(feed)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func ensureIndexes(ctx context.Context) error {
	if err := repositories.NewUserRepository().EnsureIndexes(ctx); err != nil {
		return err
	}
	return repositories.NewReservationRepository().EnsureIndexes(ctx)
}

func buildRouter(feed *ws.Hub) *router.Router {
	r := router.New()
	r.Use(
		reqid.Middleware(),
		metrics.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
	)

	routes.RegisterAPI(r, feed)

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "healthz", healthz)

	return r
}

func healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx); err != nil {
		logger.WithCtx(r.Context()).Error("health check failed", "error", err)
		response.Error(w, http.StatusServiceUnavailable, "Database unreachable")
		return
	}
	response.Success(w, map[string]string{"status": "ok"})
}
