package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/storefront-qa/sauce-e2e/internal/config"
	"github.com/storefront-qa/sauce-e2e/internal/database"
	"github.com/storefront-qa/sauce-e2e/internal/handlers"
	"github.com/storefront-qa/sauce-e2e/internal/repository"
	"github.com/storefront-qa/sauce-e2e/internal/services"
)

// ServerDependencies holds all dependencies needed for the storefront replica
type ServerDependencies struct {
	Logger                  *zap.Logger
	OrderRepo               services.CheckoutRepository
	ServerConfig            config.ServerConfig
	LoginHandler            http.Handler
	LogoutHandler           http.Handler
	InventoryHandler        http.Handler
	ItemHandler             http.Handler
	CartHandler             http.Handler
	CheckoutInfoHandler     http.Handler
	CheckoutOverviewHandler http.Handler
	CheckoutCompleteHandler http.Handler
	InventoryAPIHandler     http.Handler
	ImageHandler            http.Handler
	StaticHandler           http.Handler
}

// BuildServerDependencies wires the replica's handlers around users with an
// in-memory order store. Pages other than login require a signed-in shopper.
func BuildServerDependencies(users *config.Users, serverCfg config.ServerConfig, logger *zap.Logger) (ServerDependencies, error) {
	return BuildServerDependenciesWithRepo(users, serverCfg, repository.NewOrderRepository(), logger)
}

// BuildServerDependenciesWithRepo is BuildServerDependencies over repo.
func BuildServerDependenciesWithRepo(users *config.Users, serverCfg config.ServerConfig, repo services.CheckoutRepository, logger *zap.Logger) (ServerDependencies, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("storefront")

	tmpl, err := handlers.ParseTemplates()
	if err != nil {
		return ServerDependencies{}, err
	}

	checkout := services.NewCheckoutService(repo)
	sessions := handlers.NewSessions(users, logger)
	protect := sessions.RequireLogin

	return ServerDependencies{
		Logger:                  logger,
		OrderRepo:               repo,
		ServerConfig:            serverCfg,
		LoginHandler:            handlers.NewLoginHandler(tmpl, users, sessions, logger, serverCfg.GlitchDelay),
		LogoutHandler:           handlers.NewLogoutHandler(logger),
		InventoryHandler:        protect(handlers.NewInventoryHandler(tmpl, logger)),
		ItemHandler:             protect(handlers.NewItemHandler(tmpl, logger)),
		CartHandler:             protect(handlers.NewCartHandler(tmpl, logger)),
		CheckoutInfoHandler:     protect(handlers.NewCheckoutInfoHandler(tmpl, checkout, logger)),
		CheckoutOverviewHandler: protect(handlers.NewCheckoutOverviewHandler(tmpl, checkout, logger)),
		CheckoutCompleteHandler: protect(handlers.NewCheckoutCompleteHandler(tmpl, checkout, logger)),
		InventoryAPIHandler:     handlers.NewInventoryAPIHandler(sessions, logger),
		ImageHandler:            http.StripPrefix("/static/img/", handlers.ImageHandler{}),
		StaticHandler:           handlers.StaticHandler(),
	}, nil
}

// OpenOrderStore returns the PostgreSQL order archive when POSTGRES_HOSTNAME
// is set and the in-memory store otherwise. The returned close func is never nil.
func OpenOrderStore(ctx context.Context, getenv func(string) string, logger *zap.Logger) (services.CheckoutRepository, func() error, error) {
	if !config.PostgresEnabled(getenv) {
		return repository.NewOrderRepository(), func() error { return nil }, nil
	}

	pgConfig, err := config.LoadPostgresConfig(getenv)
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(ctx, pgConfig)
	if err != nil {
		return nil, nil, err
	}
	if err := database.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	logger.Info("archiving orders in postgres", zap.String("host", pgConfig.Host), zap.String("database", pgConfig.Database))
	return repository.NewOrderRepositoryWithDB(db), db.Close, nil
}

// RunServe starts the storefront replica and blocks until a shutdown signal
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil, loggerOf(deps))
}

// NewRouter maps the storefront paths onto deps' handlers
func NewRouter(deps ServerDependencies) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", deps.LoginHandler)
	mux.Handle("/logout", deps.LogoutHandler)
	mux.Handle("/inventory.html", deps.InventoryHandler)
	mux.Handle("/inventory-item.html", deps.ItemHandler)
	mux.Handle("/cart.html", deps.CartHandler)
	mux.Handle("/checkout-step-one.html", deps.CheckoutInfoHandler)
	mux.Handle("/checkout-step-two.html", deps.CheckoutOverviewHandler)
	mux.Handle("/checkout-complete.html", deps.CheckoutCompleteHandler)
	mux.Handle("/api/inventory", deps.InventoryAPIHandler)
	mux.Handle("/static/img/", deps.ImageHandler)
	mux.Handle("/static/", deps.StaticHandler)

	return handlers.SecurityHeaders(accessLog(loggerOf(deps), mux))
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	logger := loggerOf(deps)

	addr := fmt.Sprintf("%s:%s", deps.ServerConfig.Host, deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          zap.NewStdLog(logger),
	}

	go func() {
		logger.Info("server listening", zap.String("addr", listener.Addr().String()))
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server
// If shutdown channel is nil, a new channel will be created and registered with signal.Notify
func WaitForShutdown(server *http.Server, shutdown chan os.Signal, logger *zap.Logger) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second, logger)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(shutdown)
	}

	sig := <-shutdown
	logger.Info("shutting down server", zap.Stringer("signal", sig))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		// Close does not report listener errors, so this only fails on
		// errors Shutdown already hit.
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}

func loggerOf(deps ServerDependencies) *zap.Logger {
	if deps.Logger == nil {
		return zap.NewNop()
	}
	return deps.Logger
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func accessLog(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
