package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "bookshelf/docs"
	"bookshelf/internal/config"
	"bookshelf/internal/googlebooks"
	"bookshelf/internal/handlers"
	"bookshelf/internal/logger"
	"bookshelf/internal/repository"
	"bookshelf/internal/repository/db"
	"bookshelf/internal/server"
	"bookshelf/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
	cmd.Flags().String("port", "", "HTTP port (default 8080)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return err
	}

	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if cfg.LogLevel != logger.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	conn, err := openDB(cfg, log)
	if err != nil {
		log.Errorw("failed to init sqlite", "path", cfg.DBPath, "err", err)
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Deps{
		Sessions: service.NewSessionManager(cfg.Session.Secret, cfg.Session.TTL),
		Covers:   googlebooks.NewClient(http.DefaultClient, cfg.GoogleBooks.BaseURL, cfg.GoogleBooks.APIKey, log.Named("googlebooks")),
		Log:      log.Named("books"),
	})
	apiHandler := handlers.NewHandler(services, log.Named("http"), handlers.Options{
		CookieName:     cfg.Session.CookieName,
		CookieSecure:   cfg.Session.CookieSecure,
		SessionTTL:     cfg.Session.TTL,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	srv := server.New(cfg.Port, apiHandler.InitRoutes())
	errCh := make(chan error, 1)
	go func() {
		log.Infow("http_server_starting", "port", cfg.Port, "db", cfg.DBPath)
		errCh <- srv.Run()
	}()

	return waitForShutdown(srv, errCh, log)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sqlx.DB, error) {
	log.Infow("opening sqlite", "path", cfg.DBPath)
	return db.InitDB(cfg.DBPath)
}

// waitForShutdown blocks until a termination signal or a server failure, then
// drains in-flight requests.
func waitForShutdown(srv *server.Server, errCh <-chan error, log *logger.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			log.Errorw("error starting server", "err", err)
		}
		return err
	case sig := <-quit:
		log.Infow("shutting down server...", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
		return err
	}
	return <-errCh
}
