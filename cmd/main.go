package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"personal_diary/internal/handlers"
	"personal_diary/internal/logger"
	"personal_diary/internal/repository"
	"personal_diary/internal/server"
	"personal_diary/internal/service"
	"personal_diary/internal/storage"

	"github.com/spf13/viper"
)

// insecureDefaultSecret keeps local runs working when SECRET_KEY is unset.
// Production deployments must set SECRET_KEY; boot logs a warning otherwise.
const insecureDefaultSecret = "supersecretkey123!@#"

func main() {
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(viper.GetString("log_level"))

	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	store, err := storage.New(viper.GetString("uploads.dir"))
	if err != nil {
		log.Fatalw("failed to init upload storage", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos, store, serviceConfig(log))
	apiHandler := handlers.NewHandler(services, store, log)

	// seed the reserved admin account on first run
	if err := services.Authorization.EnsureAdmin(context.Background(),
		viper.GetString("admin.username"), viper.GetString("admin.password")); err != nil {
		log.Fatalw("failed to ensure admin user", "err", err)
	}

	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.SetDefault("port", "8080")
	viper.SetDefault("log_level", logger.InfoLevel)
	viper.SetDefault("db.path", "diary.db")
	viper.SetDefault("uploads.dir", "uploads")
	viper.SetDefault("session.ttl", "24h")
	viper.SetDefault("admin.username", "admin")
	viper.SetDefault("admin.password", "admin123")

	// Session signing key comes from the environment.
	_ = viper.BindEnv("secret_key", "SECRET_KEY")

	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine: defaults plus env cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}
	return nil
}

func serviceConfig(log *logger.Logger) service.Config {
	secret := viper.GetString("secret_key")
	if secret == "" {
		log.Warnw("SECRET_KEY not set; using insecure built-in fallback")
		secret = insecureDefaultSecret
	}

	ttl := viper.GetDuration("session.ttl")
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return service.Config{
		SigningKey:    secret,
		SessionTTL:    ttl,
		AdminUsername: viper.GetString("admin.username"),
	}
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "diary.db")
		dbPath = "diary.db"
	}
	return repository.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
