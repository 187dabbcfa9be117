package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/config"
	"github.com/mmynk/tripsplit/internal/handler"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/service"
	"github.com/mmynk/tripsplit/internal/storage/sqlite"
	"github.com/mmynk/tripsplit/pkg/logging"
)

// adminAuthenticator builds the admin passkey check. Returns nil when no passkey is
// configured, which disables admin login.
func adminAuthenticator(cfg *config.Config) (auth.Authenticator, error) {
	var (
		a   *auth.PasskeyAuthenticator
		err error
	)
	switch {
	case cfg.AdminPasskeyHash != "":
		a, err = auth.NewPasskeyAuthenticator(cfg.AdminPasskeyHash)
	case cfg.AdminPasskey != "":
		a, err = auth.NewPasskeyAuthenticatorFromPlaintext(cfg.AdminPasskey)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	admin, err := adminAuthenticator(cfg)
	if err != nil {
		slog.Error("Invalid admin passkey configuration", "error", err)
		os.Exit(1)
	}
	if admin == nil {
		slog.Warn("No admin passkey configured, admin login disabled")
	} else {
		slog.Info("Admin login enabled")
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	m := metrics.New()
	svc := service.NewTripService(store, tokens, admin, m)
	router := handler.NewRouter(svc, tokens, m)

	// h2c lets HTTP/2 clients talk to us without TLS
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced shutdown", "error", err)
	}
}
