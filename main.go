package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/ecocondor/auth"
	"github.com/danielhkuo/ecocondor/cliparse"
	"github.com/danielhkuo/ecocondor/db"
	"github.com/danielhkuo/ecocondor/rewards"
	"github.com/danielhkuo/ecocondor/router"
	"github.com/danielhkuo/ecocondor/store"
)

// Clock skew tolerated on token exp/nbf/iat.
const tokenLeeway = 30 * time.Second

// How long in-flight requests may run after SIGINT/SIGTERM.
const shutdownDrain = 10 * time.Second

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database
	dbConn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(ctx, dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	if cfg.RewardsFile != "" {
		catalog, err := rewards.LoadCatalog(cfg.RewardsFile)
		if err != nil {
			slog.Error("reward catalog load failed", "file", cfg.RewardsFile, "error", err)
			os.Exit(1)
		}
		if err := rewards.NewEngine(store.New(dbConn)).SeedCatalog(ctx, catalog); err != nil {
			slog.Error("reward catalog seed failed", "error", err)
			os.Exit(1)
		}
	}

	verifier, err := newVerifier(cfg)
	if err != nil {
		slog.Error("token verifier setup failed", "error", err)
		os.Exit(1)
	}

	// Create server
	server := &http.Server{
		Handler:      router.NewRouter(dbConn, verifier, cfg),
		Addr:         ":" + strconv.Itoa(cfg.Port),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		slog.Error("listen failed", "addr", server.Addr, "error", err)
		os.Exit(1)
	}

	// Start server
	slog.Info("Listening", "port", cfg.Port, "env", cfg.Env)
	if err := serve(ctx, server, ln, shutdownDrain); err != nil {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed")
}

// serve runs srv on ln until ctx is done, then stops accepting connections
// and waits up to drain for in-flight requests. It returns only once the
// server has fully stopped.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, drain time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	slog.Info("Shutting down", "drain", drain)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), drain)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		srv.Close()
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// setupLogging installs the default slog handler: JSON in production, text
// otherwise.
func setupLogging(cfg cliparse.Config) {
	opts := &slog.HandlerOptions{Level: cfg.Level()}
	var h slog.Handler
	if cfg.Production() {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}

func newVerifier(cfg cliparse.Config) (*auth.JWTVerifier, error) {
	vc := auth.VerifierConfig{
		Secret:   cfg.TokenSecret,
		Issuer:   cfg.TokenIssuer,
		Audience: cfg.TokenAudience,
		Leeway:   tokenLeeway,
	}
	if cfg.TokenPublicKeyFile != "" {
		pem, err := os.ReadFile(cfg.TokenPublicKeyFile)
		if err != nil {
			return nil, err
		}
		vc.PublicKeyPEM = pem
	}
	return auth.NewJWTVerifier(vc)
}
