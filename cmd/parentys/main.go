// File path: cmd/parentys/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/parentys/platform/internal/api"
	"github.com/parentys/platform/internal/auth"
	"github.com/parentys/platform/internal/common"
	"github.com/parentys/platform/internal/config"
	"github.com/parentys/platform/internal/i18n"
	"github.com/parentys/platform/internal/session"
	"github.com/parentys/platform/internal/sqlite"
)

func main() {
	logger := common.Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		logger.Warn("parentys: .env file not loaded", "error", err)
	} else {
		logger.Info("parentys: environment loaded from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("parentys: config load failed", "error", err)
		fmt.Println("config error:", err)
		os.Exit(1)
	}

	addr := flag.String("addr", cfg.Addr, "listen address")
	dbPath := flag.String("db", cfg.SQLitePath, "path to the SQLite database")
	rootStep := flag.String("root-step", cfg.RootStepID, "questionnaire entry step id")
	sessionBackend := flag.String("sessions", cfg.SessionBackend, "session backend (redis or memory)")
	flag.Parse()

	logger.Info("parentys: startup initiated", "addr", *addr, "db", *dbPath)

	store, err := sqlite.Open(*dbPath)
	if err != nil {
		logger.Error("parentys: sqlite open failed", "path", *dbPath, "error", err)
		fmt.Println("sqlite error:", err)
		os.Exit(1)
	}
	defer store.Close()

	sessions := buildSessionStore(ctx, *sessionBackend, logger)

	verifier, err := auth.NewVerifier(cfg.AuthSecret, store)
	if err != nil {
		logger.Error("parentys: auth verifier setup failed", "error", err)
		fmt.Println("auth error:", err)
		os.Exit(1)
	}

	server, err := api.NewServer(api.Deps{
		QuickPath:   store,
		Admin:       store,
		Catalog:     store,
		Sessions:    sessions,
		Verifier:    verifier,
		Fields:      i18n.NewResolver(cfg.FallbackLanguages),
		RootStepID:  *rootStep,
		DefaultLang: cfg.DefaultLanguage,
	})
	if err != nil {
		logger.Error("parentys: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	logger.Info("parentys: server listening", "addr", *addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", *addr)
	reachable := *addr
	if strings.HasPrefix(reachable, ":") {
		reachable = "localhost" + reachable
	}
	logger.Info("parentys: verify reachability", "suggestion", fmt.Sprintf("curl http://%s/healthz", reachable))
	if err := http.ListenAndServe(*addr, server); err != nil {
		logger.Error("parentys: server stopped", "error", err)
		fmt.Println("server stopped:", err)
	}
}

// buildSessionStore wires the configured session backend, falling back to
// the in-memory store when Redis is unreachable so the questionnaire still
// serves traffic.
func buildSessionStore(ctx context.Context, backend string, logger *slog.Logger) session.Store {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "redis":
		store, err := session.NewRedisStore(ctx)
		if err != nil {
			logger.Warn("parentys: redis sessions unavailable, using memory", "error", err)
			return session.NewMemoryStore()
		}
		logger.Info("parentys: redis sessions ready")
		return store
	default:
		logger.Info("parentys: in-memory sessions ready")
		return session.NewMemoryStore()
	}
}
