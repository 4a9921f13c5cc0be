package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/realganganadul/gingin-backend/internal/auth"
	"github.com/realganganadul/gingin-backend/internal/config"
	"github.com/realganganadul/gingin-backend/internal/handler"
	"github.com/realganganadul/gingin-backend/internal/service/ai"
	"github.com/realganganadul/gingin-backend/internal/service/history"
	"github.com/realganganadul/gingin-backend/internal/session"
	"github.com/realganganadul/gingin-backend/internal/sheets"
	"github.com/realganganadul/gingin-backend/internal/tools"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	sessionStore := newSessionStore(ctx, cfg.Session)

	authService := auth.NewService(cfg.Admin.Username, cfg.Admin.Password, sessionStore)
	if !authService.Configured() {
		log.Println("warning: admin credentials or session store missing, login disabled")
	}

	// Spreadsheet access backs the invoice and inventory tools; without it
	// those tools report a configuration error instead of acting.
	var sheetsClient sheets.Client
	if cfg.Sheets.Enabled() {
		client, err := sheets.NewClient(ctx, sheets.Config{
			SpreadsheetID:      cfg.Sheets.SpreadsheetID,
			ServiceAccountJSON: cfg.Sheets.ServiceAccountJSON,
			BaseURL:            cfg.Sheets.BaseURL,
		})
		if err != nil {
			log.Printf("warning: failed to initialize sheets client: %v", err)
		} else {
			sheetsClient = client
		}
	} else {
		log.Println("warning: spreadsheet bindings missing, invoice and inventory tools degraded")
	}

	if !cfg.Telegram.Enabled() {
		log.Println("warning: Telegram bindings missing, report tool degraded")
	}

	registry := tools.NewRegistry(
		tools.NewInvoiceTool(sheetsClient),
		tools.NewInventoryTool(sheetsClient),
		tools.NewTelegramTool(tools.TelegramConfig{
			BotToken: cfg.Telegram.BotToken,
			ChatID:   cfg.Telegram.ChatID,
			BaseURL:  cfg.Telegram.BaseURL,
		}),
	)

	var aiService *ai.Service
	if cfg.AI.Enabled() {
		aiService, err = ai.NewService(ctx, cfg.AI, registry)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without chat functionality - check the Ark model environment variables")
		} else {
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("warning: model credentials missing, chat endpoint degraded")
	}

	router := handler.NewRouter(handler.RouterConfig{
		AuthService:    authService,
		Sessions:       sessionStore,
		AIService:      aiService,
		HistoryService: history.NewService(),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		CookieMaxAge:   int(cfg.Session.TTL.Seconds()),
	})

	startServer(ctx, cfg.Server, router)
}

// newSessionStore selects the configured driver. The redis driver is checked
// with a ping so a dead store is visible at startup, but the process still
// runs: every dependent operation fails closed.
func newSessionStore(ctx context.Context, cfg config.SessionConfig) session.Store {
	if cfg.Driver == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.Printf("warning: redis session store unreachable: %v", err)
		}
		return session.NewRedisStore(client, cfg.TTL)
	}
	return session.NewMemoryStore(cfg.TTL)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Gingin backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
