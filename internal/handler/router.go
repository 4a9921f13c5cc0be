package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	authservice "github.com/realganganadul/gingin-backend/internal/auth"
	authhandler "github.com/realganganadul/gingin-backend/internal/handler/auth"
	chathandler "github.com/realganganadul/gingin-backend/internal/handler/chat"
	historyhandler "github.com/realganganadul/gingin-backend/internal/handler/history"
	middlewarePkg "github.com/realganganadul/gingin-backend/internal/middleware"
	aiservice "github.com/realganganadul/gingin-backend/internal/service/ai"
	historyservice "github.com/realganganadul/gingin-backend/internal/service/history"
	"github.com/realganganadul/gingin-backend/internal/session"
)

// RouterConfig carries everything the HTTP surface needs. Nil services are
// legal and degrade their endpoints to configuration errors.
type RouterConfig struct {
	AuthService    *authservice.Service
	Sessions       session.Store
	AIService      *aiservice.Service
	HistoryService *historyservice.Service
	AllowedOrigins []string
	CookieMaxAge   int
}

// NewRouter wires HTTP routes to core services.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(cfg.AllowedOrigins))

	authHandler := authhandler.New(cfg.AuthService, cfg.CookieMaxAge)

	// A nil *ai.Service must stay a nil Gateway, not a typed-nil interface.
	var gateway chathandler.Gateway
	if cfg.AIService != nil {
		gateway = cfg.AIService
	}
	chatHandler := chathandler.New(gateway, cfg.Sessions)
	historyHandler := historyhandler.New(cfg.HistoryService)

	r.Route("/api", func(api chi.Router) {
		authHandler.RegisterRoutes(api)
		chatHandler.RegisterRoutes(api)
		historyHandler.RegisterRoutes(api)
	})

	return r
}
