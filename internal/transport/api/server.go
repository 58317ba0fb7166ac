// Package api serves the catalog store, its exports, the chat pipeline and
// the interaction log over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/sandevgo/gadgetbot/internal/core"
	"github.com/sandevgo/gadgetbot/internal/service/analytics"
	"github.com/sandevgo/gadgetbot/internal/service/chat"
	"github.com/sandevgo/gadgetbot/pkg/log"
)

const readHeaderTimeout = 10 * time.Second

type ChatService interface {
	Handle(ctx context.Context, sessionID, text string) (chat.Turn, error)
	Reset(sessionID string) []core.ChatMessage
	Conversations() *chat.Conversations
	Logger() *analytics.Logger
}

type Assistant interface {
	Ask(ctx context.Context, message string) (string, error)
}

type Deps struct {
	Listings  core.ListingRepository
	Specs     core.SpecRepository
	Chat      ChatService
	Assistant Assistant
}

type Server struct {
	srv    *http.Server
	engine *gin.Engine
}

func NewServer(ctx context.Context, addr string, origins []string, deps Deps) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(RequestLoggingMiddleware(ctx), gin.Recovery())
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, messageResponse{Message: "Metode HTTP tidak didukung"})
	})
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, messageResponse{Message: "Endpoint tidak ditemukan"})
	})

	registerRoutes(engine, deps)

	handler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(engine)

	return &Server{
		engine: engine,
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			BaseContext:       func(_ net.Listener) context.Context { return ctx },
		},
	}
}

func registerRoutes(r *gin.Engine, deps Deps) {
	r.GET("/health", HealthHandler())

	listings := r.Group("/listings")
	{
		listings.GET("", ListListingsHandler(deps.Listings))
		listings.POST("", CreateListingHandler(deps.Listings))
		listings.PUT("", UpdateListingHandler(deps.Listings))
		listings.DELETE("", DeleteListingHandler(deps.Listings))
	}

	export := r.Group("/export")
	{
		export.GET("/listings.json", ExportListingsHandler(deps.Listings))
		export.GET("/market.json", ExportMarketHandler(deps.Listings))
		export.GET("/specs.xml", ExportSpecsHandler(deps.Specs))
	}

	api := r.Group("/api")
	{
		api.POST("/chat", ChatHandler(deps.Chat))
		api.POST("/assistant", AssistantHandler(deps.Assistant))

		api.GET("/sessions/:id/messages", SessionMessagesHandler(deps.Chat))
		api.DELETE("/sessions/:id", ResetSessionHandler(deps.Chat))

		logger := deps.Chat.Logger()
		api.GET("/logs", RecentLogsHandler(logger))
		api.GET("/logs/stats", LogStatsHandler(logger))
		api.GET("/logs/export", ExportLogsHandler(logger))
		api.GET("/logs/session/:id", SessionLogsHandler(logger))
		api.DELETE("/logs", ClearLogsHandler(logger))
		api.POST("/logs/:id/feedback", FeedbackHandler(logger))
	}
}

// Handler returns the full handler chain, CORS included.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) String() string {
	return "http"
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.srv.Addr).Msg("starting http server")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
