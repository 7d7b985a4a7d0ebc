package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/collabcode/collabcode-server/internal/ai"
	"github.com/collabcode/collabcode-server/internal/config"
	"github.com/collabcode/collabcode-server/internal/core"
	"github.com/collabcode/collabcode-server/internal/store"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewServer builds the HTTP server with REST and WebSocket routes.
func NewServer(session *core.Session, st store.Store, provider ai.Provider, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	roomHandlers := NewRoomHandlers(st, logger)
	aiHandlers := NewAIHandlers(provider, session, logger)
	wsHandler := NewWSHandler(session, logger)

	router.GET("/health", healthHandler)
	router.POST("/rooms", roomHandlers.CreateRoom)
	router.POST("/autocomplete", aiHandlers.Autocomplete)
	router.POST("/ai-chat", aiHandlers.Chat)
	router.GET("/ws/:roomId", wsHandler.Handle)

	handler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	})(router)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
