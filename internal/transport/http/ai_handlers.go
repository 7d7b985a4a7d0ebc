package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/collabcode/collabcode-server/internal/ai"
	"github.com/collabcode/collabcode-server/internal/core"
)

// AIHandlers provides HTTP handlers for the assistant endpoints.
type AIHandlers struct {
	provider ai.Provider
	session  *core.Session
	log      *zerolog.Logger
}

// NewAIHandlers creates a new AI handlers instance.
func NewAIHandlers(provider ai.Provider, session *core.Session, logger *zerolog.Logger) *AIHandlers {
	return &AIHandlers{
		provider: provider,
		session:  session,
		log:      logger,
	}
}

// AutocompleteRequest represents the autocomplete request body.
type AutocompleteRequest struct {
	Code           string `json:"code"`
	CursorPosition int    `json:"cursorPosition"`
	Language       string `json:"language"`
}

// AutocompleteResponse represents the autocomplete response body.
type AutocompleteResponse struct {
	Suggestion string `json:"suggestion"`
}

// AIChatRequest represents the assistant chat request body.
type AIChatRequest struct {
	Prompt   string `json:"prompt" binding:"required"`
	Code     string `json:"code"`
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

// AIChatResponse represents the assistant chat response body.
type AIChatResponse struct {
	Reply    string `json:"reply"`
	Provider string `json:"provider"`
}

// Autocomplete handles code completion requests.
// POST /autocomplete
func (h *AIHandlers) Autocomplete(c *gin.Context) {
	var req AutocompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid autocomplete request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.Language == "" {
		req.Language = "python"
	}

	suggestion, err := h.provider.Complete(c.Request.Context(), req.Code, req.CursorPosition, req.Language)
	if err != nil {
		h.log.Error().Err(err).Msg("completion failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, AutocompleteResponse{Suggestion: suggestion})
}

// Chat handles assistant chat requests. When the request names a room, the
// reply is also injected into that room as a chat message so all
// participants see it.
// POST /ai-chat
func (h *AIHandlers) Chat(c *gin.Context) {
	var req AIChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid ai chat request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	reply, err := h.provider.Chat(c.Request.Context(), req.Prompt, req.Code)
	if err != nil {
		h.log.Error().Err(err).Msg("chat generation failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	if req.RoomID != "" {
		h.session.Inject(req.RoomID, reply.Provider, reply.Text)
	}

	c.JSON(http.StatusOK, AIChatResponse{Reply: reply.Text, Provider: reply.Provider})
}
