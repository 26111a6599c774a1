package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monastery360/service-travel/internal/application"
	"github.com/monastery360/service-travel/pkg/domain"
	"github.com/monastery360/service-travel/pkg/response"
)

// AssistantHandler handles HTTP requests for chat and itinerary generation.
// Bodies follow the browser widgets' contract rather than the response envelope.
type AssistantHandler struct {
	service     *application.AssistantService
	showDetails bool
}

// NewAssistantHandler creates a new AssistantHandler. showDetails exposes
// upstream error text and is meant for development only.
func NewAssistantHandler(service *application.AssistantService, showDetails bool) *AssistantHandler {
	return &AssistantHandler{service: service, showDetails: showDetails}
}

// RegisterRoutes registers all assistant routes on the given router group.
// limit, when non-nil, guards every route.
func (h *AssistantHandler) RegisterRoutes(r *gin.RouterGroup, limit gin.HandlerFunc) {
	v1 := r.Group("/api/v1")
	if limit != nil {
		v1 = v1.Group("", limit)
	}
	{
		v1.POST("/chat", h.Chat)
		v1.POST("/itinerary", h.Itinerary)
		v1.POST("/festivals/itinerary", h.Itinerary)
	}
}

type chatRequest struct {
	Message             interface{}               `json:"message"`
	ConversationHistory []application.ChatMessage `json:"conversationHistory"`
	Persona             application.Persona       `json:"persona"`
}

// Chat handles POST /api/v1/chat.
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": application.MsgMessageRequired})
		return
	}
	message, ok := req.Message.(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": application.MsgMessageRequired})
		return
	}

	text, err := h.service.Chat(c.Request.Context(), application.ChatRequest{
		Message:             message,
		ConversationHistory: req.ConversationHistory,
		Persona:             req.Persona,
	})
	if err != nil {
		status, msg := classify(err, application.MsgChatFailed)
		body := gin.H{"error": msg}
		if h.showDetails && domain.CodeOf(err) == domain.CodeInternal {
			body["details"] = err.Error()
		}
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": text, "success": true})
}

type itineraryRequest struct {
	UserPreference string `json:"userPreference"`
}

// Itinerary handles POST /api/v1/itinerary and POST /api/v1/festivals/itinerary.
func (h *AssistantHandler) Itinerary(c *gin.Context) {
	var req itineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"itinerary": application.MsgPreferenceRequired})
		return
	}

	text, err := h.service.Itinerary(c.Request.Context(), req.UserPreference)
	if err != nil {
		status, msg := classify(err, application.MsgItineraryFailed)
		c.JSON(status, gin.H{"itinerary": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"itinerary": text})
}

func classify(err error, fallback string) (int, string) {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, fallback
	}
	return response.StatusFor(appErr.Code), appErr.Message
}
