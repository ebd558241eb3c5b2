package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"wanderplan/internal/dto"
	"wanderplan/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// StreamChat godoc
// @Summary Stream an assistant reply
// @Description Streams the assistant reply token by token as server-sent events
// @Tags chat
// @Accept json
// @Produce text/event-stream
// @Param request body dto.ChatRequest true "Conversation"
// @Success 200 {string} string "SSE stream"
// @Failure 400 {object} map[string]string
// @Router /api/chat/stream [post]
func (h *ChatHandler) StreamChat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.Messages) == 0 {
		return badRequest(c, "Messages are required")
	}

	var tripID *uuid.UUID
	if req.TripID != nil && *req.TripID != "" {
		id, err := uuid.Parse(*req.TripID)
		if err != nil {
			return badRequest(c, "Invalid trip ID")
		}
		tripID = &id
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	// The request context is released once this handler returns, so the
	// stream writer runs against a background context.
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		writeEvent := func(v any) {
			payload, err := json.Marshal(v)
			if err != nil {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			w.Flush()
		}

		err := h.chatService.StreamConversation(context.Background(), req, tripID, func(token string) error {
			writeEvent(fiber.Map{"token": token})
			return nil
		})
		if err != nil {
			h.logger.Error("Chat stream failed", zap.Error(err))
			writeEvent(fiber.Map{"error": err.Error()})
		}
		writeEvent(fiber.Map{"done": true, "done_reason": "stop"})
	}))
	return nil
}

// Generate godoc
// @Summary Generate a structured completion
// @Description Sends a single prompt to the LLM and returns the parsed JSON result with usage stats
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.StructuredRequest true "Prompt"
// @Success 200 {object} dto.GenerateResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/chat/generate [post]
func (h *ChatHandler) Generate(c *fiber.Ctx) error {
	var req dto.StructuredRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Prompt == "" {
		return badRequest(c, "Prompt is required")
	}

	resp, err := h.chatService.Generate(c.Context(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(resp)
}

// History godoc
// @Summary Get chat history for a trip
// @Tags chat
// @Produce json
// @Param tripID path string true "Trip ID"
// @Success 200 {array} dto.ChatHistoryItem
// @Router /api/chat/history/{tripID} [get]
func (h *ChatHandler) History(c *fiber.Ctx) error {
	tripID, err := uuid.Parse(c.Params("tripID"))
	if err != nil {
		return badRequest(c, "Invalid trip ID")
	}

	resp, err := h.chatService.History(c.Context(), tripID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(resp)
}

// Status godoc
// @Summary Check LLM availability
// @Description Reports whether the local Ollama server is reachable and which models it serves
// @Tags chat
// @Produce json
// @Success 200 {object} dto.OllamaStatusResponse
// @Router /api/chat/status [get]
func (h *ChatHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.chatService.Status(c.Context()))
}
