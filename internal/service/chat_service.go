package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"wanderplan/internal/dto"
	"wanderplan/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MessageStore persists chat transcript entries.
type MessageStore interface {
	Create(ctx context.Context, msg *models.ChatMessage) error
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]*models.ChatMessage, error)
}

type ChatService struct {
	messages MessageStore
	ollama   *OllamaService
	logger   *zap.Logger
}

func NewChatService(messages MessageStore, ollama *OllamaService, logger *zap.Logger) *ChatService {
	return &ChatService{
		messages: messages,
		ollama:   ollama,
		logger:   logger,
	}
}

// StreamConversation streams the assistant's reply token by token through
// onToken. The latest user message is persisted before the upstream call;
// whatever the assistant produced is persisted once the stream ends, even if
// it was cut short.
func (s *ChatService) StreamConversation(ctx context.Context, req dto.ChatRequest, tripID *uuid.UUID, onToken func(token string) error) error {
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == models.RoleUser {
			s.persist(ctx, tripID, models.RoleUser, req.Messages[i].Content)
			break
		}
	}

	turns := make([]ChatTurn, 0, len(req.Messages))
	for _, m := range req.Messages {
		turns = append(turns, ChatTurn{Role: m.Role, Content: m.Content})
	}

	var full strings.Builder
	streamErr := s.ollama.StreamChat(ctx, turns, req.Model, req.KeepAlive, func(token string) error {
		full.WriteString(token)
		return onToken(token)
	})

	if full.Len() > 0 {
		s.persist(ctx, tripID, models.RoleAssistant, full.String())
	}
	return streamErr
}

// Generate performs a one-shot structured generation. The result field holds
// the decoded JSON value, or the raw text when the model failed to produce
// JSON; the caller distinguishes the two by type.
func (s *ChatService) Generate(ctx context.Context, req dto.StructuredRequest) (*dto.GenerateResponse, error) {
	result, err := s.ollama.GenerateStructured(ctx, req.Prompt, req.Model, req.Schema)
	if err != nil {
		return nil, err
	}

	resp := &dto.GenerateResponse{
		Usage: dto.UsageResponse{
			PromptTokens:     result.Usage.PromptTokens,
			CompletionTokens: result.Usage.CompletionTokens,
			TotalDurationMS:  result.Usage.TotalDurationMS,
		},
	}
	var decoded any
	if err := json.Unmarshal(result.Raw, &decoded); err != nil {
		resp.Result = string(result.Raw)
	} else {
		resp.Result = decoded
	}
	return resp, nil
}

// History returns a trip's transcript in creation order.
func (s *ChatService) History(ctx context.Context, tripID uuid.UUID) ([]dto.ChatHistoryItem, error) {
	messages, err := s.messages.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ChatHistoryItem, 0, len(messages))
	for _, m := range messages {
		items = append(items, dto.ChatHistoryItem{
			ID:        m.ID.String(),
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
		})
	}
	return items, nil
}

// Status reports Ollama reachability and the locally installed models.
func (s *ChatService) Status(ctx context.Context) dto.OllamaStatusResponse {
	status := s.ollama.Status(ctx)
	return dto.OllamaStatusResponse{
		Running:    status.Running,
		Models:     status.Models,
		ModelCount: status.ModelCount,
	}
}

func (s *ChatService) persist(ctx context.Context, tripID *uuid.UUID, role, content string) {
	msg := &models.ChatMessage{
		ID:        uuid.New(),
		TripID:    tripID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		s.logger.Error("Failed to persist chat message", zap.String("role", role), zap.Error(err))
	}
}
