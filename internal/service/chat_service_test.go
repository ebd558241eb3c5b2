package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wanderplan/internal/dto"
	"wanderplan/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMessageStore struct {
	created []*models.ChatMessage
}

func (s *fakeMessageStore) Create(_ context.Context, msg *models.ChatMessage) error {
	copied := *msg
	s.created = append(s.created, &copied)
	return nil
}

func (s *fakeMessageStore) ListByTrip(_ context.Context, tripID uuid.UUID) ([]*models.ChatMessage, error) {
	var out []*models.ChatMessage
	for _, m := range s.created {
		if m.TripID != nil && *m.TripID == tripID {
			out = append(out, m)
		}
	}
	return out, nil
}

func streamingOllamaServer(t *testing.T, tokens []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		enc := json.NewEncoder(w)
		for _, tok := range tokens {
			enc.Encode(map[string]any{"message": map[string]string{"content": tok}, "done": false})
		}
		enc.Encode(map[string]any{"message": map[string]string{"content": ""}, "done": true, "done_reason": "stop"})
	}))
}

func TestStreamConversationPersistsBothSides(t *testing.T) {
	server := streamingOllamaServer(t, []string{"Visit ", "Kyoto."})
	defer server.Close()

	store := &fakeMessageStore{}
	ollama := NewOllamaService(testOllamaConfig(server.URL), zap.NewNop())
	svc := NewChatService(store, ollama, zap.NewNop())

	tripID := uuid.New()
	req := dto.ChatRequest{
		Messages: []dto.ChatMessageIn{
			{Role: models.RoleAssistant, Content: "How can I help?"},
			{Role: models.RoleUser, Content: "Where should I go in October?"},
		},
	}

	var streamed []string
	err := svc.StreamConversation(context.Background(), req, &tripID, func(token string) error {
		streamed = append(streamed, token)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Visit ", "Kyoto."}, streamed)

	require.Len(t, store.created, 2)
	// The latest user message goes in first, the full reply after the stream.
	assert.Equal(t, models.RoleUser, store.created[0].Role)
	assert.Equal(t, "Where should I go in October?", store.created[0].Content)
	assert.Equal(t, models.RoleAssistant, store.created[1].Role)
	assert.Equal(t, "Visit Kyoto.", store.created[1].Content)
	require.NotNil(t, store.created[0].TripID)
	assert.Equal(t, tripID, *store.created[0].TripID)
}

func TestStreamConversationWithoutTrip(t *testing.T) {
	server := streamingOllamaServer(t, []string{"Hello!"})
	defer server.Close()

	store := &fakeMessageStore{}
	ollama := NewOllamaService(testOllamaConfig(server.URL), zap.NewNop())
	svc := NewChatService(store, ollama, zap.NewNop())

	req := dto.ChatRequest{
		Messages: []dto.ChatMessageIn{{Role: models.RoleUser, Content: "Hi"}},
	}

	err := svc.StreamConversation(context.Background(), req, nil, func(string) error { return nil })

	require.NoError(t, err)
	require.Len(t, store.created, 2)
	assert.Nil(t, store.created[0].TripID)
}

func TestStreamConversationUpstreamDown(t *testing.T) {
	store := &fakeMessageStore{}
	ollama := NewOllamaService(testOllamaConfig("http://127.0.0.1:1"), zap.NewNop())
	svc := NewChatService(store, ollama, zap.NewNop())

	req := dto.ChatRequest{
		Messages: []dto.ChatMessageIn{{Role: models.RoleUser, Content: "Hi"}},
	}

	err := svc.StreamConversation(context.Background(), req, nil, func(string) error { return nil })

	require.ErrorIs(t, err, ErrOllamaUnavailable)
	// The user message is still recorded; no assistant reply exists.
	require.Len(t, store.created, 1)
	assert.Equal(t, models.RoleUser, store.created[0].Role)
}

func TestGenerateDecodesJSONResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"message":        map[string]string{"content": `{"answer": 42}`},
			"done":           true,
			"eval_count":     10,
			"total_duration": int64(1_000_000_000),
		})
	}))
	defer server.Close()

	ollama := NewOllamaService(testOllamaConfig(server.URL), zap.NewNop())
	svc := NewChatService(&fakeMessageStore{}, ollama, zap.NewNop())

	resp, err := svc.Generate(context.Background(), dto.StructuredRequest{Prompt: "answer"})

	require.NoError(t, err)
	decoded, ok := resp.Result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(42), decoded["answer"])
	assert.Equal(t, int64(1000), resp.Usage.TotalDurationMS)
}

func TestGenerateFallsBackToRawText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{"content": "not json, sorry"},
			"done":    true,
		})
	}))
	defer server.Close()

	ollama := NewOllamaService(testOllamaConfig(server.URL), zap.NewNop())
	svc := NewChatService(&fakeMessageStore{}, ollama, zap.NewNop())

	resp, err := svc.Generate(context.Background(), dto.StructuredRequest{Prompt: "answer"})

	require.NoError(t, err)
	assert.Equal(t, "not json, sorry", resp.Result)
}

func TestHistoryOrdersAndFormats(t *testing.T) {
	store := &fakeMessageStore{}
	tripID := uuid.New()
	now := time.Now().UTC()
	store.Create(context.Background(), &models.ChatMessage{
		ID: uuid.New(), TripID: &tripID, Role: models.RoleUser, Content: "q", CreatedAt: now,
	})
	store.Create(context.Background(), &models.ChatMessage{
		ID: uuid.New(), TripID: &tripID, Role: models.RoleAssistant, Content: "a", CreatedAt: now.Add(time.Second),
	})

	svc := NewChatService(store, NewOllamaService(testOllamaConfig("http://127.0.0.1:1"), zap.NewNop()), zap.NewNop())

	items, err := svc.History(context.Background(), tripID)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, models.RoleUser, items[0].Role)
	assert.Equal(t, now.Format(time.RFC3339), items[0].CreatedAt)
}
