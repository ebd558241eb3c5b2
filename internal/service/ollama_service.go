package service

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"wanderplan/pkg/config"

	"go.uber.org/zap"
)

// systemPrompt frames every Ollama conversation. Itinerary JSON blocks are
// emitted only when the user explicitly asks for them.
const systemPrompt = `You are WanderPlan, an expert AI travel planning assistant. You help users plan trips, create detailed itineraries, discover hidden gems, and get practical travel advice.

When a user asks about a destination, you should:
1. Suggest must-see attractions and hidden gems
2. Recommend local food and restaurants
3. Provide practical tips (weather, transport, safety, costs)
4. Help build day-by-day itineraries
5. Suggest accommodations for different budgets

When creating itineraries, format activities as JSON blocks when explicitly requested, like:
` + "```json" + `
{"type": "itinerary", "days": [{"day": 1, "activities": [...]}]}
` + "```" + `

Be enthusiastic, specific, and practical. Always tailor advice to the user's interests and travel style.`

// ChatTurn is one message in an Ollama conversation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage carries the token accounting Ollama reports per generation.
type Usage struct {
	PromptTokens     int   `json:"prompt_tokens"`
	CompletionTokens int   `json:"completion_tokens"`
	TotalDurationMS  int64 `json:"total_duration_ms"`
}

// GenerateResult is the outcome of a structured generation call. Raw is the
// model's message content as-is: valid JSON when the model honored the
// format, arbitrary text when it did not. Callers decide how strictly to
// parse it.
type GenerateResult struct {
	Raw   json.RawMessage
	Usage Usage
}

// OllamaStatus describes gateway reachability and the locally installed models.
type OllamaStatus struct {
	Running    bool
	Models     []string
	ModelCount int
}

// OllamaService talks to a local Ollama instance over its HTTP API.
type OllamaService struct {
	cfg        *config.OllamaConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewOllamaService(cfg *config.OllamaConfig, logger *zap.Logger) *OllamaService {
	return &OllamaService{
		cfg:        cfg,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// chatPayload is the request body of POST /api/chat.
// Format carries either the literal "json" or a full JSON schema object.
type chatPayload struct {
	Model     string     `json:"model"`
	Messages  []ChatTurn `json:"messages"`
	Stream    bool       `json:"stream"`
	Format    any        `json:"format,omitempty"`
	KeepAlive string     `json:"keep_alive,omitempty"`
}

type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Done            bool   `json:"done"`
	DoneReason      string `json:"done_reason"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
	TotalDuration   int64  `json:"total_duration"`
}

// GenerateStructured performs a non-streaming generation constrained to JSON
// output. If schema is nil, best-effort JSON is requested; otherwise Ollama
// enforces the schema shape. Transport and non-2xx failures come back wrapped
// in ErrOllamaUnavailable.
func (s *OllamaService) GenerateStructured(ctx context.Context, prompt, model string, schema map[string]any) (*GenerateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.GenerateTimeout)
	defer cancel()

	var format any = "json"
	if schema != nil {
		format = schema
	}

	payload := chatPayload{
		Model: s.resolveModel(model),
		Messages: []ChatTurn{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Stream: false,
		Format: format,
	}

	resp, err := s.postChat(ctx, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var data chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrOllamaUnavailable, err)
	}

	return &GenerateResult{
		Raw: json.RawMessage(data.Message.Content),
		Usage: Usage{
			PromptTokens:     data.PromptEvalCount,
			CompletionTokens: data.EvalCount,
			TotalDurationMS:  data.TotalDuration / 1_000_000,
		},
	}, nil
}

// StreamChat streams a conversation, invoking onToken for every token as it
// arrives. The system prompt is prepended to the supplied messages.
func (s *OllamaService) StreamChat(ctx context.Context, messages []ChatTurn, model, keepAlive string, onToken func(token string) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.GenerateTimeout)
	defer cancel()

	if keepAlive == "" {
		keepAlive = s.cfg.KeepAlive
	}

	payload := chatPayload{
		Model:     s.resolveModel(model),
		Messages:  append([]ChatTurn{{Role: "system", Content: systemPrompt}}, messages...),
		Stream:    true,
		KeepAlive: keepAlive,
	}

	resp, err := s.postChat(ctx, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var chunk chatResponse
		if err := json.Unmarshal(line, &chunk); err != nil {
			continue
		}
		if chunk.Message.Content != "" {
			if err := onToken(chunk.Message.Content); err != nil {
				return err
			}
		}
		if chunk.Done && (chunk.DoneReason == "stop" || chunk.DoneReason == "length") {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: reading stream: %v", ErrOllamaUnavailable, err)
	}
	return nil
}

// ListModels returns the names of locally installed models via GET /api/tags.
func (s *OllamaService) ListModels(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ListTimeout)
	defer cancel()
	return s.fetchModels(ctx)
}

// Status probes the gateway. It never returns an error: an unreachable
// gateway is reported as not running.
func (s *OllamaService) Status(ctx context.Context) *OllamaStatus {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.StatusTimeout)
	defer cancel()

	models, err := s.fetchModels(ctx)
	if err != nil {
		return &OllamaStatus{Running: false, Models: []string{}}
	}
	return &OllamaStatus{Running: true, Models: models, ModelCount: len(models)}
}

func (s *OllamaService) fetchModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOllamaUnavailable, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOllamaUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrOllamaUnavailable, resp.StatusCode)
	}

	var data struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrOllamaUnavailable, err)
	}

	models := make([]string, 0, len(data.Models))
	for _, m := range data.Models {
		models = append(models, m.Name)
	}
	return models, nil
}

func (s *OllamaService) postChat(ctx context.Context, payload chatPayload) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %v", ErrOllamaUnavailable, err)
	}

	url := strings.TrimRight(s.cfg.BaseURL, "/") + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOllamaUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOllamaUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status %d: %s", ErrOllamaUnavailable, resp.StatusCode, bytes.TrimSpace(detail))
	}
	return resp, nil
}

func (s *OllamaService) resolveModel(model string) string {
	if model == "" {
		return s.cfg.DefaultModel
	}
	return model
}
