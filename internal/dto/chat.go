package dto

type ChatMessageIn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest starts a streamed conversation. KeepAlive controls how long
// the model stays loaded upstream: "5m", "0" to unload, "-1" forever.
type ChatRequest struct {
	Messages  []ChatMessageIn `json:"messages"`
	TripID    *string         `json:"trip_id"`
	Model     string          `json:"model"`
	KeepAlive string          `json:"keep_alive"`
}

// StructuredRequest asks for a one-shot JSON generation. Schema is an
// optional JSON schema for typed output.
type StructuredRequest struct {
	Prompt string         `json:"prompt"`
	Model  string         `json:"model"`
	Schema map[string]any `json:"schema"`
}

type UsageResponse struct {
	PromptTokens     int   `json:"prompt_tokens"`
	CompletionTokens int   `json:"completion_tokens"`
	TotalDurationMS  int64 `json:"total_duration_ms"`
}

// GenerateResponse carries the structured generation result. Result is the
// decoded JSON object, or the raw string when the model failed to honor the
// schema.
type GenerateResponse struct {
	Result any           `json:"result"`
	Usage  UsageResponse `json:"usage"`
}

type ChatHistoryItem struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type OllamaStatusResponse struct {
	Running    bool     `json:"running"`
	Models     []string `json:"models"`
	ModelCount int      `json:"model_count"`
}
