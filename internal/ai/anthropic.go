package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/metrics"
)

const (
	DefaultAnthropicBaseURL = "https://api.anthropic.com"
	DefaultAnthropicModel   = "claude-sonnet-4-20250514"
	anthropicVersion        = "2023-06-01"
)

type AnthropicConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Anthropic calls the Messages API.
type Anthropic struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

func NewAnthropic(cfg AnthropicConfig) *Anthropic {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultAnthropicBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultAnthropicModel
	}
	return &Anthropic{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

func (a *Anthropic) Configured() bool { return a.apiKey != "" }

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

// Complete returns the first text block of the reply. Non-text first blocks yield "".
func (a *Anthropic) Complete(ctx context.Context, p Prompt) (text string, err error) {
	if !a.Configured() {
		return "", fmt.Errorf("%w: ANTHROPIC_API_KEY is not set", ErrNotConfigured)
	}
	defer func(start time.Time) { metrics.ObserveModelCall("anthropic", "messages", start, err) }(time.Now())

	maxTokens := p.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	raw, err := postJSON(ctx, a.http, "anthropic", a.baseURL+"/v1/messages", map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": anthropicVersion,
	}, anthropicRequest{
		Model:     a.model,
		MaxTokens: maxTokens,
		System:    p.System,
		Messages:  []anthropicMessage{{Role: "user", Content: p.User}},
	})
	if err != nil {
		return "", err
	}

	first := gjson.GetBytes(raw, "content.0")
	if first.Get("type").String() != "text" {
		return "", nil
	}
	return first.Get("text").String(), nil
}
