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
	DefaultOpenAIBaseURL    = "https://api.openai.com"
	DefaultOpenAIChatModel  = "gpt-4o"
	DefaultOpenAIImageModel = "dall-e-3"
)

type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	ChatModel  string
	ImageModel string
	Timeout    time.Duration
}

// OpenAI serves both chat completions and image generation.
type OpenAI struct {
	apiKey     string
	baseURL    string
	chatModel  string
	imageModel string
	http       *http.Client
}

func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOpenAIBaseURL
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultOpenAIChatModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = DefaultOpenAIImageModel
	}
	return &OpenAI{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		chatModel:  cfg.ChatModel,
		imageModel: cfg.ImageModel,
		http:       &http.Client{Timeout: cfg.Timeout},
	}
}

func (o *OpenAI) Configured() bool { return o.apiKey != "" }

func (o *OpenAI) headers() map[string]string {
	return map[string]string{"Authorization": "Bearer " + o.apiKey}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

func (o *OpenAI) Complete(ctx context.Context, p Prompt) (text string, err error) {
	if !o.Configured() {
		return "", fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrNotConfigured)
	}
	defer func(start time.Time) { metrics.ObserveModelCall("openai", "chat", start, err) }(time.Now())

	req := chatRequest{Model: o.chatModel, MaxTokens: p.MaxTokens}
	if p.System != "" {
		req.Messages = append(req.Messages, chatMessage{Role: "system", Content: p.System})
	}
	req.Messages = append(req.Messages, chatMessage{Role: "user", Content: p.User})
	if p.JSON {
		req.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	raw, err := postJSON(ctx, o.http, "openai", o.baseURL+"/v1/chat/completions", o.headers(), req)
	if err != nil {
		return "", err
	}
	return gjson.GetBytes(raw, "choices.0.message.content").String(), nil
}

type imageRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
}

// GenerateImage returns the URL of a single 1024x1024 image; "" when the provider omits it.
func (o *OpenAI) GenerateImage(ctx context.Context, prompt string) (url string, err error) {
	if !o.Configured() {
		return "", fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrNotConfigured)
	}
	defer func(start time.Time) { metrics.ObserveModelCall("openai", "images", start, err) }(time.Now())

	raw, err := postJSON(ctx, o.http, "openai", o.baseURL+"/v1/images/generations", o.headers(), imageRequest{
		Model:   o.imageModel,
		Prompt:  prompt,
		N:       1,
		Size:    "1024x1024",
		Quality: "standard",
	})
	if err != nil {
		return "", err
	}
	return gjson.GetBytes(raw, "data.0.url").String(), nil
}
