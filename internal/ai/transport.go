package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

const maxResponseBytes = 8 << 20

type Prompt struct {
	System    string
	User      string
	MaxTokens int
	// JSON asks the provider for a JSON object answer where it supports that.
	JSON bool
}

// TextModel is a hosted text-generation model.
type TextModel interface {
	Configured() bool
	Complete(ctx context.Context, p Prompt) (string, error)
}

// ImageModel is a hosted image-generation model returning an image URL.
type ImageModel interface {
	Configured() bool
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

func postJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%s: marshal request: %w", provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", provider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", provider, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", provider, err)
	}

	if resp.StatusCode >= 400 {
		msg := gjson.GetBytes(raw, "error.message").String()
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
			if len(msg) > 512 {
				msg = msg[:512] + "...(truncated)"
			}
		}
		return nil, &UpstreamError{Provider: provider, Status: resp.StatusCode, Message: msg}
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%s: %w: response body is not json", provider, ErrMalformedResponse)
	}
	return raw, nil
}
