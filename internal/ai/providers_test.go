package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropicComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var body anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, DefaultAnthropicModel, body.Model)
		assert.Equal(t, 600, body.MaxTokens)
		assert.Equal(t, "be wise", body.System)
		require.Len(t, body.Messages, 1)
		assert.Equal(t, "user", body.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"text","text":"hello dreamer"}]}`))
	}))
	defer srv.Close()

	c := NewAnthropic(AnthropicConfig{APIKey: "secret", BaseURL: srv.URL + "/"})
	out, err := c.Complete(context.Background(), Prompt{System: "be wise", User: "dream", MaxTokens: 600})
	require.NoError(t, err)
	assert.Equal(t, "hello dreamer", out)
}

func TestAnthropicNonTextBlockYieldsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[{"type":"tool_use","id":"x"}]}`))
	}))
	defer srv.Close()

	out, err := NewAnthropic(AnthropicConfig{APIKey: "k", BaseURL: srv.URL}).Complete(context.Background(), Prompt{User: "u"})
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestAnthropicUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer srv.Close()

	_, err := NewAnthropic(AnthropicConfig{APIKey: "k", BaseURL: srv.URL}).Complete(context.Background(), Prompt{User: "u"})
	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusTooManyRequests, ue.Status)
	assert.Equal(t, "slow down", ue.Message)
}

func TestAnthropicWithoutKey(t *testing.T) {
	c := NewAnthropic(AnthropicConfig{})
	assert.False(t, c.Configured())
	_, err := c.Complete(context.Background(), Prompt{User: "u"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestOpenAIChatAndImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/v1/chat/completions":
			var body chatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, DefaultOpenAIChatModel, body.Model)
			require.Len(t, body.Messages, 2)
			assert.Equal(t, "system", body.Messages[0].Role)
			require.NotNil(t, body.ResponseFormat)
			assert.Equal(t, "json_object", body.ResponseFormat.Type)
			w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"title\":\"x\"}"}}]}`))
		case "/v1/images/generations":
			var body imageRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, DefaultOpenAIImageModel, body.Model)
			assert.Equal(t, 1, body.N)
			assert.Equal(t, "1024x1024", body.Size)
			assert.Equal(t, "a whale", body.Prompt)
			w.Write([]byte(`{"data":[{"url":"https://img.example/w.png"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewOpenAI(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})
	text, err := c.Complete(context.Background(), Prompt{System: "s", User: "u", JSON: true})
	require.NoError(t, err)
	assert.Equal(t, `{"title":"x"}`, text)

	url, err := c.GenerateImage(context.Background(), "a whale")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/w.png", url)
}

func TestOpenAINonJSONBodyIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway</html>`))
	}))
	defer srv.Close()

	_, err := NewOpenAI(OpenAIConfig{APIKey: "k", BaseURL: srv.URL}).Complete(context.Background(), Prompt{User: "u"})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}
