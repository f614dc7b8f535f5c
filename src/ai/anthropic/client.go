package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/veriscope/veriscope/src/ai/core"
	"github.com/veriscope/veriscope/src/webclient"
)

const (
	anthropicEndpoint = "https://api.anthropic.com/v1/messages"
	defaultModel      = "claude-3-5-haiku-latest"
	defaultMaxTokens  = 1024
)

func init() {
	core.RegisterProvider("anthropic", newClient, "claude")
}

type client struct {
	apiKey     string
	model      string
	httpClient *http.Client
	endpoint   string
}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	if cfg.AnthropicKey == "" {
		return nil, fmt.Errorf("anthropic: API key not configured")
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &client{
		apiKey:     cfg.AnthropicKey,
		model:      model,
		httpClient: webclient.NewDefault(60 * time.Second),
		endpoint:   anthropicEndpoint,
	}, nil
}

func (c *client) Name() string { return "anthropic" }

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (c *client) Judge(ctx context.Context, prompt core.Prompt) (string, error) {
	content := []map[string]any{
		{"type": "text", "text": prompt.User},
	}
	if prompt.HasImage() {
		content = append(content, map[string]any{
			"type": "image",
			"source": map[string]string{
				"type":       "base64",
				"media_type": prompt.ImageMIME,
				"data":       prompt.ImageB64,
			},
		})
	}

	body := map[string]any{
		"model":       c.model,
		"system":      prompt.System,
		"max_tokens":  defaultMaxTokens,
		"temperature": 0.2,
		"messages": []map[string]any{
			{"role": "user", "content": content},
		},
	}

	payload, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("anthropic: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic: status %d: %s", resp.StatusCode, core.TruncateErr(raw))
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("anthropic: decode response: %w", err)
	}

	var sb strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("anthropic: empty response")
	}
	return text, nil
}
