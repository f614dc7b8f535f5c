package openai

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
	openAIEndpoint = "https://api.openai.com/v1/chat/completions"
	defaultModel   = "gpt-4o-mini"
)

func init() {
	core.RegisterProvider("openai", newClient, "gpt")
}

type client struct {
	apiKey     string
	model      string
	httpClient *http.Client
	endpoint   string
}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("openai: API key not configured")
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &client{
		apiKey:     cfg.OpenAIKey,
		model:      model,
		httpClient: webclient.NewDefault(60 * time.Second),
		endpoint:   openAIEndpoint,
	}, nil
}

func (c *client) Name() string { return "openai" }

func (c *client) Judge(ctx context.Context, prompt core.Prompt) (string, error) {
	var userContent any = prompt.User
	if prompt.HasImage() {
		userContent = []map[string]any{
			{"type": "text", "text": prompt.User},
			{"type": "image_url", "image_url": map[string]string{
				"url": fmt.Sprintf("data:%s;base64,%s", prompt.ImageMIME, prompt.ImageB64),
			}},
		}
	}

	body := map[string]any{
		"model": c.model,
		"messages": []map[string]any{
			{"role": "system", "content": prompt.System},
			{"role": "user", "content": userContent},
		},
		"temperature":     0.2,
		"response_format": map[string]string{"type": "json_object"},
	}

	payload, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai: status %d: %s", resp.StatusCode, core.TruncateErr(raw))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("openai: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}
	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("openai: empty response")
	}
	return text, nil
}
