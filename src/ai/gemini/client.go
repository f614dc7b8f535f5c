package gemini

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
	geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel   = "gemini-2.0-flash"
)

func init() {
	core.RegisterProvider("gemini", newClient, "google")
}

type client struct {
	apiKey     string
	model      string
	httpClient *http.Client
	endpoint   string
}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	if cfg.GeminiKey == "" {
		return nil, fmt.Errorf("gemini: API key not configured")
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &client{
		apiKey:     cfg.GeminiKey,
		model:      model,
		httpClient: webclient.NewDefault(60 * time.Second),
		endpoint:   geminiEndpoint,
	}, nil
}

func (c *client) Name() string { return "gemini" }

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *client) Judge(ctx context.Context, prompt core.Prompt) (string, error) {
	parts := []map[string]any{{"text": prompt.User}}
	if prompt.HasImage() {
		parts = append(parts, map[string]any{
			"inline_data": map[string]string{
				"mime_type": prompt.ImageMIME,
				"data":      prompt.ImageB64,
			},
		})
	}

	body := map[string]any{
		"system_instruction": map[string]any{
			"parts": []map[string]string{{"text": prompt.System}},
		},
		"contents": []map[string]any{
			{"role": "user", "parts": parts},
		},
		"generationConfig": map[string]any{
			"temperature":      0.2,
			"maxOutputTokens":  1024,
			"responseMimeType": "application/json",
		},
	}

	payload, _ := json.Marshal(body)
	url := fmt.Sprintf("%s/%s:generateContent", c.endpoint, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: status %d: %s", resp.StatusCode, core.TruncateErr(raw))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}

	var sb strings.Builder
	for _, cand := range parsed.Candidates {
		for _, part := range cand.Content.Parts {
			sb.WriteString(part.Text)
		}
		break
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return text, nil
}
