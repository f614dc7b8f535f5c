package core

import (
	"fmt"
	"strings"
	"sync"
)

// FactoryConfig captures the inputs required to construct a provider client.
type FactoryConfig struct {
	Provider string
	Model    string

	GeminiKey    string
	OpenAIKey    string
	AnthropicKey string
}

// ProviderFactory implements provider-specific Client creation.
type ProviderFactory func(FactoryConfig) (Client, error)

var (
	mu         sync.RWMutex
	providers  = map[string]ProviderFactory{}
	defaultKey = "gemini"
)

// RegisterProvider registers a provider factory under one or more names.
// Provider packages call this from init.
func RegisterProvider(name string, factory ProviderFactory, aliases ...string) {
	mu.Lock()
	defer mu.Unlock()

	for _, n := range append([]string{name}, aliases...) {
		providers[strings.ToLower(n)] = factory
	}
}

// NewClient returns a provider-agnostic AI client for the configured
// provider name, defaulting to gemini.
func NewClient(cfg FactoryConfig) (Client, error) {
	name := strings.TrimSpace(cfg.Provider)
	if name == "" {
		name = defaultKey
	}

	mu.RLock()
	factory := providers[strings.ToLower(name)]
	mu.RUnlock()

	if factory == nil {
		return nil, fmt.Errorf("ai: provider %q not registered", name)
	}
	return factory(cfg)
}

// TruncateErr bounds upstream error bodies before they reach logs. Raw
// bodies are never forwarded to callers; some providers echo request
// parameters into error payloads.
func TruncateErr(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		s = s[:limit] + "..."
	}
	return s
}
