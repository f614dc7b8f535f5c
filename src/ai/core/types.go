package core

import "context"

// Prompt is one judgment request. ImageB64, when set, carries a cleaned
// base64 payload (no data: prefix) to be sent inline alongside the user
// message.
type Prompt struct {
	System    string
	User      string
	ImageB64  string
	ImageMIME string
}

// HasImage reports whether the prompt carries an inline image.
func (p Prompt) HasImage() bool { return p.ImageB64 != "" }

// Options controls model behavior; fields are optional per provider.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Client is a provider-agnostic interface for the single LLM operation the
// service needs: hand over a prompt, get the raw text response back. The
// response is untrusted and goes through the verdict normalizer unchanged.
type Client interface {
	Judge(ctx context.Context, prompt Prompt) (string, error)
	Name() string
}
