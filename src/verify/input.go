package verify

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	// MinTextLen is the minimum trimmed length of a verifiable text.
	MinTextLen = 10
	// maxTextRunes caps the subject handed to prompts; longer submissions
	// are truncated rather than rejected.
	maxTextRunes = 8 << 10
	// maxImageBytes caps the decoded image payload.
	maxImageBytes = 6 << 20
)

// NormalizeText trims and bounds a text subject.
func NormalizeText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", fmt.Errorf("%w: text is required", ErrValidation)
	}
	if len([]rune(text)) < MinTextLen {
		return "", fmt.Errorf("%w: text must be at least %d characters", ErrValidation, MinTextLen)
	}
	if r := []rune(text); len(r) > maxTextRunes {
		text = string(r[:maxTextRunes])
	}
	return text, nil
}

// DecodeImage validates a base64 image submission. Any data:image/...;base64,
// prefix is stripped; the returned payload is the cleaned base64 string with
// the MIME type taken from the prefix (default image/jpeg).
func DecodeImage(raw string) (payload string, mime string, err error) {
	payload = strings.TrimSpace(raw)
	if payload == "" {
		return "", "", fmt.Errorf("%w: image_base64 is required", ErrValidation)
	}

	mime = "image/jpeg"
	if strings.HasPrefix(payload, "data:") {
		head, rest, found := strings.Cut(payload, ",")
		if !found || !strings.HasSuffix(head, ";base64") {
			return "", "", fmt.Errorf("%w: unsupported data URI", ErrValidation)
		}
		if m := strings.TrimSuffix(strings.TrimPrefix(head, "data:"), ";base64"); m != "" {
			mime = m
		}
		payload = rest
	}

	// base64 bodies pasted from tooling often carry line breaks
	payload = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, payload)

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		decoded, err = base64.RawStdEncoding.DecodeString(payload)
	}
	if err != nil {
		return "", "", fmt.Errorf("%w: image_base64 is not valid base64", ErrValidation)
	}
	if len(decoded) == 0 {
		return "", "", fmt.Errorf("%w: image payload is empty", ErrValidation)
	}
	if len(decoded) > maxImageBytes {
		return "", "", fmt.Errorf("%w: image exceeds %d bytes", ErrValidation, maxImageBytes)
	}
	if !strings.HasPrefix(mime, "image/") {
		return "", "", fmt.Errorf("%w: unsupported media type %s", ErrValidation, mime)
	}
	return payload, mime, nil
}
