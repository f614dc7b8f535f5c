package verify

import "errors"

// The error taxonomy the webserver maps onto HTTP statuses. Search failures
// never appear here: search is fail-soft and normalization cannot fail.
var (
	// ErrValidation is the caller's fault: missing or too-short input. 400.
	ErrValidation = errors.New("invalid input")

	// ErrConfiguration is the deployment's fault: the model provider is not
	// configured. Checked before any outbound call. 500.
	ErrConfiguration = errors.New("model provider not configured")

	// ErrProvider is an upstream model failure. Surfaced (not swallowed into
	// a soft verdict) because there is no meaningful verdict without the
	// model. 502.
	ErrProvider = errors.New("model provider failure")
)
