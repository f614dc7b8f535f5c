package webserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/veriscope/veriscope/src/verdict"
	"github.com/veriscope/veriscope/src/verify"
)

// Verify holds the handlers for the verification endpoints. Each endpoint
// pairs the shared pipeline with its response schema.
type Verify struct {
	Svc *verify.Service
}

type textRequest struct {
	Text string `json:"text"`
}

type imageRequest struct {
	ImageBase64 string `json:"image_base64"`
}

// Text handles POST /v1/verify/text.
func (h Verify) Text(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": "body must be JSON with a text field"})
		return
	}
	v, err := h.Svc.VerifyText(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, verdict.SchemaLabel.Encode(v))
}

// Claim handles POST /v1/verify/claim.
func (h Verify) Claim(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": "body must be JSON with a text field"})
		return
	}
	h.claim(c, req.Text)
}

// ClaimQuery handles GET /v1/verify/claim?q=...
func (h Verify) ClaimQuery(c *gin.Context) {
	h.claim(c, c.Query("q"))
}

func (h Verify) claim(c *gin.Context, text string) {
	v, err := h.Svc.VerifyClaim(c.Request.Context(), text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, verdict.SchemaVerdict.Encode(v))
}

// Quick handles POST /v1/verify/quick — the offline heuristic path.
func (h Verify) Quick(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": "body must be JSON with a text field"})
		return
	}
	v, err := h.Svc.VerifyQuick(req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, verdict.SchemaLabel.Encode(v))
}

// Image handles POST /v1/verify/image.
func (h Verify) Image(c *gin.Context) {
	var req imageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": "body must be JSON with an image_base64 field"})
		return
	}
	v, err := h.Svc.VerifyImage(c.Request.Context(), req.ImageBase64)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, verdict.SchemaLabel.Encode(v))
}

// respondError maps the verify error taxonomy onto HTTP statuses. Provider
// failures deliberately carry no upstream detail: error bodies from upstream
// can echo request parameters, credentials included.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, verify.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": err.Error()})
	case errors.Is(err, verify.ErrConfiguration):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server not configured"})
	case errors.Is(err, verify.ErrProvider):
		c.JSON(http.StatusBadGateway, gin.H{"error": "verification temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
