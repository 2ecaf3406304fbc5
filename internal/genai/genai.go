// Package genai issues completion requests against a stateless
// Gemini-style generateContent endpoint. The client holds no state between
// calls; every request carries the full conversation payload.
package genai

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	apperrors "github.com/Jaideepo7/Meal-Planner/internal/errors"
	"github.com/Jaideepo7/Meal-Planner/internal/types"
)

// DefaultEndpoint is the production completion endpoint.
const DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent"

// Wire roles. The endpoint only understands "user" and "model"; the
// engine's assistant role maps to "model".
const (
	WireRoleUser  = "user"
	WireRoleModel = "model"
)

// Part is one text block of a turn.
type Part struct {
	Text string `json:"text"`
}

// Content is one role-tagged turn of the request payload.
type Content struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// GenerationConfig carries the fixed sampling parameters.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// DefaultGenerationConfig returns the parameters the app ships with.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{Temperature: 0.7, TopK: 40, TopP: 0.95, MaxOutputTokens: 1024}
}

// Request is the ordered, role-tagged payload of one completion call.
// It is derived fresh per call and never retained afterwards.
type Request struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type response struct {
	Candidates []struct {
		Content struct {
			Parts []Part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client sends completion requests. Safe for concurrent use.
type Client struct {
	rc       *resty.Client
	endpoint string
	apiKey   string
}

// New constructs a Client for the given endpoint and credential. An empty
// apiKey is allowed at construction; Send reports it per call so the UI can
// show setup instructions.
func New(endpoint, apiKey string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rc := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	return &Client{rc: rc, endpoint: endpoint, apiKey: apiKey}
}

// Send issues the request and returns the first candidate's text verbatim.
//
// Error contract:
//   - types.ErrMissingCredential when no API key is configured
//   - types.ErrMalformedResponse when a 2xx response has no usable candidate
//   - a recoverable classified error for network and HTTP failures
func (c *Client) Send(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" {
		return "", types.ErrMissingCredential
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var out response
	var apiErr apiError
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(req).
		SetResult(&out).
		SetError(&apiErr).
		Post(c.endpoint)
	if err != nil {
		return "", apperrors.NewNetworkError("completion", err)
	}
	if resp.IsError() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = resp.Status()
		}
		return "", apperrors.NewHTTPError(resp.StatusCode(), msg, "completion")
	}

	if len(out.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned: %w", types.ErrMalformedResponse)
	}
	parts := out.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == "" {
		return "", fmt.Errorf("candidate has no text: %w", types.ErrMalformedResponse)
	}
	return parts[0].Text, nil
}
