// Package gemini implements integration with Google's Gemini AI API.
// It turns user questions into model-generated answers for the bot.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	"gembot/internal/config"
)

// maxErrorBodySize bounds how much of an error response body is kept for logs.
const maxErrorBodySize = 4 * 1024

// Client defines the interface for AI operations used throughout the application.
type Client interface {
	// GenerateReply answers a user question. It always returns text suitable
	// for sending back to the user: API and transport failures are translated
	// into the configured service messages instead of errors.
	GenerateReply(ctx context.Context, question string) string
}

var (
	errRequestFailed = errors.New("gemini request failed")
	errNoCandidates  = errors.New("gemini response contains no candidates")
)

// Wire types for the generateContent REST endpoint.
type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

type httpClient struct {
	httpc    *http.Client
	log      *slog.Logger
	baseURL  string
	model    string
	apiKey   string
	messages config.Messages
}

// NewClient creates a new Gemini client with the provided configuration.
// The returned client answers questions over the plain REST endpoint with a
// total per-request timeout taken from the configuration.
func NewClient(cfg config.GeminiConfig, messages config.Messages, log *slog.Logger) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	logger := log.With("component", "gemini_client")
	logger.Info("Gemini client initialized", "model", cfg.Model, "timeout", cfg.Timeout)

	return &httpClient{
		httpc:    &http.Client{Timeout: cfg.Timeout},
		log:      logger,
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		messages: messages,
	}, nil
}

// GenerateReply answers a user question, translating every failure class
// into the matching configured message. This is the only place where Gemini
// errors become user-facing text.
func (c *httpClient) GenerateReply(ctx context.Context, question string) string {
	reply, err := c.generate(ctx, question)

	switch {
	case err == nil:
		c.log.DebugContext(ctx, "Gemini reply generated", "length", len(reply))
		return reply

	case isTimeout(err):
		c.log.WarnContext(ctx, "Gemini request timed out", "error", err)
		return c.messages.RequestTimeout

	case errors.Is(err, errNoCandidates):
		c.log.WarnContext(ctx, "Gemini returned no candidates")
		return c.messages.NoAnswer

	case errors.Is(err, errRequestFailed):
		c.log.ErrorContext(ctx, "Gemini request failed", "error", err)
		return c.messages.RequestFailed

	default:
		c.log.ErrorContext(ctx, "Gemini response could not be processed", "error", err)
		return c.messages.AIError
	}
}

// generate performs a single generateContent call. There are no retries: the
// user is waiting on the answer and a fast failure beats a slow one.
func (c *httpClient) generate(ctx context.Context, question string) (string, error) {
	payload, err := json.Marshal(generateContentRequest{
		Contents: []content{{Parts: []part{{Text: question}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request body: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return "", fmt.Errorf("%w: unexpected status %d: %s",
			errRequestFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(out.Candidates) == 0 {
		return "", errNoCandidates
	}
	if len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini candidate has no content parts")
	}

	return out.Candidates[0].Content.Parts[0].Text, nil
}

// isTimeout reports whether err was caused by the request deadline, either
// the client's own timeout or the caller's context.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
