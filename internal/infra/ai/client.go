// Package ai talks to an OpenAI-compatible chat completions endpoint to
// propose shifts for a week.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/workforce-scheduler/internal/config"
	"github.com/BruksfildServices01/workforce-scheduler/internal/domain/schedule"
)

var _ schedule.Generator = (*Client)(nil)

const (
	systemPrompt = `You are a professional scheduling AI assistant. Ensure constraints and fairness.
Respond only with valid JSON containing 'schedule', 'recommendations', 'warnings', 'reasoning'.
Each entry of 'schedule' must have: staffId, role, date (YYYY-MM-DD), startTime (HH:MM), endTime (HH:MM), duration (minutes), breakTime (minutes), hourlyRate, isOvertime, notes.`

	maxResponseBytes = 1 << 20
)

var ErrNotConfigured = errors.New("ai: API key not configured")

type Client struct {
	cfg        config.AIConfig
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(cfg config.AIConfig, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout + 5*time.Second},
		log:        log,
	}
}

// --- wire types ---

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type schedulePayload struct {
	Schedule        []schedule.ProposedShift `json:"schedule"`
	Recommendations []string                 `json:"recommendations"`
	Warnings        []string                 `json:"warnings"`
	Metrics         map[string]any           `json:"metrics"`
	Reasoning       string                   `json:"reasoning"`
}

// Generate never fails: any problem is turned into schedule.Fallback.
func (c *Client) Generate(ctx context.Context, req schedule.GenerationRequest) schedule.GenerationResult {
	prompt := BuildPrompt(req)

	if !c.cfg.Enabled() {
		return schedule.Fallback(prompt, ErrNotConfigured)
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	payload, err := c.complete(ctx, prompt)
	if err != nil {
		c.log.Warn().Err(err).Str("business_id", req.Business.ID.String()).Msg("ai generation failed")
		return schedule.Fallback(prompt, err)
	}

	shifts := payload.Schedule
	if shifts == nil {
		shifts = []schedule.ProposedShift{}
	}

	return schedule.GenerationResult{
		Success:         true,
		Shifts:          shifts,
		Recommendations: orEmpty(payload.Recommendations),
		Warnings:        orEmpty(payload.Warnings),
		Metrics:         payload.Metrics,
		Reasoning:       payload.Reasoning,
		Prompt:          prompt,
	}
}

func (c *Client) complete(ctx context.Context, prompt string) (*schedulePayload, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:      c.cfg.MaxTokens,
		Temperature:    c.cfg.Temperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("ai: encode request: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ai: build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("ai: %w", ctx.Err())
		}
		return nil, fmt.Errorf("ai: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("ai: read response: %w", err)
	}

	var chat chatResponse
	decodeErr := json.Unmarshal(raw, &chat)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && chat.Error != nil {
			return nil, fmt.Errorf("ai: provider error (%s): %s", chat.Error.Type, chat.Error.Message)
		}
		return nil, fmt.Errorf("ai: provider returned HTTP %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("ai: decode response: %w", decodeErr)
	}
	if len(chat.Choices) == 0 {
		return nil, errors.New("ai: empty response")
	}

	content := extractJSON(chat.Choices[0].Message.Content)
	if content == "" {
		return nil, errors.New("ai: no JSON object in model output")
	}

	var payload schedulePayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("ai: parse model output: %w", err)
	}
	return &payload, nil
}

var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON strips markdown fences and returns the outermost object.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	return jsonObjectRe.FindString(text)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
