// ABOUTME: Ollama-backed feedback generator using the /api/generate endpoint.
// ABOUTME: Applies a per-call timeout and retries, mapping failures to sentinel errors.
package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harperreed/coach/internal/models"
)

const (
	DefaultEndpoint = "http://localhost:11434"
	DefaultModel    = "llama3.2"
	DefaultTimeout  = 20 * time.Second
)

const systemPrompt = `You are a concise strength coach. The lifter trains with a spine-sparing
program and progressive overload. Given the session below, write two or three
short sentences of feedback: what went well, what to watch, and what to aim for
next time. Do not use markdown.`

// OllamaConfig configures the Ollama client.
type OllamaConfig struct {
	Endpoint   string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// DefaultOllamaConfig returns settings for a local Ollama install.
func DefaultOllamaConfig() OllamaConfig {
	return OllamaConfig{
		Endpoint:   DefaultEndpoint,
		Model:      DefaultModel,
		Timeout:    DefaultTimeout,
		MaxRetries: 1,
	}
}

// OllamaClient generates feedback with a local language model.
type OllamaClient struct {
	cfg    OllamaConfig
	http   *http.Client
	logger *log.Logger
}

// NewOllamaClient creates a client. A nil logger discards output.
func NewOllamaClient(cfg OllamaConfig, logger *log.Logger) *OllamaClient {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &OllamaClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		logger: logger,
	}
}

type ollamaRequest struct {
	Model  string `json:"model"`
	System string `json:"system,omitempty"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

// Generate asks the model for feedback on session.
func (c *OllamaClient) Generate(ctx context.Context, session models.WorkoutSession, history []models.WorkoutSession) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body := ollamaRequest{
		Model:  c.cfg.Model,
		System: systemPrompt,
		Prompt: buildPrompt(session, history),
		Stream: false,
	}

	start := time.Now()
	var lastErr error
	attempts := 1 + c.cfg.MaxRetries
	for i := 0; i < attempts; i++ {
		resp, err := c.doRequest(ctx, body)
		if err == nil {
			text := strings.TrimSpace(resp.Response)
			if text == "" {
				lastErr = ErrEmptyResponse
				continue
			}
			c.logger.Debug("feedback generated", "session", session.ID, "model", resp.Model, "latency", time.Since(start))
			return text, nil
		}
		lastErr = err
		c.logger.Debug("feedback attempt failed", "session", session.ID, "attempt", i+1, "err", err)

		if ctx.Err() != nil {
			break
		}
	}

	if ctx.Err() != nil {
		return "", ErrTimeout
	}
	if isConnectionError(lastErr) {
		return "", ErrUnavailable
	}
	return "", fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
}

// Available checks whether the Ollama server answers.
func (c *OllamaClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Close drops idle keep-alive connections.
func (c *OllamaClient) Close() {
	c.http.CloseIdleConnections()
}

func (c *OllamaClient) doRequest(ctx context.Context, body ollamaRequest) (*ollamaResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+"/api/generate", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp ollamaResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &resp, nil
}

// buildPrompt renders the session and next recommendations as plain text.
func buildPrompt(session models.WorkoutSession, history []models.WorkoutSession) string {
	s := summarize(session, history)

	var b strings.Builder
	fmt.Fprintf(&b, "Routine %s, %s session on %s.\n", session.RoutineID, session.TimeOfDay, session.Date.Format("Mon Jan 2"))
	fmt.Fprintf(&b, "Completed %d of %d sets. Total volume %s.\n", s.completed, s.total, formatVolume(s.volume))
	for _, l := range session.Logs {
		if l.Skipped {
			fmt.Fprintf(&b, "%s: skipped\n", l.ExerciseName)
			continue
		}
		parts := make([]string, 0, len(l.Sets))
		for _, set := range l.Sets {
			p := fmt.Sprintf("%sx%s", formatWeight(set.Weight), set.Reps)
			if set.IsDropSet {
				p += " (drop)"
			}
			parts = append(parts, p)
		}
		fmt.Fprintf(&b, "%s: %s\n", l.ExerciseName, strings.Join(parts, ", "))
	}
	if len(s.next) > 0 {
		b.WriteString("Next session:\n")
		b.WriteString(strings.Join(s.next, "\n"))
	}
	return b.String()
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
