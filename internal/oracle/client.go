package oracle

// #region imports
import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// #endregion

// #region models

// Model identifies a hosted model on the scoring service.
type Model string

const (
	ModelGeminiFlash  Model = "google/gemini-flash"
	ModelGeminiPro    Model = "google/gemini-pro"
	ModelGPT4o        Model = "openai/gpt-4o"
	ModelClaude3Haiku Model = "anthropic/claude-3-haiku-20240307"
)

// #endregion

// #region config

const (
	defaultBaseURL        = "https://openrouter.ai/api"
	defaultPath           = "/v1/chat/completions"
	defaultMaxRetries     = 5
	defaultInitialBackoff = time.Second
	defaultRequestTimeout = 30 * time.Second
)

// ClientConfig configures the scoring client.
type ClientConfig struct {
	APIKey         string
	Model          Model
	BaseURL        string        // empty = OpenRouter
	MaxRetries     int           // <=0 = default 5
	InitialBackoff time.Duration // <=0 = 1s
	HTTPClient     *http.Client  // nil = timeout client
}

// #endregion

// #region client-struct

// Client calls a chat-completions API to classify and quantify reviews.
// A single prompt/response pair per call; retries with exponential backoff
// and jitter on rate limits and transport failures.
type Client struct {
	apiKey         string
	model          Model
	baseURL        string
	maxRetries     int
	initialBackoff time.Duration
	httpClient     *http.Client
}

// NewClient validates the config and returns a ready client.
// An empty API key is a construction error.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("oracle: api key cannot be empty")
	}
	if cfg.Model == "" {
		cfg.Model = ModelGeminiFlash
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = defaultInitialBackoff
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &Client{
		apiKey:         cfg.APIKey,
		model:          cfg.Model,
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		maxRetries:     cfg.MaxRetries,
		initialBackoff: cfg.InitialBackoff,
		httpClient:     cfg.HTTPClient,
	}, nil
}

// #endregion

// #region classify

// Classify labels a review as Good or Bad.
func (c *Client) Classify(ctx context.Context, text string) (Label, error) {
	resp, err := c.complete(ctx, fmt.Sprintf(classifyPrompt, text))
	if err != nil {
		return "", fmt.Errorf("classify: %w", err)
	}
	label := Label(resp)
	if label != LabelGood && label != LabelBad {
		return "", fmt.Errorf("classify: got %q: %w", resp, ErrInvalidLabel)
	}
	return label, nil
}

// #endregion

// #region quantify

// Quantify scores a review on the 1-100 scale.
func (c *Client) Quantify(ctx context.Context, text string) (int, error) {
	resp, err := c.complete(ctx, fmt.Sprintf(quantifyPrompt, text))
	if err != nil {
		return 0, fmt.Errorf("quantify: %w", err)
	}
	score, err := strconv.Atoi(resp)
	if err != nil {
		return 0, fmt.Errorf("quantify: parse %q: %w", resp, ErrInvalidScore)
	}
	if score < 1 || score > 100 {
		return 0, fmt.Errorf("quantify: score %d: %w", score, ErrInvalidScore)
	}
	return score, nil
}

// #endregion

// #region wire-types

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// #endregion

// #region complete

// complete runs the retry loop around one prompt. Rate limits (429) and
// transport errors back off and retry; other non-2xx statuses fail fast.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    string(c.model),
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	backoff := c.initialBackoff
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		text, retryable, err := c.once(ctx, body)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}

		log.Printf("[ORACLE] attempt %d/%d failed, retrying in %s: %v",
			attempt+1, c.maxRetries, backoff, err)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
		// Exponential backoff with jitter.
		backoff = time.Duration(float64(backoff) * 2 * (1 + rand.Float64()))
	}

	return "", fmt.Errorf("request failed after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *Client) once(ctx context.Context, body []byte) (text string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+defaultPath, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return "", true, errors.New("rate limited")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return "", false, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", false, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", false, errors.New("empty choices in response")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), false, nil
}

// #endregion
