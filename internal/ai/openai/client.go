package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/spigell/hr-scout/internal/ai"
	"github.com/spigell/hr-scout/internal/talent"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	provider       = "openai"
)

// Client calls the OpenAI chat completions endpoint with a JSON response format.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *resty.Client
	logger  *zap.Logger
}

var _ ai.Completer = (*Client)(nil)

// New creates a completion client. Empty baseURL and model fall back to the OpenAI defaults.
func New(logger *zap.Logger, baseURL, apiKey, model string, timeout time.Duration) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	http := resty.New().SetRetryCount(0)
	if timeout > 0 {
		http.SetTimeout(timeout)
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		http:    http,
		logger:  logger,
	}, nil
}

type chatRequest struct {
	Model          string         `json:"model"`
	Temperature    float64        `json:"temperature"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
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
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends the conversation and returns the content of the first choice.
// A reply without choices yields an empty string.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	body := chatRequest{
		Model:       c.model,
		Temperature: ai.Temperature,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	url := c.baseURL + "/chat/completions"
	c.logger.Debug("make request", zap.String("url", url))

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(c.apiKey).
		SetBody(body).
		Post(url)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}

	if !resp.IsSuccess() {
		apiErr := &talent.APIError{Service: talent.ServiceOpenAI, StatusCode: resp.StatusCode()}
		var parsed errorResponse
		if err := json.Unmarshal(resp.Body(), &parsed); err == nil && parsed.Error != nil {
			apiErr.Message = parsed.Error.Message
		}
		return "", apiErr
	}

	var chat chatResponse
	if err := json.Unmarshal(resp.Body(), &chat); err != nil {
		return "", fmt.Errorf("parse completion response: %w", err)
	}

	if len(chat.Choices) == 0 {
		return "", nil
	}
	return chat.Choices[0].Message.Content, nil
}

func (c *Client) Provider() string { return provider }

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}
