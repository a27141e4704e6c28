package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/menta2k/gemini-analyzer/pkg/types"
)

// DefaultURL is where a local Ollama server listens
const DefaultURL = "http://localhost:11434"

// Client wraps the Ollama API client
type Client struct {
	client *api.Client
}

// NewClient creates a new Ollama client
func NewClient(ollamaURL string) (*Client, error) {
	if ollamaURL == "" {
		ollamaURL = DefaultURL
	}

	parsedURL, err := url.Parse(ollamaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid URL: %s", ollamaURL)
	}

	// Drop any path like /api/chat, the SDK appends its own
	baseURL := &url.URL{
		Scheme: parsedURL.Scheme,
		Host:   parsedURL.Host,
	}

	// http.DefaultClient has no timeout; the call waits for the server
	return &Client{client: api.NewClient(baseURL, http.DefaultClient)}, nil
}

// Name returns the backend name
func (c *Client) Name() string {
	return "ollama"
}

// Generate sends the prompt as a single non-streaming chat message
func (c *Client) Generate(ctx context.Context, req types.Request) (*types.Response, error) {
	if req.Model == "" {
		return nil, errors.New("ollama: model is required")
	}

	var images []api.ImageData
	for _, img := range req.Prompt.Images() {
		images = append(images, api.ImageData(img.Data))
	}

	streamFalse := false
	chatReq := &api.ChatRequest{
		Model: req.Model,
		Messages: []api.Message{
			{
				Role:    "user",
				Content: strings.Join(req.Prompt.Texts(), "\n"),
				Images:  images,
			},
		},
		Stream: &streamFalse,
	}

	var (
		content    string
		doneReason string
	)
	err := c.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
		content += resp.Message.Content
		if resp.Done {
			doneReason = resp.DoneReason
		}
		return nil
	})
	if err != nil {
		var statusErr api.StatusError
		if errors.As(err, &statusErr) {
			return nil, &types.ServerError{
				StatusCode: statusErr.StatusCode,
				Status:     statusErr.Status,
				Message:    statusErr.ErrorMessage,
			}
		}
		return nil, fmt.Errorf("ollama chat error: %w", err)
	}

	if doneReason != "" && doneReason != "stop" {
		return nil, &types.ResponseStoppedError{FinishReason: strings.ToUpper(doneReason)}
	}

	out := &types.Response{FinishReason: doneReason}
	if content != "" {
		out.Text = &content
	}
	return out, nil
}
