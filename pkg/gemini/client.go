package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/menta2k/gemini-analyzer/pkg/types"
)

// DefaultBaseURL is the public Generative Language API endpoint
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const finishReasonStop = "STOP"

// Client calls the Gemini generateContent method over REST
type Client struct {
	baseURL string
	apiKey  string
	client  *resty.Client
}

// NewClient creates a Gemini client. An empty baseURL selects DefaultBaseURL.
// The key in a request takes precedence over apiKey.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("invalid base URL: %s", baseURL)
	}

	// No retries and no client timeout: one request, wait for its own completion.
	client := resty.New()
	client.SetRetryCount(0)

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}, nil
}

// Name returns the backend name
func (c *Client) Name() string {
	return "gemini"
}

// Generate sends exactly one generateContent request
func (c *Client) Generate(ctx context.Context, req types.Request) (*types.Response, error) {
	if req.Model == "" {
		return nil, errors.New("gemini: model is required")
	}
	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = c.apiKey
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", apiKey).
		SetBody(buildRequest(req.Prompt)).
		Post(c.baseURL + "/models/" + req.Model + ":generateContent")
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, serverError(resp)
	}

	var body generateContentResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to parse gemini response: %w", err)
	}

	return parseResponse(body)
}

func buildRequest(p types.Prompt) generateContentRequest {
	parts := make([]part, 0, len(p.Parts))
	for _, pt := range p.Parts {
		switch pt.Kind {
		case types.PartImage:
			if pt.Image == nil {
				continue
			}
			parts = append(parts, part{InlineData: &inlineData{
				MimeType: pt.Image.MimeType,
				Data:     pt.Image.Data,
			}})
		case types.PartText:
			text := pt.Text
			parts = append(parts, part{Text: &text})
		}
	}
	return generateContentRequest{
		Contents: []content{{Role: "user", Parts: parts}},
	}
}

func parseResponse(body generateContentResponse) (*types.Response, error) {
	if len(body.Candidates) == 0 && body.PromptFeedback == nil {
		return nil, errors.New("gemini response contained no candidates")
	}
	if body.PromptFeedback != nil && body.PromptFeedback.BlockReason != "" {
		return nil, &types.PromptBlockedError{BlockReason: body.PromptFeedback.BlockReason}
	}
	for _, cand := range body.Candidates {
		if cand.FinishReason != "" && cand.FinishReason != finishReasonStop {
			return nil, &types.ResponseStoppedError{FinishReason: cand.FinishReason}
		}
	}

	out := &types.Response{}
	if len(body.Candidates) == 0 {
		return out, nil
	}

	first := body.Candidates[0]
	out.FinishReason = first.FinishReason
	if first.Content == nil {
		return out, nil
	}

	var texts []string
	for _, pt := range first.Content.Parts {
		if pt.Text != nil {
			texts = append(texts, *pt.Text)
		}
	}
	if len(texts) > 0 {
		text := strings.Join(texts, " ")
		out.Text = &text
	}
	return out, nil
}

func serverError(resp *resty.Response) error {
	se := &types.ServerError{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
	}
	if se.Status == "" {
		se.Status = fmt.Sprintf("%d %s", resp.StatusCode(), http.StatusText(resp.StatusCode()))
	}

	var apiErr errorResponse
	if err := json.Unmarshal(resp.Body(), &apiErr); err == nil && apiErr.Error.Message != "" {
		se.Message = apiErr.Error.Message
	} else if raw := strings.TrimSpace(resp.String()); raw != "" {
		se.Message = raw
	}
	return se
}
