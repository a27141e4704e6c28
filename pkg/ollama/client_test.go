package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/gemini-analyzer/pkg/prompt"
	"github.com/menta2k/gemini-analyzer/pkg/types"
)

func chatServer(t *testing.T, status int, body string, inspect func(api.ChatRequest)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		if inspect != nil {
			var req api.ChatRequest
			require.NoError(t, json.Unmarshal(raw, &req))
			inspect(req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body+"\n")
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL + "/api/chat")
	require.NoError(t, err)
	return c
}

func visionRequest() types.Request {
	return types.Request{
		Model:  "llava",
		Prompt: prompt.ForImage(types.Blob{MimeType: "image/jpeg", Data: []byte("img")}, "describe"),
	}
}

func TestGenerate(t *testing.T) {
	var got api.ChatRequest
	c := chatServer(t, http.StatusOK,
		`{"model":"llava","message":{"role":"assistant","content":"a plug"},"done":true,"done_reason":"stop"}`,
		func(r api.ChatRequest) { got = r })

	resp, err := c.Generate(context.Background(), visionRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.Text)
	assert.Equal(t, "a plug", *resp.Text)

	assert.Equal(t, "llava", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "describe", got.Messages[0].Content)
	require.Len(t, got.Messages[0].Images, 1)
	assert.Equal(t, []byte("img"), []byte(got.Messages[0].Images[0]))
}

func TestGenerateEmptyContent(t *testing.T) {
	c := chatServer(t, http.StatusOK,
		`{"model":"llava","message":{"role":"assistant","content":""},"done":true,"done_reason":"stop"}`, nil)

	resp, err := c.Generate(context.Background(), visionRequest())
	require.NoError(t, err)
	assert.Nil(t, resp.Text)
}

func TestGenerateStoppedByLength(t *testing.T) {
	c := chatServer(t, http.StatusOK,
		`{"model":"llava","message":{"role":"assistant","content":"partial"},"done":true,"done_reason":"length"}`, nil)

	_, err := c.Generate(context.Background(), visionRequest())
	var stopped *types.ResponseStoppedError
	require.True(t, errors.As(err, &stopped))
	assert.Equal(t, "LENGTH", stopped.FinishReason)
}

func TestGenerateServerError(t *testing.T) {
	c := chatServer(t, http.StatusInternalServerError, `{}`, nil)

	_, err := c.Generate(context.Background(), visionRequest())
	var se *types.ServerError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, types.OutcomeServerFailure, types.OutcomeOf(nil, err).Kind)
}

func TestNewClient(t *testing.T) {
	c, err := NewClient("")
	require.NoError(t, err)
	assert.Equal(t, "ollama", c.Name())

	_, err = NewClient("not a url")
	assert.Error(t, err)
}
