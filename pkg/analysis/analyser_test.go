package analysis

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/gemini-analyzer/pkg/classifier"
	"github.com/menta2k/gemini-analyzer/pkg/types"
)

type fakeBackend struct {
	resp  *types.Response
	err   error
	calls int
	last  types.Request
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Generate(_ context.Context, req types.Request) (*types.Response, error) {
	f.calls++
	f.last = req
	return f.resp, f.err
}

func strPtr(s string) *string { return &s }

var testImage = types.Blob{MimeType: "image/jpeg", Data: []byte{0xff, 0xd8}}

func TestAnalyseBuildsVisionRequest(t *testing.T) {
	backend := &fakeBackend{resp: &types.Response{Text: strPtr("21 °C")}}
	a, err := New(backend, types.DefaultModelNames(), "key-123", nil)
	require.NoError(t, err)

	got, err := a.Analyse(context.Background(), testImage, "temperature?")
	require.NoError(t, err)
	assert.Equal(t, "21 °C", got)

	assert.Equal(t, 1, backend.calls, "exactly one request")
	assert.Equal(t, "gemini-pro-vision", backend.last.Model)
	assert.Equal(t, "key-123", backend.last.APIKey)
	require.Len(t, backend.last.Prompt.Parts, 2)
	assert.Equal(t, types.PartImage, backend.last.Prompt.Parts[0].Kind)
	assert.Equal(t, "temperature?", backend.last.Prompt.Parts[1].Text)
}

func TestAnalyseUsesConfiguredVisionModel(t *testing.T) {
	backend := &fakeBackend{resp: &types.Response{Text: strPtr("ok")}}
	a, err := New(backend, types.ModelNames{Text: "gemini-1.5-flash", Vision: "gemini-1.5-flash"}, "", nil)
	require.NoError(t, err)

	_, err = a.Analyse(context.Background(), testImage, "q")
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-flash", backend.last.Model)
}

func TestAnalyseRecoveredPaths(t *testing.T) {
	tests := []struct {
		name string
		resp *types.Response
		err  error
		want string
	}{
		{"success", &types.Response{Text: strPtr("answer")}, nil, "answer"},
		{"no text", &types.Response{}, nil, classifier.NoAnswer},
		{"stopped", nil, &types.ResponseStoppedError{FinishReason: "RECITATION"}, "Error Content generation stopped. Reason: RECITATION"},
		{"server", nil, &types.ServerError{StatusCode: 500, Message: "internal"}, "Error internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(&fakeBackend{resp: tt.resp, err: tt.err}, types.DefaultModelNames(), "k", nil)
			require.NoError(t, err)

			got, err := a.Analyse(context.Background(), testImage, "q")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyseRethrowsOtherFailures(t *testing.T) {
	cause := errors.New("tls handshake timeout")
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	a, err := New(&fakeBackend{err: cause}, types.DefaultModelNames(), "k", logger)
	require.NoError(t, err)

	got, err := a.Analyse(context.Background(), testImage, "q")
	assert.Empty(t, got)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, buf.String(), "general failure")
	assert.Contains(t, buf.String(), "request_id=")
}

func TestNewRequiresBackend(t *testing.T) {
	_, err := New(nil, types.DefaultModelNames(), "", nil)
	assert.Error(t, err)
}
