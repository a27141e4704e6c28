package client

import (
	"context"

	"github.com/menta2k/gemini-analyzer/pkg/types"
)

// InferenceClient submits one prompt to a remote model and waits for the single reply.
// Provider failures are reported as *types.ResponseStoppedError or *types.ServerError.
type InferenceClient interface {
	Generate(ctx context.Context, req types.Request) (*types.Response, error)
	Name() string
}
