// Package analysis asks a vision model a question about an image.
package analysis

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/menta2k/gemini-analyzer/pkg/classifier"
	"github.com/menta2k/gemini-analyzer/pkg/client"
	"github.com/menta2k/gemini-analyzer/pkg/prompt"
	"github.com/menta2k/gemini-analyzer/pkg/types"
)

// Analyser sends one prompt per call and classifies the outcome
type Analyser struct {
	backend client.InferenceClient
	models  types.ModelNames
	apiKey  string
	logger  *slog.Logger
}

// New creates an Analyser. A nil logger discards output.
func New(backend client.InferenceClient, models types.ModelNames, apiKey string, logger *slog.Logger) (*Analyser, error) {
	if backend == nil {
		return nil, errors.New("analysis: backend is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Analyser{
		backend: backend,
		models:  models,
		apiKey:  apiKey,
		logger:  logger,
	}, nil
}

// Analyse asks question about image and returns the text to display.
// Stopped generations and server failures come back as "Error ..." strings;
// every other failure is returned as an error.
func (a *Analyser) Analyse(ctx context.Context, image types.Blob, question string) (string, error) {
	p := prompt.ForImage(image, question)
	model := types.ModelFor(p)
	req := types.Request{
		Model:  a.models.Name(model),
		APIKey: a.apiKey,
		Prompt: p,
	}

	log := a.logger.With(
		"request_id", uuid.NewString(),
		"backend", a.backend.Name(),
		"model", req.Model,
	)
	log.Debug("generating content", "image_bytes", len(image.Data))

	resp, err := a.backend.Generate(ctx, req)
	outcome := types.OutcomeOf(resp, err)

	switch outcome.Kind {
	case types.OutcomeSuccess:
		text := ""
		if outcome.Text != nil {
			text = *outcome.Text
		}
		log.Debug("content generated", "text", text)
	case types.OutcomeStopped:
		log.Error("request was stopped during generation", "error", outcome.Err)
	case types.OutcomeServerFailure:
		log.Error("server responded with a non-success status", "error", outcome.Err)
	case types.OutcomeOtherFailure:
		log.Error("general failure", "error", outcome.Err)
	}

	return classifier.Classify(outcome)
}
