// Package geminianalyzer asks a multimodal model a fixed question about an image
// and keeps the latest answer in an observable cell.
//
// Basic usage:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		geminianalyzer "github.com/menta2k/gemini-analyzer"
//		"github.com/menta2k/gemini-analyzer/pkg/gemini"
//		"github.com/menta2k/gemini-analyzer/pkg/processing"
//		"github.com/menta2k/gemini-analyzer/pkg/types"
//	)
//
//	func main() {
//		backend, err := gemini.NewClient("", apiKey)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		ga, err := geminianalyzer.New(geminianalyzer.Options{
//			Backend: backend,
//			Models:  types.DefaultModelNames(),
//			Source:  processing.NewBundledSource(processing.NewProcessor(), processing.DefaultSourceOptions()),
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		ga.Answer().Subscribe(func(v string) { fmt.Println(v) })
//		ga.Trigger() // prints "loading...", then the answer
//		ga.Wait()
//	}
//
// The package consists of these components:
//
// 1. Processing (pkg/processing): loads the bundled or a user supplied image and encodes it
// 2. Prompt (pkg/prompt): builds the [image, question] prompt
// 3. Backends (pkg/gemini, pkg/ollama): submit one request to the remote model
// 4. Analysis (pkg/analysis): chooses the model by capability and classifies the outcome
// 5. Session (pkg/session): runs each trigger in the background and writes pkg/answer
//
// Stopped generations and server errors are shown as "Error ..." answers. Any other
// failure is passed to the session's error handler and the answer stays on
// "loading...".
package geminianalyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/menta2k/gemini-analyzer/internal/config"
	"github.com/menta2k/gemini-analyzer/pkg/analysis"
	"github.com/menta2k/gemini-analyzer/pkg/answer"
	"github.com/menta2k/gemini-analyzer/pkg/client"
	"github.com/menta2k/gemini-analyzer/pkg/gemini"
	"github.com/menta2k/gemini-analyzer/pkg/ollama"
	"github.com/menta2k/gemini-analyzer/pkg/processing"
	"github.com/menta2k/gemini-analyzer/pkg/prompt"
	"github.com/menta2k/gemini-analyzer/pkg/session"
	"github.com/menta2k/gemini-analyzer/pkg/types"
)

// Version of the gemini analyzer library
const Version = "1.0.0"

// Options wires the analyzer together. Question defaults to prompt.DefaultQuestion.
type Options struct {
	Backend      client.InferenceClient
	Models       types.ModelNames
	APIKey       string
	Source       *processing.Source
	Question     string
	Logger       *slog.Logger
	ErrorHandler session.ErrorHandler
}

// GeminiAnalyzer provides a high-level interface over the trigger flow
type GeminiAnalyzer struct {
	analyser *analysis.Analyser
	source   *processing.Source
	session  *session.Session
	question string
}

// New creates a GeminiAnalyzer
func New(opts Options) (*GeminiAnalyzer, error) {
	if opts.Source == nil {
		return nil, errors.New("image source is required")
	}
	if opts.Question == "" {
		opts.Question = prompt.DefaultQuestion
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	a, err := analysis.New(opts.Backend, opts.Models, opts.APIKey, opts.Logger)
	if err != nil {
		return nil, err
	}

	sessionOpts := []session.Option{session.WithLogger(opts.Logger)}
	if opts.ErrorHandler != nil {
		sessionOpts = append(sessionOpts, session.WithErrorHandler(opts.ErrorHandler))
	}

	return &GeminiAnalyzer{
		analyser: a,
		source:   opts.Source,
		session:  session.New(a, opts.Source, opts.Question, answer.NewCell(), sessionOpts...),
		question: opts.Question,
	}, nil
}

// NewFromConfig builds the backend and image source described by cfg
func NewFromConfig(cfg *config.Config, logger *slog.Logger, handler session.ErrorHandler) (*GeminiAnalyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	backend, err := NewBackend(cfg)
	if err != nil {
		return nil, err
	}

	p := processing.NewProcessor()
	source := processing.NewBundledSource(p, cfg.SourceOptions())
	if cfg.Image.Path != "" {
		source = processing.NewSource(p, cfg.Image.Path, cfg.SourceOptions())
	}

	return New(Options{
		Backend:      backend,
		Models:       cfg.ModelNames(),
		APIKey:       cfg.Gemini.APIKey,
		Source:       source,
		Question:     cfg.Question,
		Logger:       logger,
		ErrorHandler: handler,
	})
}

// NewBackend creates the inference client selected by cfg.Backend
func NewBackend(cfg *config.Config) (client.InferenceClient, error) {
	switch cfg.Backend {
	case config.BackendGemini:
		c, err := gemini.NewClient(cfg.Gemini.BaseURL, cfg.Gemini.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return c, nil
	case config.BackendOllama:
		c, err := ollama.NewClient(cfg.Ollama.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to create Ollama client: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
}

// Trigger shows "loading..." and starts one background request
func (ga *GeminiAnalyzer) Trigger() {
	ga.session.Trigger()
}

// Wait blocks until every triggered request has finished
func (ga *GeminiAnalyzer) Wait() {
	ga.session.Wait()
}

// Answer returns the cell holding the displayed answer
func (ga *GeminiAnalyzer) Answer() *answer.Cell {
	return ga.session.Answer()
}

// Analyse runs one request synchronously without touching the answer cell
func (ga *GeminiAnalyzer) Analyse(ctx context.Context) (string, error) {
	img, err := ga.source.Blob()
	if err != nil {
		return "", err
	}
	return ga.analyser.Analyse(ctx, img, ga.question)
}

// Source returns the image source
func (ga *GeminiAnalyzer) Source() *processing.Source {
	return ga.source
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
