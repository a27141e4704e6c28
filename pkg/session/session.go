// Package session runs the trigger flow: show a placeholder, ask the model in the
// background, then show the answer.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/menta2k/gemini-analyzer/pkg/answer"
	"github.com/menta2k/gemini-analyzer/pkg/types"
)

// Analyser answers a question about an image
type Analyser interface {
	Analyse(ctx context.Context, image types.Blob, question string) (string, error)
}

// ImageSource supplies the image to analyse
type ImageSource interface {
	Blob() (types.Blob, error)
}

// ErrorHandler receives failures that were not turned into an answer
type ErrorHandler func(err error)

// Option configures a Session
type Option func(*Session)

// WithErrorHandler replaces the default handler, which logs and discards
func WithErrorHandler(h ErrorHandler) Option {
	return func(s *Session) {
		if h != nil {
			s.onError = h
		}
	}
}

// WithLogger sets the logger used by the default error handler
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// Session wires an analyser to the answer cell.
// Every Trigger starts an independent task; tasks are never cancelled and the
// last one to finish decides what the cell shows.
type Session struct {
	analyser Analyser
	source   ImageSource
	question string
	sink     *answer.Cell
	logger   *slog.Logger
	onError  ErrorHandler
	tasks    sync.WaitGroup
}

// New creates a Session
func New(analyser Analyser, source ImageSource, question string, sink *answer.Cell, opts ...Option) *Session {
	s := &Session{
		analyser: analyser,
		source:   source,
		question: question,
		sink:     sink,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.onError == nil {
		s.onError = func(err error) {
			s.logger.Error("analysis task failed", "error", err)
		}
	}
	return s
}

// Answer returns the cell the session writes to
func (s *Session) Answer() *answer.Cell {
	return s.sink
}

// Trigger shows the loading placeholder and starts one background request.
// It returns without waiting for the request.
func (s *Session) Trigger() {
	s.sink.Set(answer.Loading)

	s.tasks.Add(1)
	go func() {
		defer s.tasks.Done()
		defer func() {
			if r := recover(); r != nil {
				s.onError(fmt.Errorf("analysis task panicked: %v", r))
			}
		}()

		text, err := s.run()
		if err != nil {
			// The cell keeps showing the placeholder
			s.onError(err)
			return
		}
		s.sink.Set(text)
	}()
}

func (s *Session) run() (string, error) {
	img, err := s.source.Blob()
	if err != nil {
		return "", err
	}
	return s.analyser.Analyse(context.Background(), img, s.question)
}

// Wait blocks until every started task has finished
func (s *Session) Wait() {
	s.tasks.Wait()
}
