// Package classifier maps inference outcomes to the text shown to the user.
package classifier

import (
	"fmt"

	"github.com/menta2k/gemini-analyzer/pkg/types"
)

// NoAnswer is shown when the model succeeded without returning text
const NoAnswer = "No answer."

// ErrorPrefix starts every recovered provider error
const ErrorPrefix = "Error "

// Classify returns the display string for an outcome.
// Unclassified failures are returned as errors and produce no display string.
func Classify(o types.Outcome) (string, error) {
	switch o.Kind {
	case types.OutcomeSuccess:
		if o.Text == nil || *o.Text == "" {
			return NoAnswer, nil
		}
		return *o.Text, nil
	case types.OutcomeStopped:
		return ErrorPrefix + o.Reason, nil
	case types.OutcomeServerFailure:
		return ErrorPrefix + o.Reason, nil
	case types.OutcomeOtherFailure:
		if o.Err == nil {
			return "", fmt.Errorf("unclassified inference failure")
		}
		return "", o.Err
	default:
		return "", fmt.Errorf("unknown outcome kind %d", int(o.Kind))
	}
}
