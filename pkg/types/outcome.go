package types

import "errors"

// OutcomeKind enumerates the ways a request can resolve
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeStopped
	OutcomeServerFailure
	OutcomeOtherFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeStopped:
		return "stopped"
	case OutcomeServerFailure:
		return "server_failure"
	case OutcomeOtherFailure:
		return "other_failure"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of one inference call.
// Text is set for OutcomeSuccess, Reason for the two provider failures and Err for
// every failure kind.
type Outcome struct {
	Kind   OutcomeKind
	Text   *string
	Reason string
	Err    error
}

// Success builds a successful outcome
func Success(text *string) Outcome {
	return Outcome{Kind: OutcomeSuccess, Text: text}
}

// Stopped builds a stopped-generation outcome
func Stopped(reason string) Outcome {
	return Outcome{Kind: OutcomeStopped, Reason: reason}
}

// ServerFailure builds a server failure outcome
func ServerFailure(reason string) Outcome {
	return Outcome{Kind: OutcomeServerFailure, Reason: reason}
}

// OtherFailure builds an unclassified failure outcome
func OtherFailure(err error) Outcome {
	return Outcome{Kind: OutcomeOtherFailure, Err: err}
}

// OutcomeOf turns a backend result into an Outcome
func OutcomeOf(resp *Response, err error) Outcome {
	if err == nil {
		if resp == nil {
			return Success(nil)
		}
		return Success(resp.Text)
	}

	var stopped *ResponseStoppedError
	if errors.As(err, &stopped) {
		o := Stopped(stopped.Error())
		o.Err = err
		return o
	}

	var server *ServerError
	if errors.As(err, &server) {
		o := ServerFailure(server.Error())
		o.Err = err
		return o
	}

	return OtherFailure(err)
}
