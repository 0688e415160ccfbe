package carousel

import (
	"errors"
	"fmt"
)

// Playback rejection categories. A MediaSurface reports a rejected play
// request with an error that wraps one of these; anything else is Unknown.
var (
	ErrPolicyBlocked     = errors.New("playback blocked by autoplay policy")
	ErrFormatUnsupported = errors.New("video format not supported")
	ErrSourceUnreadable  = errors.New("video file cannot be read")
	ErrLoadAborted       = errors.New("video playback was aborted")
)

// Outcome classifies the resolution of a play request.
type Outcome int

const (
	OutcomePlaying Outcome = iota
	OutcomePolicyBlocked
	OutcomeFormatUnsupported
	OutcomeSourceUnreadable
	OutcomeLoadAborted
	OutcomeUnknown
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlaying:
		return "playing"
	case OutcomePolicyBlocked:
		return "policy_blocked"
	case OutcomeFormatUnsupported:
		return "format_unsupported"
	case OutcomeSourceUnreadable:
		return "source_unreadable"
	case OutcomeLoadAborted:
		return "load_aborted"
	default:
		return "unknown"
	}
}

// Classify maps a play-request result onto an Outcome. A nil error means the
// clip started playing.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomePlaying
	case errors.Is(err, ErrPolicyBlocked):
		return OutcomePolicyBlocked
	case errors.Is(err, ErrFormatUnsupported):
		return OutcomeFormatUnsupported
	case errors.Is(err, ErrSourceUnreadable):
		return OutcomeSourceUnreadable
	case errors.Is(err, ErrLoadAborted):
		return OutcomeLoadAborted
	default:
		return OutcomeUnknown
	}
}

// PlaybackError is a play rejection reported by a browser surface, carrying
// the DOMException name it was raised with.
type PlaybackError struct {
	Name    string
	Message string
	kind    error
}

func (e *PlaybackError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Name, e.Message)
	}
	return e.Name
}

// Unwrap returns the matching category sentinel, or nil for unrecognised names.
func (e *PlaybackError) Unwrap() error {
	return e.kind
}

// ClassifyDOMError converts the DOMException name of a rejected
// HTMLMediaElement.play() promise into an error. An empty name means the
// promise resolved and yields nil.
func ClassifyDOMError(name, message string) error {
	if name == "" {
		return nil
	}
	pe := &PlaybackError{Name: name, Message: message}
	switch name {
	case "NotAllowedError":
		pe.kind = ErrPolicyBlocked
	case "NotSupportedError":
		pe.kind = ErrFormatUnsupported
	case "NotReadableError":
		pe.kind = ErrSourceUnreadable
	case "AbortError":
		pe.kind = ErrLoadAborted
	}
	return pe
}
