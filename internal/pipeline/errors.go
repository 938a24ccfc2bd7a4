package pipeline

import (
	"errors"

	"github.com/mkravets/voicehire/internal/intent"
)

var (
	// ErrTimeout is surfaced when a run exceeds the wall-clock budget.
	ErrTimeout = errors.New("command timed out")

	// ErrSuperseded is returned for a run whose result arrived after a newer
	// transcript started. The caller must discard it silently.
	ErrSuperseded = errors.New("superseded by a newer command")

	// ErrUnrecognizedCommand is surfaced when neither the classifier nor the
	// keyword last resort could make sense of the transcript.
	ErrUnrecognizedCommand = intent.ErrUnrecognized

	// ErrEmptyTranscript rejects blank input before any work starts.
	ErrEmptyTranscript = errors.New("transcript is empty")
)
