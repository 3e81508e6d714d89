package model

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrExtraction    = errors.New("transcript extraction failed")
	ErrSummarization = errors.New("summarization failed")
)

const (
	MsgMissingInput  = "Please enter your Groq API Key and YouTube Video URL."
	MsgInvalidURL    = "Please enter a valid YouTube Video URL."
	MsgNoSummaryBase = "Could not generate a summary."
)

// FlowError is what the user gets to see. Kind is one of the Err* values above,
// Message is safe to display and Err is the cause, if any.
type FlowError struct {
	Kind    error
	Message string
	Err     error
}

func NewValidationError(msg string) *FlowError {
	return &FlowError{Kind: ErrValidation, Message: msg}
}

func NewExtractionError(err error) *FlowError {
	return &FlowError{Kind: ErrExtraction, Message: MsgInvalidURL, Err: err}
}

// NewSummarizationError includes the cause in the message.
func NewSummarizationError(err error) *FlowError {
	msg := MsgNoSummaryBase
	if err != nil {
		msg = fmt.Sprintf("%s %s", MsgNoSummaryBase, err.Error())
	}
	return &FlowError{Kind: ErrSummarization, Message: msg, Err: err}
}

func (e *FlowError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *FlowError) Is(target error) bool {
	return target == e.Kind
}

func (e *FlowError) Unwrap() error {
	return e.Err
}

// AsFlowError returns err as a FlowError, using fallback as kind when err is
// of another type.
func AsFlowError(err error, fallback error) *FlowError {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe
	}
	switch fallback {
	case ErrExtraction:
		return NewExtractionError(err)
	case ErrSummarization:
		return NewSummarizationError(err)
	default:
		return &FlowError{Kind: fallback, Message: err.Error(), Err: err}
	}
}
