package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCategory is returned when a category is not one of Categories.
	ErrInvalidCategory = errors.New("invalid content category")

	// ErrInvalidParams is returned when the params variant does not match the
	// category or a numeric parameter is outside its range.
	ErrInvalidParams = errors.New("invalid category parameters")

	// ErrServiceUnavailable covers network, credential and provider failures.
	ErrServiceUnavailable = errors.New("language model service unavailable")

	// ErrEmptyResponse is returned when the provider answered without usable text.
	ErrEmptyResponse = errors.New("language model returned an empty response")

	// ErrInvalidConfig is returned when a client cannot be built from its settings.
	ErrInvalidConfig = errors.New("invalid llm configuration")
)

// GenerationError is the only error type an LLMClient returns. Kind is
// ErrServiceUnavailable or ErrEmptyResponse; Err keeps the provider cause.
type GenerationError struct {
	Kind     error
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Provider, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Provider, e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func unavailable(provider string, err error) error {
	return &GenerationError{Kind: ErrServiceUnavailable, Provider: provider, Err: err}
}

func emptyResponse(provider string, detail string) error {
	var cause error
	if detail != "" {
		cause = errors.New(detail)
	}
	return &GenerationError{Kind: ErrEmptyResponse, Provider: provider, Err: cause}
}
