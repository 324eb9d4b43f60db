// Package narrative talks to text-generation services that write free-form CV feedback.
package narrative

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Generator turns a prompt into generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

var (
	// ErrServiceUnavailable covers refused connections, bad statuses and empty responses.
	ErrServiceUnavailable = errors.New("narrative service unavailable")
	// ErrTimeout is returned when the caller's deadline expires during generation.
	ErrTimeout = errors.New("narrative service timed out")
)

// Error is a classified generation failure. errors.Is matches its Kind.
type Error struct {
	Kind    error
	Backend string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Backend, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Backend, e.Kind)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Classify wraps err as an *Error, sorting deadline and timeout failures into ErrTimeout
// and everything else into ErrServiceUnavailable. nil stays nil.
func Classify(backend string, err error) error {
	if err == nil {
		return nil
	}
	var ne *Error
	if errors.As(err, &ne) {
		return err
	}
	kind := ErrServiceUnavailable
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = ErrTimeout
	}
	return &Error{Kind: kind, Backend: backend, Err: err}
}

// StripFences removes a surrounding markdown code fence from model output.
func StripFences(s string) string {
	clean := strings.TrimSpace(s)
	if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
		if nl := strings.IndexAny(clean, "\r\n"); nl >= 0 && !strings.ContainsAny(clean[:nl], " \t") {
			clean = clean[nl:] // drop the language tag line
		}
		clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	}
	return strings.TrimSpace(clean)
}
