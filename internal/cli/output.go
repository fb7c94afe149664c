package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitInvalidInput = 1 // at least one notation was rejected
	ExitCommandError = 2 // bad flags, config or I/O
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Errors that are not an
// ExitError map to ExitCommandError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// Outcome is the per-input record printed by decode and validate.
type Outcome struct {
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	Valid  *bool  `json:"valid,omitempty"`
	Size   *int   `json:"size,omitempty"`
	Error  string `json:"error,omitempty"`
}

func writeOutcomes(w io.Writer, format string, outcomes []Outcome, text func(Outcome) string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(outcomes)
	}

	for _, o := range outcomes {
		if _, err := fmt.Fprintln(w, text(o)); err != nil {
			return err
		}
	}
	return nil
}
