package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/changelog-check/internal/errors"
)

// Exit codes for the changelog-check CLI
// These codes let CI pipelines tell policy failures from setup problems
const (
	// ExitSuccess indicates the diff satisfies the changelog policy
	ExitSuccess = 0

	// ExitValidationFailed indicates policy violations were found.
	// Runtime failures (e.g. git errors) also use this code.
	ExitValidationFailed = 1

	// ExitInvalidArguments indicates invalid command arguments or configuration
	ExitInvalidArguments = 3

	// ExitInvalidInput indicates the diff or pull request file could not be parsed
	ExitInvalidInput = 6
)

// ExitError carries a process exit code through cobra's error return.
// It is never printed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError creates an error that exits with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument, clierrors.Configuration:
			return ExitInvalidArguments
		case clierrors.Input:
			return ExitInvalidInput
		}
	}
	return ExitValidationFailed
}
