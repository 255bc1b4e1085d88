package cli

import (
	"context"
	"errors"
	"strings"

	crawlkit "github.com/mozhn/crawlkit-sdk"
)

// Process exit codes.
const (
	ExitOK         = 0
	ExitGeneral    = 1
	ExitUsage      = 2
	ExitAuth       = 3
	ExitValidation = 4
	ExitCredits    = 5
	ExitRetryable  = 6
	ExitInterrupt  = 130
)

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	// API errors carry server text, which must not be matched as cobra output.
	var ckErr *crawlkit.Error
	if errors.As(err, &ckErr) {
		return apiExitCode(ckErr)
	}

	if isCobraUsageError(err) || errors.Is(err, ErrUnsupportedOutput) || errors.Is(err, ErrInvalidFlag) {
		return ExitUsage
	}

	if errors.Is(err, ErrInvalidConfig) || errors.Is(err, crawlkit.ErrMissingAPIKey) ||
		errors.Is(err, crawlkit.ErrInvalidAPIKey) {
		return ExitAuth
	}

	if errors.Is(err, ErrSchemaFile) {
		return ExitValidation
	}

	return ExitGeneral
}

func apiExitCode(err *crawlkit.Error) int {
	switch err.Kind {
	case crawlkit.KindAuthentication:
		return ExitAuth
	case crawlkit.KindValidation, crawlkit.KindNotFound:
		return ExitValidation
	case crawlkit.KindInsufficientCredits:
		return ExitCredits
	}
	if err.Retryable() {
		return ExitRetryable
	}
	return ExitGeneral
}

// Cobra does not expose typed errors for flag and argument parsing.
var cobraUsageErrorPatterns = []string{
	"required flag",
	"unknown flag",
	"unknown shorthand",
	"unknown command",
	"flag needs an argument",
	"invalid argument",
	"accepts ",
	"requires at least",
	"requires at most",
}

func isCobraUsageError(err error) bool {
	msg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
