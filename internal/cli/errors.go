package cli

import "errors"

// CLI-specific sentinel errors.
// These are configuration and usage errors that do not come from the API.

var (
	// ErrInvalidConfig indicates the environment configuration failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedOutput indicates an unknown --output format.
	ErrUnsupportedOutput = errors.New("unsupported output format")

	// ErrInvalidFlag indicates a flag value could not be parsed.
	ErrInvalidFlag = errors.New("invalid flag value")

	// ErrSchemaFile indicates the extraction schema file could not be read or parsed.
	ErrSchemaFile = errors.New("cannot load schema file")
)
