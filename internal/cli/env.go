package cli

import (
	"io"
	"os"

	"go.uber.org/zap"

	crawlkit "github.com/mozhn/crawlkit-sdk"
	"github.com/mozhn/crawlkit-sdk/internal/logging"
)

// Env holds injectable dependencies for CLI commands.
// Tests override fields to run commands without a network or real environment.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer

	// LoadConfig reads the configuration before flag overrides.
	LoadConfig func() (Config, error)

	// ReadFile reads schema files for the extract command.
	ReadFile func(name string) ([]byte, error)

	// NewLogger builds the logger handed to the SDK client.
	NewLogger func(cfg Config) (*zap.Logger, error)

	// ClientOptions are appended to the options derived from Config.
	ClientOptions []crawlkit.Option
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithConfigLoader sets the configuration loader.
func WithConfigLoader(load func() (Config, error)) EnvOption {
	return func(e *Env) {
		e.LoadConfig = load
	}
}

// WithReadFile sets the file reader.
func WithReadFile(read func(string) ([]byte, error)) EnvOption {
	return func(e *Env) {
		e.ReadFile = read
	}
}

// WithClientOptions appends SDK client options.
func WithClientOptions(opts ...crawlkit.Option) EnvOption {
	return func(e *Env) {
		e.ClientOptions = append(e.ClientOptions, opts...)
	}
}

// DefaultEnv returns an Env wired to the process environment.
func DefaultEnv() *Env {
	return &Env{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		LoadConfig: LoadConfig,
		ReadFile:   os.ReadFile,
		NewLogger:  newLogger,
	}
}

// NewEnv returns DefaultEnv with the given options applied.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

func newLogger(cfg Config) (*zap.Logger, error) {
	return logging.New(logging.Config{
		Level:       cfg.LogLevel,
		Development: cfg.LogDev,
		OutputPaths: []string{"stderr"},
	})
}
