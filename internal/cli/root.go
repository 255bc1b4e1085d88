package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	crawlkit "github.com/mozhn/crawlkit-sdk"
)

// app carries the global flags shared by every subcommand.
type app struct {
	env     *Env
	version string

	output  string
	timeout time.Duration
	baseURL string
	verbose bool
}

// NewRootCmd creates the crawlkit root command with all subcommands.
// The env parameter provides injectable dependencies for testing.
func NewRootCmd(env *Env, version string) *cobra.Command {
	a := &app{env: env, version: version}

	cmd := &cobra.Command{
		Use:   "crawlkit",
		Short: "Scrape pages, extract data and query social platforms with the CrawlKit API",
		Long: `crawlkit is a command-line client for the CrawlKit web scraping API.

The API key is read from CRAWLKIT_API_KEY (a .env file in the working
directory is loaded first). Results are written to stdout as JSON by default.`,
		Version: version,
		// Silence Cobra's default error/usage printing; main handles it.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := parseOutputFormat(a.output)
			return err
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.output, "output", "o", string(formatJSON), "Output format: json, yaml, table")
	flags.DurationVar(&a.timeout, "timeout", 0, "Request timeout (overrides CRAWLKIT_TIMEOUT)")
	flags.StringVar(&a.baseURL, "base-url", "", "API base URL (overrides CRAWLKIT_BASE_URL)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Log each API call to stderr")

	cmd.AddCommand(
		scrapeCmd(a),
		extractCmd(a),
		searchCmd(a),
		screenshotCmd(a),
		linkedinCmd(a),
		instagramCmd(a),
		tiktokCmd(a),
		playStoreCmd(a),
		appStoreCmd(a),
		versionCmd(a),
	)

	return cmd
}

// config loads the environment configuration and applies flag overrides.
func (a *app) config() (Config, error) {
	cfg, err := a.env.LoadConfig()
	if err != nil {
		return Config{}, err
	}
	if a.baseURL != "" {
		cfg.BaseURL = a.baseURL
	}
	if a.timeout > 0 {
		cfg.Timeout = a.timeout
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// client builds an SDK client from the resolved configuration.
func (a *app) client() (*crawlkit.Client, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	if a.env.NewLogger != nil {
		logger, err = a.env.NewLogger(cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: log level: %v", ErrInvalidConfig, err)
		}
	}

	opts := []crawlkit.Option{
		crawlkit.WithBaseURL(cfg.BaseURL),
		crawlkit.WithTimeout(cfg.Timeout),
		crawlkit.WithLogger(logger),
		crawlkit.WithUserAgent(fmt.Sprintf("crawlkit-cli/%s crawlkit-go/%s", a.version, crawlkit.Version)),
	}
	opts = append(opts, a.env.ClientOptions...)

	return crawlkit.New(cfg.APIKey, opts...)
}

// print writes v to stdout in the selected format.
func (a *app) print(v any) error {
	format, err := parseOutputFormat(a.output)
	if err != nil {
		return err
	}
	return writeOutput(a.env.Stdout, format, v)
}

func versionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI and SDK versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(a.env.Stdout, "crawlkit %s (sdk %s)\n", a.version, crawlkit.Version)
			return err
		},
	}
}
