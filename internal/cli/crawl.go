package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
	"github.com/titanous/json5"

	crawlkit "github.com/mozhn/crawlkit-sdk"
)

// scrapeFlags are shared by scrape and extract.
type scrapeFlags struct {
	mainOnly        bool
	waitFor         string
	contentSelector string
	headers         map[string]string
	pageTimeout     time.Duration
}

func (f *scrapeFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.mainOnly, "main-only", false, "Keep only the main content of the page")
	cmd.Flags().StringVar(&f.waitFor, "wait-for", "", "CSS selector or delay (e.g. 2s, 1500) to wait for before capture")
	cmd.Flags().StringVar(&f.contentSelector, "content-selector", "", "CSS selector scoping the captured content")
	cmd.Flags().StringToStringVarP(&f.headers, "header", "H", nil, "Extra request header sent to the target (key=value, repeatable)")
	cmd.Flags().DurationVar(&f.pageTimeout, "page-timeout", 0, "Server-side page load timeout")
}

// options returns nil when no flag was set, so the request omits "options".
func (f *scrapeFlags) options() *crawlkit.ScrapeOptions {
	opts := crawlkit.ScrapeOptions{
		OnlyMainContent: f.mainOnly,
		ContentSelector: f.contentSelector,
		Headers:         f.headers,
		WaitFor:         parseWaitFor(f.waitFor),
		TimeoutMS:       int(f.pageTimeout.Milliseconds()),
	}
	if !opts.OnlyMainContent && opts.ContentSelector == "" && len(opts.Headers) == 0 &&
		opts.WaitFor == nil && opts.TimeoutMS == 0 {
		return nil
	}
	return &opts
}

// parseWaitFor reads a Go duration or a bare millisecond count as a delay,
// and anything else as a CSS selector.
func parseWaitFor(s string) *crawlkit.WaitFor {
	if s == "" {
		return nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		return crawlkit.WaitForDuration(d)
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return crawlkit.WaitForDuration(time.Duration(ms) * time.Millisecond)
	}
	return crawlkit.WaitForSelector(s)
}

func scrapeCmd(a *app) *cobra.Command {
	var (
		flags    scrapeFlags
		selector string
	)

	cmd := &cobra.Command{
		Use:   "scrape <url>",
		Short: "Scrape a page into markdown, HTML, metadata and links (1 credit)",
		Example: `  crawlkit scrape https://example.com
  crawlkit scrape https://example.com --main-only --wait-for "#content"
  crawlkit scrape https://news.ycombinator.com --select ".titleline > a" -o table`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			data, err := client.Scrape(cmd.Context(), crawlkit.ScrapeParams{
				URL:     args[0],
				Options: flags.options(),
			})
			if err != nil {
				return err
			}
			if selector == "" {
				return a.print(data)
			}
			sel, err := selectText(data.HTML, selector)
			if err != nil {
				return err
			}
			return a.print(sel)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&selector, "select", "", "Print only the text of elements matching this CSS selector")

	return cmd
}

// selectText returns the trimmed text of every element matching selector.
func selectText(html, selector string) (*selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse scraped HTML: %w", err)
	}
	sel := &selection{Selector: selector, Matches: []string{}}
	doc.Find(selector).Each(func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			sel.Matches = append(sel.Matches, text)
		}
	})
	return sel, nil
}

func extractCmd(a *app) *cobra.Command {
	var (
		flags      scrapeFlags
		schemaPath string
		prompt     string
	)

	cmd := &cobra.Command{
		Use:   "extract <url>",
		Short: "Extract structured data from a page with a JSON schema (5 credits)",
		Long: `Extract structured data from a page.

The schema file holds a JSON Schema describing the output. JSON5 is accepted,
so comments and trailing commas are fine.`,
		Example: `  crawlkit extract https://shop.example/item/1 --schema product.json5
  crawlkit extract https://blog.example --schema post.json --prompt "Only the latest post"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := loadSchema(a.env.ReadFile, schemaPath)
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}

			params := crawlkit.ExtractParams{URL: args[0], Schema: schema}
			if base := flags.options(); base != nil || prompt != "" {
				params.Options = &crawlkit.ExtractOptions{Prompt: prompt}
				if base != nil {
					params.Options.ScrapeOptions = *base
				}
			}

			data, err := client.Extract(cmd.Context(), params)
			if err != nil {
				return err
			}
			return a.print(data)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "Path to a JSON or JSON5 schema file (required)")
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Extra instructions for the extraction")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

// loadSchema reads a JSON5 schema file. The result must be a JSON object.
func loadSchema(read func(string) ([]byte, error), path string) (map[string]any, error) {
	data, err := read(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrSchemaFile, path, err)
	}
	var schema map[string]any
	if err := json5.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrSchemaFile, path, err)
	}
	if schema == nil {
		return nil, fmt.Errorf("%w %s: schema must be an object", ErrSchemaFile, path)
	}
	return schema, nil
}

func searchCmd(a *app) *cobra.Command {
	var (
		maxResults int
		timeRange  string
		region     string
		language   string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Run a web search (1 credit per page of results)",
		Example: `  crawlkit search golang generics
  crawlkit search "web scraping api" --max-results 20 --time-range week -o table`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := crawlkit.SearchOptions{
				MaxResults: maxResults,
				Region:     region,
				Language:   language,
			}
			if timeRange != "" {
				tr, err := crawlkit.ParseTimeRange(timeRange)
				if err != nil {
					return fmt.Errorf("%w: --time-range: %v", ErrInvalidFlag, err)
				}
				opts.TimeRange = tr
			}

			client, err := a.client()
			if err != nil {
				return err
			}

			params := crawlkit.SearchParams{Query: strings.Join(args, " ")}
			if opts != (crawlkit.SearchOptions{}) {
				params.Options = &opts
			}
			data, err := client.Search(cmd.Context(), params)
			if err != nil {
				return err
			}
			return a.print(data)
		},
	}

	cmd.Flags().IntVarP(&maxResults, "max-results", "n", 0, "Maximum number of results")
	cmd.Flags().StringVar(&timeRange, "time-range", "", "Restrict by age: day, week, month, year")
	cmd.Flags().StringVar(&region, "region", "", "Region code, e.g. us-en")
	cmd.Flags().StringVar(&language, "language", "", "Language code, e.g. en")

	return cmd
}

func screenshotCmd(a *app) *cobra.Command {
	var (
		width       int
		height      int
		waitFor     string
		pageTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:     "screenshot <url>",
		Short:   "Capture a full-page screenshot (1 credit)",
		Example: `  crawlkit screenshot https://example.com --width 1280 --height 800`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			params := crawlkit.ScreenshotParams{URL: args[0]}
			opts := crawlkit.ScreenshotOptions{
				Width:           width,
				Height:          height,
				WaitForSelector: waitFor,
				TimeoutMS:       int(pageTimeout.Milliseconds()),
			}
			if opts != (crawlkit.ScreenshotOptions{}) {
				params.Options = &opts
			}
			data, err := client.Screenshot(cmd.Context(), params)
			if err != nil {
				return err
			}
			return a.print(data)
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Viewport width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "Viewport height in pixels")
	cmd.Flags().StringVar(&waitFor, "wait-for-selector", "", "CSS selector to wait for before capture")
	cmd.Flags().DurationVar(&pageTimeout, "page-timeout", 0, "Server-side page load timeout")

	return cmd
}
