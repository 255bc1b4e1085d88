package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/jedib0t/go-pretty/v6/table"

	crawlkit "github.com/mozhn/crawlkit-sdk"
)

type outputFormat string

const (
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
	formatTable outputFormat = "table"
)

const maxCellWidth = 60

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(s)); f {
	case formatJSON, formatYAML, formatTable:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (want json, yaml or table)", ErrUnsupportedOutput, s)
}

// writeOutput renders v. Table output is only defined for list results;
// anything else falls back to YAML.
func writeOutput(w io.Writer, format outputFormat, v any) error {
	switch format {
	case formatTable:
		if header, rows, ok := tableFor(v); ok {
			renderTable(w, header, rows)
			return nil
		}
		return writeYAML(w, v)
	case formatYAML:
		return writeYAML(w, v)
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}

// writeYAML goes through JSON so field names match the API payloads.
func writeYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	out, err := yaml.JSONToYAML(data)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func renderTable(w io.Writer, header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// selection is the text of the elements matched by scrape --select.
type selection struct {
	Selector string   `json:"selector"`
	Matches  []string `json:"matches"`
}

func tableFor(v any) (table.Row, []table.Row, bool) {
	switch d := v.(type) {
	case *crawlkit.SearchData:
		rows := make([]table.Row, 0, len(d.Results))
		for _, r := range d.Results {
			rows = append(rows, table.Row{r.Position, truncate(r.Title), r.URL})
		}
		return table.Row{"#", "Title", "URL"}, rows, true

	case *crawlkit.PlayStoreReviewsData:
		rows := make([]table.Row, 0, len(d.Reviews))
		for _, r := range d.Reviews {
			rows = append(rows, table.Row{r.Username, r.Rating, r.ThumbsUp, truncate(r.Text)})
		}
		return table.Row{"User", "Rating", "Thumbs up", "Review"}, rows, true

	case *crawlkit.AppStoreReviewsData:
		rows := make([]table.Row, 0, len(d.Reviews))
		for _, r := range d.Reviews {
			rows = append(rows, table.Row{r.Username, r.Rating, truncate(r.Title), truncate(r.Text)})
		}
		return table.Row{"User", "Rating", "Title", "Review"}, rows, true

	case *crawlkit.TikTokPostsData:
		rows := make([]table.Row, 0, len(d.Posts))
		for _, p := range d.Posts {
			var plays, likes int64
			if p.Stats != nil {
				plays, likes = p.Stats.Plays, p.Stats.Likes
			}
			rows = append(rows, table.Row{p.ID, p.MediaType, plays, likes, truncate(p.Description)})
		}
		return table.Row{"ID", "Type", "Plays", "Likes", "Description"}, rows, true

	case *crawlkit.LinkedInPersonData:
		rows := make([]table.Row, 0, len(d.Persons)+len(d.Failed))
		for _, p := range d.Persons {
			rows = append(rows, table.Row{p.URL, "ok"})
		}
		for _, u := range d.Failed {
			rows = append(rows, table.Row{u, "failed"})
		}
		return table.Row{"URL", "Status"}, rows, true

	case *selection:
		rows := make([]table.Row, 0, len(d.Matches))
		for i, m := range d.Matches {
			rows = append(rows, table.Row{i + 1, truncate(m)})
		}
		return table.Row{"#", d.Selector}, rows, true
	}
	return nil, nil, false
}

func truncate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= maxCellWidth {
		return s
	}
	return string(r[:maxCellWidth-1]) + "…"
}
