package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	crawlkit "github.com/mozhn/crawlkit-sdk"
)

func searchFixture() *crawlkit.SearchData {
	return &crawlkit.SearchData{
		Query:        "golang",
		TotalResults: 2,
		Results: []crawlkit.SearchResult{
			{Position: 1, Title: "The Go Programming Language", URL: "https://go.dev"},
			{Position: 2, Title: "Go by Example", URL: "https://gobyexample.com"},
		},
		Credits: crawlkit.Credits{CreditsUsed: 1, CreditsRemaining: 99},
	}
}

func TestParseOutputFormat(t *testing.T) {
	for _, in := range []string{"json", "yaml", "table", "JSON"} {
		f, err := parseOutputFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, outputFormat(strings.ToLower(in)), f)
	}

	_, err := parseOutputFormat("xml")
	require.ErrorIs(t, err, ErrUnsupportedOutput)
}

func TestWriteOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeOutput(&buf, formatJSON, searchFixture()))

	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))
	assert.Contains(t, buf.String(), `"creditsRemaining": 99`)
	assert.Contains(t, buf.String(), `"url": "https://go.dev"`)
}

func TestWriteOutput_YAMLUsesJSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeOutput(&buf, formatYAML, searchFixture()))

	out := buf.String()
	assert.Contains(t, out, "query: golang")
	assert.Contains(t, out, "totalResults: 2")
	assert.Contains(t, out, "creditsRemaining: 99")
	assert.NotContains(t, out, "TotalResults")
}

func TestWriteOutput_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeOutput(&buf, formatTable, searchFixture()))

	out := buf.String()
	assert.Contains(t, out, "The Go Programming Language")
	assert.Contains(t, out, "https://gobyexample.com")
	assert.NotContains(t, out, "creditsRemaining")
}

func TestWriteOutput_TableFallsBackToYAML(t *testing.T) {
	var buf bytes.Buffer
	data := &crawlkit.ScreenshotData{URL: "https://cdn.test/shot.png", Width: 1280, Height: 800}
	require.NoError(t, writeOutput(&buf, formatTable, data))

	assert.Contains(t, buf.String(), "https://cdn.test/shot.png")
	assert.Contains(t, buf.String(), "width: 1280")
}

func TestTableFor(t *testing.T) {
	plays := &crawlkit.TikTokPostStats{Plays: 1000, Likes: 10}

	tests := []struct {
		name   string
		value  any
		header int
		rows   int
	}{
		{"search", searchFixture(), 3, 2},
		{"play store reviews", &crawlkit.PlayStoreReviewsData{Reviews: []crawlkit.PlayStoreReview{{Username: "a"}}}, 4, 1},
		{"app store reviews", &crawlkit.AppStoreReviewsData{Reviews: []crawlkit.AppStoreReview{{Username: "a"}, {Username: "b"}}}, 4, 2},
		{"tiktok posts", &crawlkit.TikTokPostsData{Posts: []crawlkit.TikTokPost{{ID: "1", Stats: plays}, {ID: "2"}}}, 5, 2},
		{"linkedin persons", &crawlkit.LinkedInPersonData{
			Persons: []crawlkit.LinkedInPersonResult{{URL: "https://linkedin.com/in/a"}},
			Failed:  []string{"https://linkedin.com/in/b"},
		}, 2, 2},
		{"selection", &selection{Selector: "h1", Matches: []string{"x"}}, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, rows, ok := tableFor(tt.value)
			require.True(t, ok)
			assert.Len(t, header, tt.header)
			assert.Len(t, rows, tt.rows)
		})
	}

	_, _, ok := tableFor(&crawlkit.ScrapeData{})
	assert.False(t, ok)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "a b c", truncate("a\n  b\tc"))

	long := strings.Repeat("é", maxCellWidth+10)
	got := []rune(truncate(long))
	assert.Len(t, got, maxCellWidth)
	assert.Equal(t, '…', got[len(got)-1])
}
