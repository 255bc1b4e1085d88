package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	crawlkit "github.com/mozhn/crawlkit-sdk"
)

func TestExitCode(t *testing.T) {
	apiErr := func(kind crawlkit.Kind) error {
		return &crawlkit.Error{Kind: kind}
	}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"interrupted", fmt.Errorf("request: %w", context.Canceled), ExitInterrupt},
		{"unknown flag", errors.New("unknown flag: --nope"), ExitUsage},
		{"arg count", errors.New("accepts 1 arg(s), received 2"), ExitUsage},
		{"required flag", errors.New(`required flag(s) "schema" not set`), ExitUsage},
		{"output format", fmt.Errorf("%w: %q", ErrUnsupportedOutput, "xml"), ExitUsage},
		{"flag value", fmt.Errorf("%w: --time-range", ErrInvalidFlag), ExitUsage},
		{"config", fmt.Errorf("%w: CRAWLKIT_API_KEY is required", ErrInvalidConfig), ExitAuth},
		{"unauthorized", apiErr(crawlkit.KindAuthentication), ExitAuth},
		{"schema file", fmt.Errorf("%w x.json", ErrSchemaFile), ExitValidation},
		{"validation", apiErr(crawlkit.KindValidation), ExitValidation},
		{"not found", apiErr(crawlkit.KindNotFound), ExitValidation},
		{"credits", apiErr(crawlkit.KindInsufficientCredits), ExitCredits},
		{"rate limited", apiErr(crawlkit.KindRateLimited), ExitRetryable},
		{"timeout", apiErr(crawlkit.KindTimeout), ExitRetryable},
		{"network", apiErr(crawlkit.KindNetwork), ExitRetryable},
		{"parse", apiErr(crawlkit.KindParse), ExitGeneral},
		{"other", errors.New("boom"), ExitGeneral},
		{"wrapped api error", fmt.Errorf("scrape: %w", apiErr(crawlkit.KindValidation)), ExitValidation},
		{
			"rate limited message looks like usage",
			&crawlkit.Error{Kind: crawlkit.KindRateLimited, Code: crawlkit.CodeRateLimited, Message: "Server accepts only http and https URLs", StatusCode: 429},
			ExitRetryable,
		},
		{
			"not found message looks like usage",
			&crawlkit.Error{Kind: crawlkit.KindNotFound, Code: crawlkit.CodeNotFound, Message: "unknown command for this resource", StatusCode: 404},
			ExitValidation,
		},
		{
			"api error message looks like usage",
			&crawlkit.Error{Kind: crawlkit.KindAPI, Code: crawlkit.CodeBlocked, Message: "requires at least one proxy", StatusCode: 403},
			ExitGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
