package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	crawlkit "github.com/mozhn/crawlkit-sdk"
)

// storeFlags are shared by the playstore and appstore subcommands.
type storeFlags struct {
	lang        string
	cursor      string
	pageTimeout time.Duration
}

func (f *storeFlags) options() *crawlkit.StoreOptions {
	if f.lang == "" && f.pageTimeout <= 0 {
		return nil
	}
	return &crawlkit.StoreOptions{Lang: f.lang, TimeoutMS: timeoutMS(f.pageTimeout)}
}

func (f *storeFlags) reviewsParams(appID string) crawlkit.ReviewsParams {
	params := crawlkit.ReviewsParams{AppID: appID, Options: f.options()}
	if f.cursor != "" {
		cursor := f.cursor
		params.Cursor = &cursor
	}
	return params
}

type (
	reviewsFunc func(ctx context.Context, c *crawlkit.Client, p crawlkit.ReviewsParams) (any, error)
	detailFunc  func(ctx context.Context, c *crawlkit.Client, p crawlkit.DetailParams) (any, error)
)

// storeCmd builds a "<store> reviews|detail" command pair.
func storeCmd(a *app, use, short, example string, reviews reviewsFunc, detail detailFunc) *cobra.Command {
	var flags storeFlags

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}
	cmd.PersistentFlags().StringVar(&flags.lang, "lang", "", "Language code, e.g. en")
	cmd.PersistentFlags().DurationVar(&flags.pageTimeout, "page-timeout", 0, "Server-side scrape timeout")

	reviewsCmd := &cobra.Command{
		Use:     "reviews <app-id>",
		Short:   "Fetch one page of reviews (1 credit per page)",
		Example: example,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			data, err := reviews(cmd.Context(), client, flags.reviewsParams(args[0]))
			if err != nil {
				return err
			}
			return a.print(data)
		},
	}
	reviewsCmd.Flags().StringVar(&flags.cursor, "cursor", "", "Pagination cursor from the previous page")

	detailCmd := &cobra.Command{
		Use:   "detail <app-id>",
		Short: "Fetch the store listing (1 credit)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			data, err := detail(cmd.Context(), client, crawlkit.DetailParams{AppID: args[0], Options: flags.options()})
			if err != nil {
				return err
			}
			return a.print(data)
		},
	}

	cmd.AddCommand(reviewsCmd, detailCmd)
	return cmd
}

func playStoreCmd(a *app) *cobra.Command {
	return storeCmd(a, "playstore", "Scrape Google Play listings and reviews",
		`  crawlkit playstore reviews com.spotify.music --lang en -o table`,
		func(ctx context.Context, c *crawlkit.Client, p crawlkit.ReviewsParams) (any, error) {
			return c.AppStore.PlayStoreReviews(ctx, p)
		},
		func(ctx context.Context, c *crawlkit.Client, p crawlkit.DetailParams) (any, error) {
			return c.AppStore.PlayStoreDetail(ctx, p)
		},
	)
}

func appStoreCmd(a *app) *cobra.Command {
	return storeCmd(a, "appstore", "Scrape Apple App Store listings and reviews",
		`  crawlkit appstore reviews 324684580 --lang en -o table`,
		func(ctx context.Context, c *crawlkit.Client, p crawlkit.ReviewsParams) (any, error) {
			return c.AppStore.AppStoreReviews(ctx, p)
		},
		func(ctx context.Context, c *crawlkit.Client, p crawlkit.DetailParams) (any, error) {
			return c.AppStore.AppStoreDetail(ctx, p)
		},
	)
}
