package cli

import (
	"time"

	"github.com/spf13/cobra"

	crawlkit "github.com/mozhn/crawlkit-sdk"
)

func timeoutMS(d time.Duration) int {
	return int(d.Milliseconds())
}

func linkedinCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linkedin",
		Short: "Scrape LinkedIn companies and people",
	}

	var (
		includeJobs bool
		pageTimeout time.Duration
	)
	company := &cobra.Command{
		Use:     "company <url>",
		Short:   "Scrape a company page (1 credit)",
		Example: `  crawlkit linkedin company https://www.linkedin.com/company/openai --include-jobs`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			params := crawlkit.LinkedInCompanyParams{URL: args[0]}
			if cmd.Flags().Changed("include-jobs") || pageTimeout > 0 {
				params.Options = &crawlkit.LinkedInCompanyOptions{TimeoutMS: timeoutMS(pageTimeout)}
				if cmd.Flags().Changed("include-jobs") {
					params.Options.IncludeJobs = &includeJobs
				}
			}
			data, err := client.LinkedIn.Company(cmd.Context(), params)
			if err != nil {
				return err
			}
			return a.print(data)
		},
	}
	company.Flags().BoolVar(&includeJobs, "include-jobs", true, "Include open job listings")
	company.Flags().DurationVar(&pageTimeout, "page-timeout", 0, "Server-side scrape timeout")

	person := &cobra.Command{
		Use:     "person <url>...",
		Short:   "Scrape up to 10 person profiles (3 credits per URL)",
		Example: `  crawlkit linkedin person https://www.linkedin.com/in/someone https://www.linkedin.com/in/another -o table`,
		Args:    cobra.RangeArgs(1, 10),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			data, err := client.LinkedIn.Person(cmd.Context(), crawlkit.LinkedInPersonParams{URLs: args})
			if err != nil {
				return err
			}
			return a.print(data)
		},
	}

	cmd.AddCommand(company, person)
	return cmd
}

func instagramCmd(a *app) *cobra.Command {
	var pageTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "instagram",
		Short: "Scrape Instagram profiles and posts",
	}
	cmd.PersistentFlags().DurationVar(&pageTimeout, "page-timeout", 0, "Server-side scrape timeout")

	options := func() *crawlkit.InstagramOptions {
		if pageTimeout <= 0 {
			return nil
		}
		return &crawlkit.InstagramOptions{TimeoutMS: timeoutMS(pageTimeout)}
	}

	profile := &cobra.Command{
		Use:   "profile <username>",
		Short: "Scrape a public profile (1 credit)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			data, err := client.Instagram.Profile(cmd.Context(), crawlkit.InstagramProfileParams{
				Username: args[0],
				Options:  options(),
			})
			if err != nil {
				return err
			}
			return a.print(data)
		},
	}

	content := &cobra.Command{
		Use:     "content <shortcode>",
		Short:   "Scrape a post or reel by shortcode (1 credit)",
		Example: `  crawlkit instagram content DU6g3wTgBC9`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			data, err := client.Instagram.Content(cmd.Context(), crawlkit.InstagramContentParams{
				Shortcode: args[0],
				Options:   options(),
			})
			if err != nil {
				return err
			}
			return a.print(data)
		},
	}

	cmd.AddCommand(profile, content)
	return cmd
}

func tiktokCmd(a *app) *cobra.Command {
	var pageTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "tiktok",
		Short: "Scrape TikTok profiles and posts",
	}
	cmd.PersistentFlags().DurationVar(&pageTimeout, "page-timeout", 0, "Server-side scrape timeout")

	options := func() *crawlkit.TikTokOptions {
		if pageTimeout <= 0 {
			return nil
		}
		return &crawlkit.TikTokOptions{TimeoutMS: timeoutMS(pageTimeout)}
	}

	profile := &cobra.Command{
		Use:     "profile <username>",
		Short:   "Scrape a public profile (1 credit)",
		Example: `  crawlkit tiktok profile nike`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			data, err := client.TikTok.Profile(cmd.Context(), crawlkit.TikTokProfileParams{
				Username: args[0],
				Options:  options(),
			})
			if err != nil {
				return err
			}
			return a.print(data)
		},
	}

	post := &cobra.Command{
		Use:   "post <url>",
		Short: "Scrape a single post (1 credit)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			data, err := client.TikTok.Content(cmd.Context(), crawlkit.TikTokPostParams{
				URL:     args[0],
				Options: options(),
			})
			if err != nil {
				return err
			}
			return a.print(data)
		},
	}

	var (
		cursor int64
		secUID string
	)
	posts := &cobra.Command{
		Use:   "posts <username>",
		Short: "List a user's posts, one page per call (1 credit per page)",
		Example: `  crawlkit tiktok posts nike -o table
  crawlkit tiktok posts nike --cursor 1712345678000 --sec-uid MS4wLjABAAAA...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			params := crawlkit.TikTokPostsParams{
				Username: args[0],
				SecUID:   secUID,
				Options:  options(),
			}
			if cmd.Flags().Changed("cursor") {
				params.Cursor = &cursor
			}
			data, err := client.TikTok.Posts(cmd.Context(), params)
			if err != nil {
				return err
			}
			return a.print(data)
		},
	}
	posts.Flags().Int64Var(&cursor, "cursor", 0, "Pagination cursor from the previous page")
	posts.Flags().StringVar(&secUID, "sec-uid", "", "secUid from the previous page, skips the profile lookup")

	cmd.AddCommand(profile, post, posts)
	return cmd
}
