// Package crawlkit provides a Go client SDK for the CrawlKit web scraping API.
//
// One client covers page scraping, LLM-backed structured extraction, web
// search and screenshots, plus platform scrapers for LinkedIn, Instagram,
// TikTok, Google Play and the Apple App Store. Every call is a single HTTP
// request bounded by the client timeout. The client never retries.
//
// Basic usage:
//
//	client, err := crawlkit.New("ck_your_api_key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	page, err := client.Scrape(ctx, crawlkit.ScrapeParams{URL: "https://example.com"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(page.Markdown)
//
//	profile, err := client.TikTok.Profile(ctx, crawlkit.TikTokProfileParams{Username: "nike"})
//
// Failed calls return an *Error. Match a class of failure with errors.Is
// against the sentinel errors, or inspect Kind, Code and the credit fields
// with errors.As:
//
//	var ckErr *crawlkit.Error
//	if errors.As(err, &ckErr) && ckErr.CreditsRefunded != nil {
//	    fmt.Println("refunded:", *ckErr.CreditsRefunded)
//	}
package crawlkit
