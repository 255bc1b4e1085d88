package crawlkit

import (
	"context"
	"encoding/json"

	"github.com/mozhn/crawlkit-sdk/internal/api"
)

// AppStoreService scrapes Google Play and the Apple App Store.
// Access it through Client.AppStore.
type AppStoreService struct {
	api *api.Client
}

// StoreOptions tunes a store scrape.
type StoreOptions struct {
	// Lang is a language code such as "en" or "tr".
	Lang      string `json:"lang,omitempty"`
	TimeoutMS int    `json:"timeout,omitempty"`
}

// ReviewsParams are the parameters for the reviews operations. AppID is the
// Play Store package name or the numeric App Store id. Pass the previous
// page's Pagination.NextCursor as Cursor to fetch the next page.
type ReviewsParams struct {
	AppID   string        `json:"appId"`
	Cursor  *string       `json:"cursor,omitempty"`
	Options *StoreOptions `json:"options,omitempty"`
}

// DetailParams are the parameters for the detail operations.
type DetailParams struct {
	AppID   string        `json:"appId"`
	Options *StoreOptions `json:"options,omitempty"`
}

type DeveloperReply struct {
	Author string `json:"author"`
	Text   string `json:"text"`
	Date   *int64 `json:"date"`
}

// Pagination is the cursor state of a reviews page.
type Pagination struct {
	NextCursor *string `json:"nextCursor"`
	HasMore    bool    `json:"hasMore"`
}

// NextPage returns prev advanced to the page after this one. It reports
// false when the API returned no further cursor.
func (p Pagination) NextPage(prev ReviewsParams) (ReviewsParams, bool) {
	if p.NextCursor == nil || *p.NextCursor == "" {
		return prev, false
	}
	cursor := *p.NextCursor
	prev.Cursor = &cursor
	return prev, true
}

type PlayStoreReview struct {
	ID             string          `json:"id"`
	Username       string          `json:"username"`
	UserAvatar     *string         `json:"userAvatar"`
	Rating         int             `json:"rating"`
	Text           string          `json:"text"`
	Date           *int64          `json:"date"`
	ThumbsUp       int             `json:"thumbsUp"`
	DeveloperReply *DeveloperReply `json:"developerReply"`
	AppVersion     *string         `json:"appVersion"`
}

// PlayStoreReviewsData is the result of AppStoreService.PlayStoreReviews.
type PlayStoreReviewsData struct {
	AppID      string            `json:"appId"`
	Reviews    []PlayStoreReview `json:"reviews"`
	Pagination Pagination        `json:"pagination"`
	Timing     Timing            `json:"timing"`
	Credits
}

// PlayStoreReviews fetches one page of Google Play reviews. Costs 1 credit per page.
func (s *AppStoreService) PlayStoreReviews(ctx context.Context, params ReviewsParams) (*PlayStoreReviewsData, error) {
	return api.Post[PlayStoreReviewsData](ctx, s.api, "/v1/crawl/playstore/reviews", params)
}

type Screenshot struct {
	URL    string `json:"url"`
	Width  *int   `json:"width"`
	Height *int   `json:"height"`
}

// RatingDistribution counts ratings by star value.
type RatingDistribution struct {
	Five  int `json:"5"`
	Four  int `json:"4"`
	Three int `json:"3"`
	Two   int `json:"2"`
	One   int `json:"1"`
}

type Developer struct {
	Name    string  `json:"name"`
	ID      *string `json:"id"`
	Website *string `json:"website"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type Permission struct {
	Name    string   `json:"name"`
	Icon    *string  `json:"icon"`
	Details []string `json:"details"`
}

type DataSafety struct {
	SharedData    []string `json:"sharedData"`
	CollectedData []string `json:"collectedData"`
	Encrypted     bool     `json:"encrypted"`
	Deletable     bool     `json:"deletable"`
}

// PlayStoreDetailData is the result of AppStoreService.PlayStoreDetail.
type PlayStoreDetailData struct {
	AppID                    string              `json:"appId"`
	AppName                  string              `json:"appName"`
	Icon                     *string             `json:"icon"`
	Summary                  *string             `json:"summary"`
	Description              *string             `json:"description"`
	Screenshots              []Screenshot        `json:"screenshots"`
	Category                 *string             `json:"category"`
	CategoryID               *string             `json:"categoryId"`
	Rating                   *float64            `json:"rating"`
	RatingCount              *int64              `json:"ratingCount"`
	ReviewCount              *int64              `json:"reviewCount"`
	RatingDistribution       *RatingDistribution `json:"ratingDistribution"`
	Installs                 *string             `json:"installs"`
	InstallsExact            *int64              `json:"installsExact"`
	Free                     bool                `json:"free"`
	Price                    *string             `json:"price"`
	Currency                 *string             `json:"currency"`
	ContentRating            *string             `json:"contentRating"`
	ContentRatingDescription *string             `json:"contentRatingDescription"`
	Developer                Developer           `json:"developer"`
	ReleaseDate              *int64              `json:"releaseDate"`
	LastUpdate               *int64              `json:"lastUpdate"`
	Version                  *string             `json:"version"`
	AndroidVersion           *string             `json:"androidVersion"`
	WhatsNew                 *string             `json:"whatsNew"`
	Permissions              []Permission        `json:"permissions"`
	DataSafety               *DataSafety         `json:"dataSafety"`
	PrivacyPolicy            *string             `json:"privacyPolicy"`
	Timing                   Timing              `json:"timing"`
	Credits
}

// PlayStoreDetail fetches a Google Play listing. Costs 1 credit.
func (s *AppStoreService) PlayStoreDetail(ctx context.Context, params DetailParams) (*PlayStoreDetailData, error) {
	return api.Post[PlayStoreDetailData](ctx, s.api, "/v1/crawl/playstore/detail", params)
}

type AppStoreReview struct {
	ID             string          `json:"id"`
	Username       string          `json:"username"`
	UserAvatar     *string         `json:"userAvatar"`
	Rating         int             `json:"rating"`
	Title          string          `json:"title"`
	Text           string          `json:"text"`
	Date           *int64          `json:"date"`
	IsEdited       bool            `json:"isEdited"`
	ThumbsUp       int             `json:"thumbsUp"`
	DeveloperReply *DeveloperReply `json:"developerReply"`
	AppVersion     *string         `json:"appVersion"`
}

// AppStoreReviewsData is the result of AppStoreService.AppStoreReviews.
type AppStoreReviewsData struct {
	AppID      string           `json:"appId"`
	Reviews    []AppStoreReview `json:"reviews"`
	Pagination Pagination       `json:"pagination"`
	Timing     Timing           `json:"timing"`
	Credits
}

// AppStoreReviews fetches one page of App Store reviews. Costs 1 credit per page.
func (s *AppStoreService) AppStoreReviews(ctx context.Context, params ReviewsParams) (*AppStoreReviewsData, error) {
	return api.Post[AppStoreReviewsData](ctx, s.api, "/v1/crawl/appstore/reviews", params)
}

// AppStoreDetailData is the result of AppStoreService.AppStoreDetail. The
// listing payload is loosely specified; keys without a field land in Extra.
type AppStoreDetailData struct {
	AppID            string                     `json:"appId,omitempty"`
	AppName          string                     `json:"appName,omitempty"`
	Developer        string                     `json:"developer,omitempty"`
	Rating           *float64                   `json:"rating,omitempty"`
	RatingCount      *int64                     `json:"ratingCount,omitempty"`
	ReviewsCount     *int64                     `json:"reviewsCount,omitempty"`
	Version          string                     `json:"version,omitempty"`
	Description      string                     `json:"description,omitempty"`
	Icon             string                     `json:"icon,omitempty"`
	Screenshots      []string                   `json:"screenshots,omitempty"`
	Timing           *Timing                    `json:"timing,omitempty"`
	CreditsUsed      *int                       `json:"creditsUsed,omitempty"`
	CreditsRemaining *int                       `json:"creditsRemaining,omitempty"`
	Extra            map[string]json.RawMessage `json:"-"`
}

// appStoreDetailFields are the keys decoded into named fields.
var appStoreDetailFields = map[string]bool{
	"appId": true, "appName": true, "developer": true, "rating": true,
	"ratingCount": true, "reviewsCount": true, "version": true,
	"description": true, "icon": true, "screenshots": true, "timing": true,
	"creditsUsed": true, "creditsRemaining": true,
}

// UnmarshalJSON decodes the known fields and keeps the rest in Extra.
func (d *AppStoreDetailData) UnmarshalJSON(data []byte) error {
	type plain AppStoreDetailData
	var known plain
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for key, value := range all {
		if appStoreDetailFields[key] {
			continue
		}
		if known.Extra == nil {
			known.Extra = make(map[string]json.RawMessage)
		}
		known.Extra[key] = value
	}
	*d = AppStoreDetailData(known)
	return nil
}

// MarshalJSON writes the named fields and Extra back into one object.
func (d AppStoreDetailData) MarshalJSON() ([]byte, error) {
	type plain AppStoreDetailData
	base, err := json.Marshal(plain(d))
	if err != nil {
		return nil, err
	}
	if len(d.Extra) == 0 {
		return base, nil
	}
	merged := make(map[string]json.RawMessage, len(d.Extra))
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for key, value := range d.Extra {
		if _, ok := merged[key]; !ok {
			merged[key] = value
		}
	}
	return json.Marshal(merged)
}

// AppStoreDetail fetches an App Store listing. Costs 1 credit.
func (s *AppStoreService) AppStoreDetail(ctx context.Context, params DetailParams) (*AppStoreDetailData, error) {
	return api.Post[AppStoreDetailData](ctx, s.api, "/v1/crawl/appstore/detail", params)
}
