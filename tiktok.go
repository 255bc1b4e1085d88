package crawlkit

import (
	"context"
	"strconv"

	"github.com/mozhn/crawlkit-sdk/internal/api"
)

// TikTokService scrapes TikTok. Access it through Client.TikTok.
type TikTokService struct {
	api *api.Client
}

// TikTokOptions tunes a TikTok scrape.
type TikTokOptions struct {
	TimeoutMS int `json:"timeout,omitempty"`
}

// TikTokProfileParams are the parameters for TikTokService.Profile.
type TikTokProfileParams struct {
	Username string         `json:"username"`
	Options  *TikTokOptions `json:"options,omitempty"`
}

// TikTokPostParams are the parameters for TikTokService.Content.
type TikTokPostParams struct {
	URL     string         `json:"url"`
	Options *TikTokOptions `json:"options,omitempty"`
}

// TikTokPostsParams are the parameters for TikTokService.Posts. To page,
// pass back Pagination.Cursor and Pagination.SecUID from the previous page;
// SecUID lets the server skip the profile lookup.
type TikTokPostsParams struct {
	Username string         `json:"username"`
	Cursor   *int64         `json:"cursor,omitempty"`
	SecUID   string         `json:"secUid,omitempty"`
	Options  *TikTokOptions `json:"options,omitempty"`
}

type TikTokProfileStats struct {
	Followers int64  `json:"followers"`
	Following int64  `json:"following"`
	Likes     int64  `json:"likes"`
	Videos    int64  `json:"videos"`
	Friends   *int64 `json:"friends,omitempty"`
	Digg      *int64 `json:"digg,omitempty"`
}

// TikTokProfile is a scraped public profile.
type TikTokProfile struct {
	ID             string              `json:"id"`
	SecUID         *string             `json:"secUid,omitempty"`
	Username       string              `json:"username"`
	Nickname       string              `json:"nickname,omitempty"`
	Bio            string              `json:"bio,omitempty"`
	BioLink        *string             `json:"bioLink,omitempty"`
	Avatar         string              `json:"avatar,omitempty"`
	Verified       bool                `json:"verified,omitempty"`
	PrivateAccount bool                `json:"privateAccount,omitempty"`
	IsOrganization bool                `json:"isOrganization,omitempty"`
	CommerceUser   bool                `json:"commerceUser,omitempty"`
	Category       *string             `json:"category,omitempty"`
	Language       *string             `json:"language,omitempty"`
	Region         *string             `json:"region,omitempty"`
	CreatedAt      *string             `json:"createdAt,omitempty"`
	Stats          *TikTokProfileStats `json:"stats,omitempty"`
}

type TikTokPostAuthor struct {
	ID       *string `json:"id,omitempty"`
	Username *string `json:"username,omitempty"`
	Nickname *string `json:"nickname,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Verified bool    `json:"verified,omitempty"`
}

type TikTokPostMusic struct {
	Title    *string `json:"title,omitempty"`
	Author   *string `json:"author,omitempty"`
	Album    *string `json:"album,omitempty"`
	Duration *int    `json:"duration,omitempty"`
	CoverURL *string `json:"coverUrl,omitempty"`
}

type TikTokPostVideo struct {
	Duration *int    `json:"duration,omitempty"`
	URL      *string `json:"url,omitempty"`
	CoverURL *string `json:"coverUrl,omitempty"`
	Width    *int    `json:"width,omitempty"`
	Height   *int    `json:"height,omitempty"`
}

type TikTokPostImage struct {
	Index  *int   `json:"index,omitempty"`
	URL    string `json:"url"`
	Width  *int   `json:"width,omitempty"`
	Height *int   `json:"height,omitempty"`
}

type TikTokPostStats struct {
	Plays    int64 `json:"plays,omitempty"`
	Likes    int64 `json:"likes,omitempty"`
	Comments int64 `json:"comments,omitempty"`
	Shares   int64 `json:"shares,omitempty"`
	Saves    int64 `json:"saves,omitempty"`
	Reposts  int64 `json:"reposts,omitempty"`
}

type TikTokHashtag struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// TikTokPost is a video or image post. MediaType is "video" or "image".
type TikTokPost struct {
	ID              string            `json:"id"`
	PostURL         *string           `json:"postUrl,omitempty"`
	Description     string            `json:"description,omitempty"`
	CreatedAt       *string           `json:"createdAt,omitempty"`
	MediaType       string            `json:"mediaType,omitempty"`
	Author          *TikTokPostAuthor `json:"author,omitempty"`
	Music           *TikTokPostMusic  `json:"music,omitempty"`
	Video           *TikTokPostVideo  `json:"video,omitempty"`
	Images          []TikTokPostImage `json:"images,omitempty"`
	Stats           *TikTokPostStats  `json:"stats,omitempty"`
	Hashtags        []TikTokHashtag   `json:"hashtags,omitempty"`
	LocationCreated *string           `json:"locationCreated,omitempty"`
	IsAd            bool              `json:"isAd,omitempty"`
}

// TikTokPostsPagination is the cursor state of a posts page.
type TikTokPostsPagination struct {
	Cursor  string  `json:"cursor,omitempty"`
	HasMore bool    `json:"hasMore,omitempty"`
	Total   int     `json:"total,omitempty"`
	SecUID  *string `json:"secUid,omitempty"`
}

// NextPage returns prev advanced to the page after this one, carrying the
// secUid forward. It reports false on the last page or when the cursor is
// not numeric.
func (p TikTokPostsPagination) NextPage(prev TikTokPostsParams) (TikTokPostsParams, bool) {
	if !p.HasMore || p.Cursor == "" {
		return prev, false
	}
	cursor, err := strconv.ParseInt(p.Cursor, 10, 64)
	if err != nil {
		return prev, false
	}
	prev.Cursor = &cursor
	if p.SecUID != nil {
		prev.SecUID = *p.SecUID
	}
	return prev, true
}

type TikTokProfileData struct {
	Profile TikTokProfile `json:"profile"`
	Timing  Timing        `json:"timing"`
	Credits
}

type TikTokPostData struct {
	Post   TikTokPost `json:"post"`
	Timing Timing     `json:"timing"`
	Credits
}

type TikTokPostsData struct {
	Posts      []TikTokPost          `json:"posts"`
	Pagination TikTokPostsPagination `json:"pagination"`
	Timing     Timing                `json:"timing"`
	Credits
}

// Profile scrapes a public profile by username. Costs 1 credit.
func (s *TikTokService) Profile(ctx context.Context, params TikTokProfileParams) (*TikTokProfileData, error) {
	return api.Post[TikTokProfileData](ctx, s.api, "/v1/crawl/tiktok/profile", params)
}

// Content scrapes a single post by URL. Costs 1 credit.
func (s *TikTokService) Content(ctx context.Context, params TikTokPostParams) (*TikTokPostData, error) {
	return api.Post[TikTokPostData](ctx, s.api, "/v1/crawl/tiktok/post", params)
}

// Posts fetches one page of a user's posts. Costs 1 credit per page.
func (s *TikTokService) Posts(ctx context.Context, params TikTokPostsParams) (*TikTokPostsData, error) {
	return api.Post[TikTokPostsData](ctx, s.api, "/v1/crawl/tiktok/posts", params)
}
