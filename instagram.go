package crawlkit

import (
	"context"

	"github.com/mozhn/crawlkit-sdk/internal/api"
)

// InstagramService scrapes Instagram. Access it through Client.Instagram.
//
// Field names follow the API's snake_case payloads.
type InstagramService struct {
	api *api.Client
}

// InstagramOptions tunes an Instagram scrape.
type InstagramOptions struct {
	TimeoutMS int `json:"timeout,omitempty"`
}

// InstagramProfileParams are the parameters for InstagramService.Profile.
type InstagramProfileParams struct {
	Username string            `json:"username"`
	Options  *InstagramOptions `json:"options,omitempty"`
}

type InstagramBioLink struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	LinkType string `json:"link_type"`
}

type InstagramDimensions struct {
	Height int `json:"height"`
	Width  int `json:"width"`
}

// InstagramPost is a post as listed on a profile.
type InstagramPost struct {
	ID               string              `json:"id"`
	Shortcode        string              `json:"shortcode"`
	DisplayURL       string              `json:"display_url"`
	ThumbnailSrc     string              `json:"thumbnail_src"`
	IsVideo          bool                `json:"is_video"`
	VideoURL         *string             `json:"video_url"`
	Caption          *string             `json:"caption"`
	LikeCount        int                 `json:"like_count"`
	CommentCount     int                 `json:"comment_count"`
	TakenAtTimestamp int64               `json:"taken_at_timestamp"`
	Dimensions       InstagramDimensions `json:"dimensions"`
	VideoViewCount   *int                `json:"video_view_count"`
}

// InstagramProfile is a scraped public profile with its recent posts.
type InstagramProfile struct {
	ID                    string             `json:"id"`
	Username              string             `json:"username"`
	FullName              string             `json:"full_name"`
	Biography             *string            `json:"biography"`
	BioLinks              []InstagramBioLink `json:"bio_links"`
	FollowerCount         int                `json:"follower_count"`
	FollowingCount        int                `json:"following_count"`
	MediaCount            int                `json:"media_count"`
	ProfilePicURL         string             `json:"profile_pic_url"`
	ProfilePicURLHD       *string            `json:"profile_pic_url_hd"`
	IsVerified            bool               `json:"is_verified"`
	IsPrivate             bool               `json:"is_private"`
	IsBusinessAccount     bool               `json:"is_business_account"`
	IsProfessionalAccount bool               `json:"is_professional_account"`
	BusinessCategoryName  *string            `json:"business_category_name"`
	BusinessEmail         *string            `json:"business_email"`
	BusinessPhoneNumber   *string            `json:"business_phone_number"`
	ExternalURL           *string            `json:"external_url"`
	HighlightReelCount    int                `json:"highlight_reel_count"`
	Posts                 []InstagramPost    `json:"posts"`
}

// InstagramProfileData is the result of InstagramService.Profile.
type InstagramProfileData struct {
	Profile InstagramProfile `json:"profile"`
	Timing  Timing           `json:"timing"`
	Credits
}

// Profile scrapes a public profile by username. Costs 1 credit.
func (s *InstagramService) Profile(ctx context.Context, params InstagramProfileParams) (*InstagramProfileData, error) {
	return api.Post[InstagramProfileData](ctx, s.api, "/v1/crawl/instagram/profile", params)
}

// InstagramContentParams are the parameters for InstagramService.Content.
// Shortcode is the id in a post URL, e.g. "DU6g3wTgBC9".
type InstagramContentParams struct {
	Shortcode string            `json:"shortcode"`
	Options   *InstagramOptions `json:"options,omitempty"`
}

type InstagramContentOwner struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	FullName      string `json:"full_name"`
	ProfilePicURL string `json:"profile_pic_url"`
	IsVerified    bool   `json:"is_verified"`
}

type InstagramAudioInfo struct {
	Title          *string `json:"title"`
	ArtistUsername *string `json:"artist_username"`
	IsOriginal     bool    `json:"is_original"`
}

type InstagramCarouselItem struct {
	ID         string  `json:"id"`
	MediaType  string  `json:"media_type"`
	DisplayURL string  `json:"display_url"`
	VideoURL   *string `json:"video_url"`
}

// InstagramContent is a single post, reel or carousel.
type InstagramContent struct {
	ID            string                  `json:"id"`
	Shortcode     string                  `json:"shortcode"`
	TakenAt       int64                   `json:"taken_at"`
	MediaType     string                  `json:"media_type"`
	ProductType   string                  `json:"product_type"`
	Width         int                     `json:"width"`
	Height        int                     `json:"height"`
	LikeCount     int                     `json:"like_count"`
	CommentCount  int                     `json:"comment_count"`
	Caption       *string                 `json:"caption"`
	HasAudio      bool                    `json:"has_audio"`
	DisplayURL    string                  `json:"display_url"`
	VideoURL      *string                 `json:"video_url"`
	ThumbnailURL  string                  `json:"thumbnail_url"`
	Owner         InstagramContentOwner   `json:"owner"`
	AudioInfo     *InstagramAudioInfo     `json:"audio_info"`
	CarouselMedia []InstagramCarouselItem `json:"carousel_media"`
}

// InstagramContentData is the result of InstagramService.Content.
type InstagramContentData struct {
	Post   InstagramContent `json:"post"`
	Timing Timing           `json:"timing"`
	Credits
}

// Content scrapes a single post or reel by shortcode. Costs 1 credit.
func (s *InstagramService) Content(ctx context.Context, params InstagramContentParams) (*InstagramContentData, error) {
	return api.Post[InstagramContentData](ctx, s.api, "/v1/crawl/instagram/content", params)
}
