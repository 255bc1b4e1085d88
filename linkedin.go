package crawlkit

import (
	"context"
	"encoding/json"

	"github.com/mozhn/crawlkit-sdk/internal/api"
)

// LinkedInService scrapes LinkedIn. Access it through Client.LinkedIn.
type LinkedInService struct {
	api *api.Client
}

// LinkedInCompanyOptions tunes a company scrape.
type LinkedInCompanyOptions struct {
	TimeoutMS   int   `json:"timeout,omitempty"`
	IncludeJobs *bool `json:"includeJobs,omitempty"`
}

// LinkedInCompanyParams are the parameters for LinkedInService.Company.
type LinkedInCompanyParams struct {
	URL     string                  `json:"url"`
	Options *LinkedInCompanyOptions `json:"options,omitempty"`
}

type LinkedInEmployee struct {
	Name        string  `json:"name"`
	PhotoURL    *string `json:"photoUrl"`
	LinkedInURL string  `json:"linkedinUrl"`
}

type LinkedInJob struct {
	Title      string  `json:"title"`
	JobURL     string  `json:"jobUrl"`
	JobID      *string `json:"jobId"`
	Location   *string `json:"location"`
	PostedTime *string `json:"postedTime"`
}

type LinkedInSimilarCompany struct {
	Name        string  `json:"name"`
	Industry    *string `json:"industry"`
	Location    *string `json:"location"`
	LogoURL     *string `json:"logoUrl"`
	LinkedInURL string  `json:"linkedinUrl"`
}

type LinkedInPost struct {
	Content   *string  `json:"content"`
	PostURL   string   `json:"postUrl"`
	TimeAgo   *string  `json:"timeAgo"`
	Reactions int      `json:"reactions"`
	Comments  int      `json:"comments"`
	ImageURLs []string `json:"imageUrls"`
}

// LinkedInCompany is a scraped company page.
type LinkedInCompany struct {
	Name             string                   `json:"name"`
	Industry         *string                  `json:"industry"`
	Location         *string                  `json:"location"`
	Followers        *int                     `json:"followers"`
	Slogan           *string                  `json:"slogan"`
	LogoURL          *string                  `json:"logoUrl"`
	CoverImageURL    *string                  `json:"coverImageUrl"`
	Description      *string                  `json:"description"`
	Website          *string                  `json:"website"`
	CompanySize      *string                  `json:"companySize"`
	Headquarters     *string                  `json:"headquarters"`
	CompanyType      *string                  `json:"companyType"`
	FoundedYear      *int                     `json:"foundedYear"`
	Specialties      []string                 `json:"specialties"`
	Employees        []LinkedInEmployee       `json:"employees"`
	Locations        []string                 `json:"locations"`
	SimilarCompanies []LinkedInSimilarCompany `json:"similarCompanies"`
	RecentPosts      []LinkedInPost           `json:"recentPosts"`
	Jobs             []LinkedInJob            `json:"jobs"`
	LinkedInURL      string                   `json:"linkedinUrl"`
	ScrapedAt        string                   `json:"scrapedAt"`
}

// LinkedInCompanyData is the result of LinkedInService.Company.
type LinkedInCompanyData struct {
	Company LinkedInCompany `json:"company"`
	Timing  Timing          `json:"timing"`
	Credits
}

// Company scrapes a LinkedIn company page. Costs 1 credit.
func (s *LinkedInService) Company(ctx context.Context, params LinkedInCompanyParams) (*LinkedInCompanyData, error) {
	return api.Post[LinkedInCompanyData](ctx, s.api, "/v1/crawl/linkedin/company", params)
}

// LinkedInPersonParams are the parameters for LinkedInService.Person.
// The API accepts at most 10 URLs per call.
type LinkedInPersonParams struct {
	URLs []string
}

// MarshalJSON sends a single URL as a string and several as an array.
func (p LinkedInPersonParams) MarshalJSON() ([]byte, error) {
	if len(p.URLs) == 1 {
		return json.Marshal(struct {
			URL string `json:"url"`
		}{p.URLs[0]})
	}
	urls := p.URLs
	if urls == nil {
		urls = []string{}
	}
	return json.Marshal(struct {
		URL []string `json:"url"`
	}{urls})
}

// LinkedInPersonResult is one scraped profile. Person is left raw because
// profile fields vary widely.
type LinkedInPersonResult struct {
	URL    string                     `json:"url"`
	Person map[string]json.RawMessage `json:"person"`
}

// LinkedInPersonData is the result of LinkedInService.Person.
type LinkedInPersonData struct {
	Persons      []LinkedInPersonResult `json:"persons"`
	Failed       []string               `json:"failed,omitempty"`
	TotalURLs    int                    `json:"totalUrls"`
	SuccessCount int                    `json:"successCount"`
	FailedCount  int                    `json:"failedCount"`
	Timing       Timing                 `json:"timing"`
	Credits
}

// Person scrapes one or more LinkedIn profiles. Costs 3 credits per URL.
func (s *LinkedInService) Person(ctx context.Context, params LinkedInPersonParams) (*LinkedInPersonData, error) {
	return api.Post[LinkedInPersonData](ctx, s.api, "/v1/crawl/linkedin/person", params)
}
