package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultImageBaseURL is the static host serving photo files
const DefaultImageBaseURL = "https://live.staticflickr.com"

// ImageSize selects one of the sized renditions of a photo
type ImageSize string

const (
	ImageSizeThumbnail ImageSize = "w" // 400px on the longest edge
	ImageSizeMedium    ImageSize = "z" // 640px
	ImageSizeLarge     ImageSize = "b" // 1024px
)

// Page is the pagination cursor reported by the service for one query
type Page struct {
	PageNumber int // 1-based
	PageSize   int // Requested items per page
	TotalPages int // 0 when the query matched nothing
}

// HasMore returns true if the service reports pages after this one
func (p Page) HasMore() bool {
	return p.PageNumber < p.TotalPages
}

// PhotoSummary is one entry of a search result page
type PhotoSummary struct {
	ID       string // Unique per photo
	OwnerID  string // NSID of the uploader
	Secret   string
	Server   string
	Farm     int
	Title    string
	IsPublic bool
	IsFriend bool
	IsFamily bool
}

// ImageURL builds the locator of a sized rendition under base.
// Locators are derived client-side; the service never returns them.
func (p PhotoSummary) ImageURL(base string, size ImageSize) string {
	base = strings.TrimRight(base, "/")
	return fmt.Sprintf("%s/%s/%s_%s_%s.jpg", base, p.Server, p.ID, p.Secret, size)
}

// ThumbnailURL returns the thumbnail locator on the default image host
func (p PhotoSummary) ThumbnailURL() string {
	return p.ImageURL(DefaultImageBaseURL, ImageSizeThumbnail)
}

// MediumURL returns the medium locator on the default image host
func (p PhotoSummary) MediumURL() string {
	return p.ImageURL(DefaultImageBaseURL, ImageSizeMedium)
}

// LargeURL returns the large locator on the default image host
func (p PhotoSummary) LargeURL() string {
	return p.ImageURL(DefaultImageBaseURL, ImageSizeLarge)
}

// DisplayTitle returns the title, or a placeholder for untitled photos
func (p PhotoSummary) DisplayTitle() string {
	if strings.TrimSpace(p.Title) == "" {
		return "(untitled)"
	}
	return p.Title
}

// Visibility returns a short label for the visibility flags
func (p PhotoSummary) Visibility() string {
	switch {
	case p.IsPublic:
		return "public"
	case p.IsFriend && p.IsFamily:
		return "friends & family"
	case p.IsFriend:
		return "friends"
	case p.IsFamily:
		return "family"
	default:
		return "private"
	}
}

// Owner identifies the uploader of a photo
type Owner struct {
	ID       string
	Username string
	RealName string // Empty when the owner has not published one
}

// DisplayName prefers the real name over the username
func (o Owner) DisplayName() string {
	if o.RealName != "" {
		return o.RealName
	}
	return o.Username
}

// PhotoDetail holds the full metadata of a single photo
type PhotoDetail struct {
	ID          string
	Owner       Owner
	Title       string
	Description string
	PostedAt    time.Time // Upload time, from epoch seconds
	TakenAt     string    // Free text as reported, e.g. "2024-05-01 13:45:10"
	ViewCount   int
}

// SearchResponse is one page of search results
type SearchResponse struct {
	Page  Page
	Items []PhotoSummary // Service relevance order
}
