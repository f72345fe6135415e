package flickr

import "fmt"

// envelope carries the fields every response has, used to detect
// API-level failures reported with HTTP 200
type envelope struct {
	Stat    string `json:"stat"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// FailResponse is the body Flickr sends when stat is "fail"
type FailResponse struct {
	Code    int
	Message string
}

func (f *FailResponse) Error() string {
	return fmt.Sprintf("flickr error %d: %s", f.Code, f.Message)
}

// SearchResponse is the body of flickr.photos.search.
// Pointer fields distinguish a missing key from a zero value.
type SearchResponse struct {
	Photos *SearchPhotos `json:"photos" validate:"required"`
	Stat   string        `json:"stat" validate:"required"`
}

// SearchPhotos is the page envelope of a search response
type SearchPhotos struct {
	Page    *int    `json:"page" validate:"required"`
	Pages   *int    `json:"pages" validate:"required"`
	PerPage *int    `json:"perpage" validate:"required"`
	Total   *int    `json:"total" validate:"required"`
	Photo   []Photo `json:"photo" validate:"required,dive"`
}

// Photo is a single search hit
type Photo struct {
	ID       string  `json:"id" validate:"required"`
	Owner    string  `json:"owner" validate:"required"`
	Secret   string  `json:"secret" validate:"required"`
	Server   string  `json:"server" validate:"required"`
	Farm     *int    `json:"farm" validate:"required"`
	Title    *string `json:"title" validate:"required"` // may be empty
	IsPublic *int    `json:"ispublic" validate:"required"`
	IsFriend *int    `json:"isfriend" validate:"required"`
	IsFamily *int    `json:"isfamily" validate:"required"`
}

// InfoResponse is the body of flickr.photos.getInfo
type InfoResponse struct {
	Photo *PhotoInfo `json:"photo" validate:"required"`
	Stat  string     `json:"stat" validate:"required"`
}

// PhotoInfo holds the detail fields we read from getInfo
type PhotoInfo struct {
	ID          string     `json:"id" validate:"required"`
	Owner       *InfoOwner `json:"owner" validate:"required"`
	Title       *Content   `json:"title" validate:"required"`
	Description *Content   `json:"description" validate:"required"`
	Dates       *InfoDates `json:"dates" validate:"required"`
	Views       string     `json:"views" validate:"required,numeric"`
}

// InfoOwner is the owner block of getInfo
type InfoOwner struct {
	NSID     string  `json:"nsid" validate:"required"`
	Username *string `json:"username" validate:"required"`
	RealName string  `json:"realname,omitempty"`
}

// Content wraps Flickr's {"_content": "..."} text fields
type Content struct {
	Content *string `json:"_content" validate:"required"`
}

// InfoDates holds upload and capture times
type InfoDates struct {
	Posted string  `json:"posted" validate:"required,numeric"` // epoch seconds
	Taken  *string `json:"taken" validate:"required"`
}
