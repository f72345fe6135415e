package flickr

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mmcdole/shutter/internal/domain"
)

// MapSearchResponse converts a validated search body to a domain page.
// Photo order is kept exactly as received. A reported page outside
// 1..max(pages, 1) is an error, since paging from it would go wrong.
func MapSearchResponse(resp *SearchResponse, pageSize int) (*domain.SearchResponse, error) {
	photos := resp.Photos
	page := deref(photos.Page)
	pages := deref(photos.Pages)
	if pages < 0 {
		return nil, fmt.Errorf("negative page count %d", pages)
	}
	if page < 1 || page > max(pages, 1) {
		return nil, fmt.Errorf("page %d outside 1..%d", page, max(pages, 1))
	}

	items := make([]domain.PhotoSummary, 0, len(photos.Photo))
	for _, p := range photos.Photo {
		items = append(items, mapPhoto(p))
	}

	perPage := deref(photos.PerPage)
	if perPage <= 0 {
		perPage = pageSize
	}

	return &domain.SearchResponse{
		Page: domain.Page{
			PageNumber: page,
			PageSize:   perPage,
			TotalPages: pages,
		},
		Items: items,
	}, nil
}

func mapPhoto(p Photo) domain.PhotoSummary {
	return domain.PhotoSummary{
		ID:       p.ID,
		OwnerID:  p.Owner,
		Secret:   p.Secret,
		Server:   p.Server,
		Farm:     deref(p.Farm),
		Title:    derefString(p.Title),
		IsPublic: deref(p.IsPublic) != 0,
		IsFriend: deref(p.IsFriend) != 0,
		IsFamily: deref(p.IsFamily) != 0,
	}
}

// MapPhotoInfo converts a validated getInfo body to a domain detail
func MapPhotoInfo(info *PhotoInfo) (*domain.PhotoDetail, error) {
	posted, err := strconv.ParseInt(info.Dates.Posted, 10, 64)
	if err != nil {
		return nil, err
	}
	views, err := strconv.Atoi(info.Views)
	if err != nil {
		return nil, err
	}

	return &domain.PhotoDetail{
		ID: info.ID,
		Owner: domain.Owner{
			ID:       info.Owner.NSID,
			Username: derefString(info.Owner.Username),
			RealName: info.Owner.RealName,
		},
		Title:       derefString(info.Title.Content),
		Description: derefString(info.Description.Content),
		PostedAt:    time.Unix(posted, 0).UTC(),
		TakenAt:     derefString(info.Dates.Taken),
		ViewCount:   views,
	}, nil
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
