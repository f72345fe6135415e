package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPhotoSummaryImageURLs(t *testing.T) {
	photo := PhotoSummary{ID: "123", Server: "65535", Secret: "abc123"}

	require.Equal(t, "https://live.staticflickr.com/65535/123_abc123_w.jpg", photo.ThumbnailURL())
	require.Equal(t, "https://live.staticflickr.com/65535/123_abc123_z.jpg", photo.MediumURL())
	require.Equal(t, "https://live.staticflickr.com/65535/123_abc123_b.jpg", photo.LargeURL())
}

func TestPhotoSummaryImageURLCustomBase(t *testing.T) {
	photo := PhotoSummary{ID: "9", Server: "1", Secret: "s"}

	require.Equal(t, "http://img.local/1/9_s_b.jpg", photo.ImageURL("http://img.local/", ImageSizeLarge))
}

func TestPhotoSummaryEquality(t *testing.T) {
	a := PhotoSummary{ID: "1", OwnerID: "o", Secret: "s", Server: "2", Title: "t", IsPublic: true}
	b := a
	require.True(t, a == b)

	b.IsFamily = true
	require.False(t, a == b)
}

func TestPhotoSummaryVisibility(t *testing.T) {
	require.Equal(t, "public", PhotoSummary{IsPublic: true}.Visibility())
	require.Equal(t, "friends & family", PhotoSummary{IsFriend: true, IsFamily: true}.Visibility())
	require.Equal(t, "family", PhotoSummary{IsFamily: true}.Visibility())
	require.Equal(t, "private", PhotoSummary{}.Visibility())
}

func TestPageHasMore(t *testing.T) {
	require.True(t, Page{PageNumber: 1, TotalPages: 5}.HasMore())
	require.False(t, Page{PageNumber: 5, TotalPages: 5}.HasMore())
	require.False(t, Page{PageNumber: 1, TotalPages: 0}.HasMore())
}

func TestOwnerDisplayName(t *testing.T) {
	require.Equal(t, "Jane Doe", Owner{Username: "jd", RealName: "Jane Doe"}.DisplayName())
	require.Equal(t, "jd", Owner{Username: "jd"}.DisplayName())
}
