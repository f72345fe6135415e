package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mmcdole/shutter/internal/domain"
)

func TestDetailLoadSuccess(t *testing.T) {
	want := &domain.PhotoDetail{ID: "1", Title: "Harbor", PostedAt: time.Unix(1700000000, 0).UTC(), ViewCount: 3}
	repo := &fakeRepo{detailFn: func(_ context.Context, id string) (*domain.PhotoDetail, error) {
		return want, nil
	}}
	d := NewDetailController(repo, testLogger())

	state := d.Load(context.Background(), "1")

	require.False(t, state.IsLoading)
	require.NoError(t, state.Err)
	require.Equal(t, "1", state.PhotoID)
	require.Equal(t, want, state.Detail)
	require.Equal(t, state, d.State())
}

func TestDetailLoadFailure(t *testing.T) {
	repo := &fakeRepo{detailFn: func(_ context.Context, id string) (*domain.PhotoDetail, error) {
		return nil, domain.NewStatusError(404)
	}}
	d := NewDetailController(repo, testLogger())

	state := d.Load(context.Background(), "1")

	require.False(t, state.IsLoading)
	require.Nil(t, state.Detail)
	require.ErrorIs(t, state.Err, domain.ErrServerStatus)
}

func TestDetailStaleLoadIsDiscarded(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	repo := &fakeRepo{detailFn: func(ctx context.Context, id string) (*domain.PhotoDetail, error) {
		if id == "first" {
			close(firstStarted)
			<-releaseFirst
		}
		return &domain.PhotoDetail{ID: id}, nil
	}}
	d := NewDetailController(repo, testLogger())

	result := make(chan domain.DetailState, 1)
	go func() {
		result <- d.Load(context.Background(), "first")
	}()
	<-firstStarted

	second := d.Load(context.Background(), "second")
	require.Equal(t, "second", second.Detail.ID)

	close(releaseFirst)
	stale := <-result
	require.Equal(t, "second", stale.PhotoID, "a superseded load reports the newer state")
	require.Equal(t, "second", d.State().Detail.ID)
}

func TestDetailReset(t *testing.T) {
	repo := &fakeRepo{detailFn: func(_ context.Context, id string) (*domain.PhotoDetail, error) {
		return &domain.PhotoDetail{ID: id}, nil
	}}
	d := NewDetailController(repo, testLogger())
	d.Load(context.Background(), "1")

	d.Reset()

	require.Equal(t, domain.DetailState{}, d.State())
}
