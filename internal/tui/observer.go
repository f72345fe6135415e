package tui

import "github.com/mmcdole/shutter/internal/domain"

// ChannelObserver adapts domain.StateObserver to a channel for Bubble Tea.
type ChannelObserver struct {
	ch chan<- domain.SearchState
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(ch chan<- domain.SearchState) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnState sends the snapshot to the channel (non-blocking if full).
func (o *ChannelObserver) OnState(state domain.SearchState) {
	select {
	case o.ch <- state:
	default: // Non-blocking if channel full
	}
}
