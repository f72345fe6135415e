package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAPIErrorMatchesSentinel(t *testing.T) {
	err := NewAPIError(ErrKindTransport, context.DeadlineExceeded)

	require.ErrorIs(t, err, ErrTransport)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.NotErrorIs(t, err, ErrDecode)
}

func TestAPIErrorThroughWrapping(t *testing.T) {
	err := fmt.Errorf("search: %w", NewStatusError(503))

	require.ErrorIs(t, err, ErrServerStatus)
	require.Equal(t, ErrKindServerStatus, KindOf(err))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, 503, apiErr.StatusCode)
}

func TestAPIErrorMessage(t *testing.T) {
	require.Equal(t, "photo service returned an error status: 404", NewStatusError(404).Error())
	require.Equal(t, "invalid request: empty photo id",
		NewAPIError(ErrKindInvalidRequest, errors.New("empty photo id")).Error())
}

func TestKindOfForeignError(t *testing.T) {
	require.Equal(t, ErrKindUnknown, KindOf(errors.New("boom")))
	require.Equal(t, ErrKindUnknown, KindOf(nil))
}
