package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/errors"
)

func query(t *testing.T, raw string) url.Values {
	t.Helper()
	v, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return v
}

func TestFromQuery_NotGiven(t *testing.T) {
	p, err := FromQuery(url.Values{})

	require.NoError(t, err)
	assert.Equal(t, Params{}, p)
}

func TestFromQuery_Values(t *testing.T) {
	p, err := FromQuery(query(t, "page=3&limit=24"))

	require.NoError(t, err)
	assert.Equal(t, Params{Page: 3, Limit: 24}, p)
}

func TestFromQuery_LimitAtMax(t *testing.T) {
	p, err := FromQuery(query(t, "limit=100"))

	require.NoError(t, err)
	assert.Equal(t, MaxLimit, p.Limit)
}

func TestFromQuery_Rejects(t *testing.T) {
	tests := []struct {
		raw     string
		message string
	}{
		{"page=abc", "page must be an integer"},
		{"page=-1", "page must not be negative"},
		{"limit=1.5", "limit must be an integer"},
		{"limit=101", "limit must be at most 100"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, err := FromQuery(query(t, tt.raw))

			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.message, appErr.Message)
		})
	}
}

func TestFromQuery_TrimsWhitespace(t *testing.T) {
	p, err := FromQuery(query(t, "page=+2+"))

	require.NoError(t, err)
	assert.Equal(t, 2, p.Page)
}
