// Package pagination parses the page and limit query parameters of listings.
package pagination

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	apperrors "github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/errors"
)

// MaxLimit caps the page size a caller may request.
const MaxLimit = 100

// Params are the paging parameters of a listing. Zero means "not given", so the
// backend applies its own default.
type Params struct {
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// FromQuery reads page and limit from v. Malformed, negative or oversized
// values are rejected as invalid input.
func FromQuery(v url.Values) (Params, error) {
	page, err := nonNegative(v, "page")
	if err != nil {
		return Params{}, err
	}
	limit, err := nonNegative(v, "limit")
	if err != nil {
		return Params{}, err
	}
	if limit > MaxLimit {
		return Params{}, apperrors.InvalidInput(fmt.Sprintf("limit must be at most %d", MaxLimit))
	}
	return Params{Page: page, Limit: limit}, nil
}

func nonNegative(v url.Values, name string) (int, error) {
	raw := strings.TrimSpace(v.Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.InvalidInput(name + " must be an integer")
	}
	if n < 0 {
		return 0, apperrors.InvalidInput(name + " must not be negative")
	}
	return n, nil
}
