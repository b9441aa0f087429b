// Package kv implements the repositories as JSON documents in a storage.Store.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/storage"
)

// Storage keys. They match what earlier storefront versions wrote, so state
// carries over.
const (
	CartKey           = "cart:v1"
	SessionKey        = "auth"
	AccessTokenKey    = "token"
	RefreshTokenKey   = "rt"
	RecentlyViewedKey = "lastViewedProducts"
)

// getJSON decodes key into dst. found is false when the key is absent.
func getJSON(ctx context.Context, s storage.Store, key string, dst any) (found bool, err error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func setJSON(ctx context.Context, s storage.Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
