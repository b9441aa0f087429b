package backend

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/domain"
)

// listKeys are the wrapper fields list endpoints have used over time.
var listKeys = []string{"items", "data", "products", "categories", "favorites", "orders"}

// listOf decodes a list answered either as a bare array or wrapped in an
// object under one of listKeys. A missing list decodes as empty.
type listOf[T any] struct {
	items []T
}

func (l listOf[T]) list() []T {
	if l.items == nil {
		return []T{}
	}
	return l.items
}

func (l *listOf[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	l.items = []T{}
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '[' {
		return json.Unmarshal(b, &l.items)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("decode list: %w", err)
	}
	for _, k := range listKeys {
		raw, ok := obj[k]
		if !ok || bytes.Equal(raw, []byte("null")) {
			continue
		}
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			// {"data":{"items":[...]}}
			return l.UnmarshalJSON(trimmed)
		}
		return json.Unmarshal(trimmed, &l.items)
	}
	return nil
}

// productEnvelope accepts a bare product or one wrapped under "product" or "data".
type productEnvelope struct {
	Product domain.Product
}

func (p *productEnvelope) UnmarshalJSON(b []byte) error {
	var wrapped struct {
		Product json.RawMessage `json:"product"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return fmt.Errorf("decode product: %w", err)
	}
	switch {
	case isObject(wrapped.Product):
		b = wrapped.Product
	case isObject(wrapped.Data):
		b = wrapped.Data
	}
	return json.Unmarshal(b, &p.Product)
}

func isObject(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '{'
}

// favoriteEntry is a favorite answered as a bare id, as {"productId":...} or
// as a product object.
type favoriteEntry struct {
	ID domain.ID
}

func (f *favoriteEntry) UnmarshalJSON(b []byte) error {
	if !isObject(b) {
		return json.Unmarshal(b, &f.ID)
	}
	var obj struct {
		ProductID domain.ID       `json:"productId"`
		ID        domain.ID       `json:"id"`
		Product   *domain.Product `json:"product"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("decode favorite: %w", err)
	}
	switch {
	case obj.ProductID != "":
		f.ID = obj.ProductID
	case obj.Product != nil && obj.Product.ID != "":
		f.ID = obj.Product.ID
	default:
		f.ID = obj.ID
	}
	return nil
}
