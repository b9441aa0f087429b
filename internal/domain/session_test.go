package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthResult_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want AuthResult
	}{
		{
			name: "flat with accessToken",
			body: `{"accessToken":"a1","refreshToken":"r1","id":7,"name":"Ayşe","email":"ayse@example.com","role":"customer"}`,
			want: AuthResult{AccessToken: "a1", RefreshToken: "r1", User: User{ID: "7", Name: "Ayşe", Email: "ayse@example.com", Role: "customer"}},
		},
		{
			name: "legacy token field",
			body: `{"token":"a2","id":"u-2","name":"Mehmet","email":"m@example.com"}`,
			want: AuthResult{AccessToken: "a2", User: User{ID: "u-2", Name: "Mehmet", Email: "m@example.com"}},
		},
		{
			name: "nested user",
			body: `{"accessToken":"a3","user":{"id":"u-3","name":"Zeynep","email":"z@example.com","role":"admin"}}`,
			want: AuthResult{AccessToken: "a3", User: User{ID: "u-3", Name: "Zeynep", Email: "z@example.com", Role: "admin"}},
		},
		{
			name: "accessToken wins over token",
			body: `{"accessToken":"new","token":"old","user":null,"id":1}`,
			want: AuthResult{AccessToken: "new", User: User{ID: "1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got AuthResult
			require.NoError(t, json.Unmarshal([]byte(tt.body), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthResult_UnmarshalJSON_Invalid(t *testing.T) {
	var got AuthResult
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &got))
}

func TestID_UnmarshalJSON(t *testing.T) {
	var v struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"abc","b":42,"c":null}`), &v))
	assert.Equal(t, ID("abc"), v.A)
	assert.Equal(t, ID("42"), v.B)
	assert.Equal(t, ID(""), v.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a":true}`), &v))
}

func TestProductQuery_Values(t *testing.T) {
	assert.Empty(t, ProductQuery{}.Values().Encode())
	assert.Equal(t, "category=gomlek&limit=12&page=2&q=keten&sort=price_asc",
		ProductQuery{Category: "gomlek", Search: "keten", Sort: "price_asc", Page: 2, Limit: 12}.Values().Encode())
}

func TestProduct_Snapshot(t *testing.T) {
	p := Product{ID: "p1", Name: "Elbise", Images: []string{"a.jpg", "b.jpg"}}
	assert.Equal(t, "a.jpg", p.Snapshot().Image)
	assert.Empty(t, Product{ID: "p2"}.Snapshot().Image)
}

func TestProduct_SnapshotSlug(t *testing.T) {
	assert.Equal(t, "keten-gomlek", Product{ID: "p1", Name: "Keten Gömlek"}.Snapshot().Slug)
	assert.Equal(t, "ozel-slug", Product{ID: "p1", Name: "Keten Gömlek", Slug: "ozel-slug"}.Snapshot().Slug)
}

func TestPaymentItemsFrom(t *testing.T) {
	items := PaymentItemsFrom([]CartLine{
		{ProductID: "p1", SizeID: "s1", Quantity: 2},
		{ProductID: "p2", ColorID: "c1", Quantity: 1},
	})
	assert.Equal(t, []PaymentItem{
		{ProductID: "p1", Quantity: 2, SizeID: "s1"},
		{ProductID: "p2", Quantity: 1, ColorID: "c1"},
	}, items)
	assert.NotNil(t, PaymentItemsFrom(nil))
}
