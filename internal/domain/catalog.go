package domain

import (
	"net/url"
	"slices"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/slug"
)

// Category is a catalog category.
type Category struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug,omitempty"`
	ParentID ID     `json:"parentId,omitempty"`
}

// Variant is one selectable size or color of a product.
type Variant struct {
	ID    ID     `json:"id"`
	Label string `json:"label"`
	Stock *int   `json:"stock,omitempty"`
}

// Product is a catalog product as displayed by the storefront.
type Product struct {
	ID          ID              `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug,omitempty"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images,omitempty"`
	CategoryID  ID              `json:"categoryId,omitempty"`
	Sizes       []Variant       `json:"sizes,omitempty"`
	Colors      []Variant       `json:"colors,omitempty"`
}

// Clone returns a copy of p that shares no memory with it.
func (p Product) Clone() Product {
	p.Images = slices.Clone(p.Images)
	p.Sizes = cloneVariants(p.Sizes)
	p.Colors = cloneVariants(p.Colors)
	return p
}

func cloneVariants(vs []Variant) []Variant {
	out := slices.Clone(vs)
	for i := range out {
		if out[i].Stock != nil {
			n := *out[i].Stock
			out[i].Stock = &n
		}
	}
	return out
}

// Snapshot returns the display data kept in the recently viewed list. Products
// the backend sends without a slug get one derived from their name.
func (p Product) Snapshot() ProductSnapshot {
	s := ProductSnapshot{ID: p.ID, Name: p.Name, Slug: p.Slug, Price: p.Price}
	if s.Slug == "" {
		s.Slug = slug.Make(p.Name)
	}
	if len(p.Images) > 0 {
		s.Image = p.Images[0]
	}
	return s
}

// ProductSnapshot is the point-in-time display data of a product.
type ProductSnapshot struct {
	ID    ID              `json:"id"`
	Name  string          `json:"name"`
	Slug  string          `json:"slug,omitempty"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
}

// ProductQuery filters a product listing.
type ProductQuery struct {
	Category string
	Search   string
	Sort     string
	Page     int
	Limit    int
}

// Values encodes q as backend query parameters; zero fields are omitted.
func (q ProductQuery) Values() url.Values {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}
