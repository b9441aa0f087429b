package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidCartPayload is returned for add-to-cart input that cannot form a line.
var ErrInvalidCartPayload = errors.New("invalid cart payload")

// MaxLineQuantity caps the units of one cart line. Quantity changes saturate
// at it instead of overflowing.
const MaxLineQuantity = 999

// ClampQuantity bounds qty to [1, MaxLineQuantity].
func ClampQuantity(qty int) int {
	return min(max(qty, 1), MaxLineQuantity)
}

// CartLine is one purchasable configuration of a product in the cart. Name,
// price and image are a snapshot taken when the line was first added.
type CartLine struct {
	Key        string          `json:"key"`
	ProductID  string          `json:"productId"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Image      string          `json:"image,omitempty"`
	SizeID     string          `json:"sizeId,omitempty"`
	SizeLabel  string          `json:"sizeLabel,omitempty"`
	ColorID    string          `json:"colorId,omitempty"`
	ColorLabel string          `json:"colorLabel,omitempty"`
	Quantity   int             `json:"quantity"`
}

// LineTotal is price times quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

var keyPartEscaper = strings.NewReplacer("%", "%25", ":", "%3A")

// LineKey derives the identity of a line. Missing variant dimensions are empty.
// Each part is escaped so ids containing ':' cannot collide.
func LineKey(productID, sizeID, colorID string) string {
	return keyPartEscaper.Replace(productID) + ":" +
		keyPartEscaper.Replace(sizeID) + ":" +
		keyPartEscaper.Replace(colorID)
}

// Subtotal sums price × quantity over lines.
func Subtotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// ItemCount returns the total number of units across lines.
func ItemCount(lines []CartLine) int {
	var count int
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}

// AddItemInput is the payload of an add-to-cart call.
type AddItemInput struct {
	ProductID  string          `json:"productId" validate:"notblank"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Image      string          `json:"image,omitempty"`
	SizeID     string          `json:"sizeId,omitempty"`
	SizeLabel  string          `json:"sizeLabel,omitempty"`
	ColorID    string          `json:"colorId,omitempty"`
	ColorLabel string          `json:"colorLabel,omitempty"`
	Quantity   int             `json:"quantity,omitempty" validate:"lte=999"`
}

// Validate rejects a missing product id and a negative price.
func (in AddItemInput) Validate() error {
	if strings.TrimSpace(in.ProductID) == "" {
		return fmt.Errorf("%w: productId is required", ErrInvalidCartPayload)
	}
	if in.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidCartPayload)
	}
	return nil
}

// NormalizedQuantity is the requested quantity bounded to [1, MaxLineQuantity].
func (in AddItemInput) NormalizedQuantity() int {
	return ClampQuantity(in.Quantity)
}

// Line builds the cart line for in.
func (in AddItemInput) Line() CartLine {
	productID := strings.TrimSpace(in.ProductID)
	return CartLine{
		Key:        LineKey(productID, in.SizeID, in.ColorID),
		ProductID:  productID,
		Name:       in.Name,
		Price:      in.Price,
		Image:      in.Image,
		SizeID:     in.SizeID,
		SizeLabel:  in.SizeLabel,
		ColorID:    in.ColorID,
		ColorLabel: in.ColorLabel,
		Quantity:   in.NormalizedQuantity(),
	}
}
