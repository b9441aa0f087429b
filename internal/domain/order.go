package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is an entry of the signed-in user's order history.
type Order struct {
	ID        ID              `json:"id"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
	Items     []OrderItem     `json:"items,omitempty"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID ID              `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// PaymentItem is one cart line as the payment start call expects it.
type PaymentItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	SizeID    string `json:"sizeId,omitempty"`
	ColorID   string `json:"colorId,omitempty"`
}

// Shipping is the delivery data entered at checkout.
type Shipping struct {
	FullName   string `json:"fullName" validate:"notblank"`
	Phone      string `json:"phone" validate:"notblank"`
	Address    string `json:"address" validate:"notblank"`
	City       string `json:"city" validate:"notblank"`
	District   string `json:"district,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

// PaymentRequest is the body of the payment start call.
type PaymentRequest struct {
	Items             []PaymentItem `json:"items"`
	ShippingAddressID string        `json:"shippingAddressId,omitempty"`
	Shipping          *Shipping     `json:"shipping,omitempty"`
}

// PaymentSession is a started hosted-payment session.
type PaymentSession struct {
	Token      string `json:"token"`
	PaymentURL string `json:"paymentUrl"`
}

// PaymentItemsFrom maps cart lines onto payment items.
func PaymentItemsFrom(lines []CartLine) []PaymentItem {
	items := make([]PaymentItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, PaymentItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			SizeID:    l.SizeID,
			ColorID:   l.ColorID,
		})
	}
	return items
}
