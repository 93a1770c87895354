package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultShippingCost applies when an order carries no shippingCost.
var DefaultShippingCost = decimal.RequireFromString("15.00")

type Item struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	Currency      string          `json:"currency,omitempty"`
	OriginCountry string          `json:"originCountry,omitempty"`
	Weight        *float64        `json:"weight,omitempty"`
}

// Subtotal is price * quantity.
func (it Item) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

type CustomsDetails struct {
	CustomsDuty decimal.Decimal `json:"customsDuty"`
	VAT         decimal.Decimal `json:"vat"`
	CustomsFee  decimal.Decimal `json:"customsFee"`
	TotalDuties decimal.Decimal `json:"totalDuties"`
}

type Order struct {
	ID              string           `json:"id"`
	UserID          string           `json:"userId"`
	UserName        string           `json:"userName"`
	DeliveryCountry string           `json:"deliveryCountry"`
	Items           []Item           `json:"items"`
	Status          Status           `json:"status"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       *time.Time       `json:"updatedAt,omitempty"`
	TotalPrice      *decimal.Decimal `json:"totalPrice,omitempty"`
	CustomsDetails  *CustomsDetails  `json:"customsDetails,omitempty"`
	ShippingCost    *decimal.Decimal `json:"shippingCost,omitempty"`
}

// NewOrder is the payload of a create request: an Order without id and timestamps.
type NewOrder struct {
	UserID          string           `json:"userId"`
	UserName        string           `json:"userName"`
	DeliveryCountry string           `json:"deliveryCountry"`
	Items           []Item           `json:"items"`
	Status          Status           `json:"status"`
	TotalPrice      *decimal.Decimal `json:"totalPrice,omitempty"`
	CustomsDetails  *CustomsDetails  `json:"customsDetails,omitempty"`
	ShippingCost    *decimal.Decimal `json:"shippingCost,omitempty"`
}

func (o Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// TotalOrItemsSum returns totalPrice when present, otherwise the sum over items.
func (o Order) TotalOrItemsSum() decimal.Decimal {
	if o.TotalPrice != nil {
		return *o.TotalPrice
	}
	return o.ItemsTotal()
}

func (o Order) ShippingCostOrDefault() decimal.Decimal {
	if o.ShippingCost != nil {
		return *o.ShippingCost
	}
	return DefaultShippingCost
}

// Clone returns a copy that shares no slices or pointers with o.
func (o Order) Clone() Order {
	c := o
	if o.Items != nil {
		c.Items = make([]Item, len(o.Items))
		for i, it := range o.Items {
			if it.Weight != nil {
				w := *it.Weight
				it.Weight = &w
			}
			c.Items[i] = it
		}
	}
	if o.UpdatedAt != nil {
		t := *o.UpdatedAt
		c.UpdatedAt = &t
	}
	if o.TotalPrice != nil {
		p := *o.TotalPrice
		c.TotalPrice = &p
	}
	if o.CustomsDetails != nil {
		cd := *o.CustomsDetails
		c.CustomsDetails = &cd
	}
	if o.ShippingCost != nil {
		s := *o.ShippingCost
		c.ShippingCost = &s
	}
	return c
}
