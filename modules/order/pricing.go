package order

import (
	"math"
)

// Pricing rules. Shipping is free strictly above the threshold; an order
// of exactly 100.00 still pays flat shipping.
const (
	freeShippingThreshold = 100.0
	flatShippingPrice     = 10.0
	taxRate               = 0.15
)

// PriceBreakdown is the computed price composition of an order.
type PriceBreakdown struct {
	ItemsPrice    float64 `json:"items_price"`
	ShippingPrice float64 `json:"shipping_price"`
	TaxPrice      float64 `json:"tax_price"`
	TotalPrice    float64 `json:"total_price"`
}

// ComputePrices derives the price breakdown from the line item snapshots.
// Tax is rounded to cents; the total is the exact sum of the three parts.
func ComputePrices(items []OrderItemInput) PriceBreakdown {
	var itemsPrice float64
	for _, item := range items {
		itemsPrice += item.Price * float64(item.Quantity)
	}

	shippingPrice := flatShippingPrice
	if itemsPrice > freeShippingThreshold {
		shippingPrice = 0
	}

	taxPrice := math.Round(itemsPrice*taxRate*100) / 100

	return PriceBreakdown{
		ItemsPrice:    itemsPrice,
		ShippingPrice: shippingPrice,
		TaxPrice:      taxPrice,
		TotalPrice:    itemsPrice + shippingPrice + taxPrice,
	}
}
