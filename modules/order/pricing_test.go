package order

import (
	"math"
	"testing"
)

func TestComputePrices(t *testing.T) {
	cases := []struct {
		name         string
		items        []OrderItemInput
		wantItems    float64
		wantShipping float64
		wantTax      float64
		wantTotal    float64
	}{
		{
			name: "free shipping above threshold",
			items: []OrderItemInput{
				{Price: 40, Quantity: 2},
				{Price: 30, Quantity: 1},
			},
			wantItems:    110,
			wantShipping: 0,
			wantTax:      16.50,
			wantTotal:    126.50,
		},
		{
			name:         "exactly at threshold still pays shipping",
			items:        []OrderItemInput{{Price: 100, Quantity: 1}},
			wantItems:    100,
			wantShipping: 10,
			wantTax:      15,
			wantTotal:    125,
		},
		{
			name:         "below threshold pays flat shipping",
			items:        []OrderItemInput{{Price: 10, Quantity: 1}},
			wantItems:    10,
			wantShipping: 10,
			wantTax:      1.50,
			wantTotal:    21.50,
		},
		{
			name:         "tax rounded to cents",
			items:        []OrderItemInput{{Price: 33.33, Quantity: 1}},
			wantItems:    33.33,
			wantShipping: 10,
			wantTax:      5.00,
			wantTotal:    48.33,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputePrices(tc.items)
			if got.ItemsPrice != tc.wantItems {
				t.Errorf("items price = %v, want %v", got.ItemsPrice, tc.wantItems)
			}
			if got.ShippingPrice != tc.wantShipping {
				t.Errorf("shipping price = %v, want %v", got.ShippingPrice, tc.wantShipping)
			}
			if got.TaxPrice != tc.wantTax {
				t.Errorf("tax price = %v, want %v", got.TaxPrice, tc.wantTax)
			}
			if got.TotalPrice != tc.wantTotal {
				t.Errorf("total price = %v, want %v", got.TotalPrice, tc.wantTotal)
			}

			// The total must always be the exact sum of its parts.
			sum := got.ItemsPrice + got.ShippingPrice + got.TaxPrice
			if math.Abs(sum-got.TotalPrice) > 1e-9 {
				t.Errorf("total %v does not equal sum of parts %v", got.TotalPrice, sum)
			}
		})
	}
}
