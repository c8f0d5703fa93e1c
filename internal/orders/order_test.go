package orders

import "testing"

func TestTotals(t *testing.T) {
	tests := []struct {
		name     string
		items    []Item
		radius   float64
		subtotal float64
		tax      float64
		delivery float64
		total    float64
	}{
		{
			name:     "short radius flat 30",
			items:    []Item{{Price: 100, Quantity: 2}},
			radius:   3,
			subtotal: 200, tax: 10, delivery: 30, total: 240,
		},
		{
			name:     "long radius flat 50",
			items:    []Item{{Price: 100, Quantity: 2}},
			radius:   7.5,
			subtotal: 200, tax: 10, delivery: 50, total: 260,
		},
		{
			name:     "radius exactly 5 stays cheap",
			items:    []Item{{Price: 100, Quantity: 1}},
			radius:   5,
			subtotal: 100, tax: 5, delivery: 30, total: 135,
		},
		{
			name:     "tax rounds to two decimals",
			items:    []Item{{Price: 99.99, Quantity: 1}},
			radius:   1,
			subtotal: 99.99, tax: 5.0, delivery: 30, total: 134.99,
		},
		{
			name:     "multiple lines",
			items:    []Item{{Price: 80, Quantity: 2}, {Price: 45.5, Quantity: 1}},
			radius:   2,
			subtotal: 205.5, tax: 10.28, delivery: 30, total: 245.78,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sub, tax, del, total := Totals(tc.items, tc.radius)
			if sub != tc.subtotal || tax != tc.tax || del != tc.delivery || total != tc.total {
				t.Fatalf("got subtotal=%v tax=%v delivery=%v total=%v, want %v/%v/%v/%v",
					sub, tax, del, total, tc.subtotal, tc.tax, tc.delivery, tc.total)
			}
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusPreparing,
		StatusReady, StatusOutForDelivery, StatusDelivered, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if Status("Teleported").Valid() {
		t.Error("unknown status must be invalid")
	}
}
