package quotes

import "testing"

func TestCalculateRate(t *testing.T) {
	tests := []struct {
		weightKg float64
		want     float64
	}{
		{10, 5000},
		{2.5, 1250},
		{1, 500},
		{0.5, 250},
		{100, 50000},
	}

	for _, tt := range tests {
		if got := CalculateRate(tt.weightKg); got != tt.want {
			t.Errorf("CalculateRate(%v) = %v, want %v", tt.weightKg, got, tt.want)
		}
	}
}

func TestBillingRate(t *testing.T) {
	q := &QuoteRequest{CalculatedRate: 5000}
	if got := q.BillingRate(); got != 5000 {
		t.Errorf("expected calculated rate 5000, got %v", got)
	}

	override := 3000.0
	q.AdminOverrideRate = &override
	if got := q.BillingRate(); got != 3000 {
		t.Errorf("expected override 3000, got %v", got)
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusApproved, StatusRejected} {
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	for _, s := range []Status{"", "shipped", "Pending"} {
		if s.Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
