package money

import (
	"math"
	"testing"
)

func TestToCents(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		want    int64
		wantErr bool
	}{
		{name: "whole", amount: 100, want: 10000},
		{name: "two_decimals", amount: 12.34, want: 1234},
		{name: "one_decimal", amount: 0.5, want: 50},
		{name: "float_noise", amount: 0.1 + 0.2, want: 30},
		{name: "negative", amount: -30, want: -3000},
		{name: "zero", amount: 0, want: 0},
		{name: "three_decimals", amount: 1.234, wantErr: true},
		{name: "nan", amount: math.NaN(), wantErr: true},
		{name: "infinity", amount: math.Inf(1), wantErr: true},
		{name: "too_large", amount: 1e14, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToCents(tt.amount)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %v, got %d", tt.amount, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ToCents(%v) = %d, want %d", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFromCents(t *testing.T) {
	if got := FromCents(1234); got != 12.34 {
		t.Errorf("FromCents(1234) = %v, want 12.34", got)
	}
	if got := FromCents(-3000); got != -30 {
		t.Errorf("FromCents(-3000) = %v, want -30", got)
	}
}
