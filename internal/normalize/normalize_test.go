package normalize

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string // "" means null
	}{
		{"currency prefix", "₹9.99", "9.99"},
		{"empty", "", ""},
		{"nil", nil, ""},
		{"letters only", "abc", ""},
		{"whitespace", "   ", ""},
		{"negative", "-4.5", "-4.5"},
		{"thousands separator", "1,299", "1299"},
		{"float input", 12.5, "12.5"},
		{"int input", 7, "7"},
		{"json number", json.Number("3.25"), "3.25"},
		{"lone minus", "-", ""},
		{"lone dot", ".", ""},
		{"two minus signs", "1-2", ""},
		{"unit suffix", "250 g", "250"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Number(tt.in)
			if tt.want == "" {
				if got.Valid {
					t.Fatalf("Number(%v) = %s, want null", tt.in, got.Decimal)
				}
				return
			}
			if !got.Valid {
				t.Fatalf("Number(%v) = null, want %s", tt.in, tt.want)
			}
			if !got.Decimal.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Number(%v) = %s, want %s", tt.in, got.Decimal, tt.want)
			}
		})
	}
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{nil, 1},
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-3", 1},
		{"3", 3},
		{"2.7", 2},
		{4.0, 4},
		{"x5", 5},
	}
	for _, tt := range tests {
		if got := Quantity(tt.in); got != tt.want {
			t.Errorf("Quantity(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	if got := String(nil); got != "" {
		t.Errorf("String(nil) = %q, want empty", got)
	}
	if got := String("  SKU-1 "); got != "SKU-1" {
		t.Errorf("String = %q, want %q", got, "SKU-1")
	}
	if got := String(123456789012.0); got != "123456789012" {
		t.Errorf("String(float) = %q, want %q", got, "123456789012")
	}
}
