package mathexpr_test

import (
	"math"
	"testing"

	"pulse-assistant/pkg/mathexpr"
)

func TestEval(t *testing.T) {
	tests := []struct {
		expr    string
		want    float64
		wantErr bool
	}{
		{expr: "2+2", want: 4},
		{expr: "2 + 3 * 4", want: 14},
		{expr: "(2 + 3) * 4", want: 20},
		{expr: "10 / 4", want: 2.5},
		{expr: "2^10", want: 1024},
		{expr: "2^3^2", want: 512}, // right-associative
		{expr: "-5 + 3", want: -2},
		{expr: "-(2 + 3)", want: -5},
		{expr: "--4", want: 4},
		{expr: "3.5 * 2", want: 7},
		{expr: "  1 +  1  ", want: 2},
		{expr: "4^-1", want: 0.25},
		{expr: "1/3", want: 1.0 / 3.0},
		{expr: "", wantErr: true},
		{expr: "1/0", wantErr: true},
		{expr: "2 +", wantErr: true},
		{expr: "(1 + 2", wantErr: true},
		{expr: "1 + 2)", wantErr: true},
		{expr: "import os", wantErr: true},
		{expr: "2 ** 3", wantErr: true},
		{expr: "abs(-1)", wantErr: true},
		{expr: "1..2", wantErr: true},
		{expr: "0^-1", wantErr: true}, // infinity
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := mathexpr.Eval(tt.expr)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Eval(%q) expected error, got %v", tt.expr, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Eval(%q) unexpected error: %v", tt.expr, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}
