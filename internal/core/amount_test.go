package core

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		out  float64
		want error
	}{
		{"1", 1, nil},
		{"42.50", 42.50, nil},
		{"42,50", 42.50, nil},
		{" 2.5 ", 2.5, nil},
		{"0.01", 0.01, nil},
		{"", 0, ErrAmountMissing},
		{"  ", 0, ErrAmountMissing},
		{"abc", 0, ErrAmountMissing},
		{"NaN", 0, ErrAmountMissing},
		{"Inf", 0, ErrAmountMissing},
		{"0", 0, ErrAmountNotPositive},
		{"-1", 0, ErrAmountNotPositive},
		{"-0.01", 0, ErrAmountNotPositive},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.want == nil {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
			continue
		}
		if !errors.Is(err, tc.want) {
			t.Fatalf("%q expected %v, got %v", tc.in, tc.want, err)
		}
	}
}
