package utils

/*

go test -run 'TestParseAmount|TestRound1' -v ./internal/utils -count=1

*/

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"", 0}, {" ", 0}, {"nan", 0}, {"None", 0}, {"-", 0},
		{"1000", 1000}, {"1,250,000", 1250000}, {" 42.5 ", 42.5},
		{"abc", 0}, {"-500", -500},
	}
	for _, tc := range cases {
		if got := ParseAmount(tc.in); got != tc.want {
			t.Fatalf("in=%q want=%v got=%v", tc.in, tc.want, got)
		}
	}
}

func TestRound1(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{90.04, 90.0}, {90.05, 90.1}, {89.99, 90.0}, {0, 0}, {33.333, 33.3},
	}
	for _, tc := range cases {
		if got := Round1(tc.in); got != tc.want {
			t.Fatalf("in=%v want=%v got=%v", tc.in, tc.want, got)
		}
	}
}
