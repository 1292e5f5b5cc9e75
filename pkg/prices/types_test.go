package prices

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChangePercent(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		expected float64
	}{
		{"increase rounds to one decimal", 32.5, 30.0, 8.3},
		{"decrease rounds to one decimal", 30.0, 32.5, -7.7},
		{"zero previous yields zero", 42.0, 0, 0},
		{"no change", 15.0, 15.0, 0},
		{"doubling", 20.0, 10.0, 100},
		{"half decimal rounds away from zero", 10.05, 10.0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.expected, ChangePercent(tt.current, tt.previous), 1e-9)
		})
	}
}

func TestRound2(t *testing.T) {
	require.InDelta(t, 10.67, Round2(10.666666), 1e-9)
	require.InDelta(t, 10.66, Round2(10.664), 1e-9)
	require.InDelta(t, 0.0, Round2(0), 1e-9)
	require.InDelta(t, -3.33, Round2(-3.333), 1e-9)
}

func TestTitleTurkish(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"DOMATES", "Domates"},
		{"DOMATES SERA", "Domates Sera"},
		{"İSPANAK", "Ispanak"}, // combining dot stripped after lowering İ
		{"ÇİLEK", "Çilek"},
		{"soğan taze", "Soğan Taze"},
		{"  biber   sivri ", "Biber Sivri"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.expected, TitleTurkish(tt.in))
		})
	}
}
