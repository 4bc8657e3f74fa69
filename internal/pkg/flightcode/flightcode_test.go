package flightcode

import (
	"errors"
	"testing"

	"skyfare/internal/core/domain"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name        string
		destination string
		sequence    uint
		want        string
	}{
		{"three plus words", "United States of America", 5, "USA_5"},
		{"two words", "Dominican Republic", 5, "DOR_5"},
		{"one word", "Brazil", 0, "BRA_0"},
		{"short words filtered", "Isle of Man", 2, "IM_2"},
		{"four long words", "Saint Vincent and Grenadines", 7, "SVAG_7"},
		{"extra whitespace", "  New   Zealand ", 3, "NEZ_3"},
		{"lowercase input", "portugal", 12, "POR_12"},
		{"accented two words", "São Paulo", 9, "SÃP_9"},
		{"accented one word", "México", 4, "MÉX_4"},
		{"accented first letters", "Ürümqi China Route", 6, "ÜCR_6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.destination, tt.sequence)
			if err != nil {
				t.Fatalf("Generate(%q, %d) error = %v", tt.destination, tt.sequence, err)
			}
			if got != tt.want {
				t.Errorf("Generate(%q, %d) = %q, want %q", tt.destination, tt.sequence, got, tt.want)
			}
		})
	}
}

func TestGenerate_TooShort(t *testing.T) {
	tests := []struct {
		name        string
		destination string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"one short word", "Io"},
		{"two words first too short", "A Coruna"},
		{"two letters three bytes", "Ål"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.destination, 1)
			if !errors.Is(err, domain.ErrDestinationTooShort) {
				t.Errorf("Generate(%q) error = %v, want ErrDestinationTooShort", tt.destination, err)
			}
		})
	}
}

func TestNext(t *testing.T) {
	if got := Next(0); got != 1 {
		t.Errorf("Next(0) = %d, want 1", got)
	}
	if got := Next(41); got != 42 {
		t.Errorf("Next(41) = %d, want 42", got)
	}
}
