package keyvault

import (
	"errors"
	"testing"
)

func TestEstimatePasswordEntropy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     uint32
	}{
		// 21 chars over the 94-symbol ASCII set: 21 * log2(94) = 137.6
		{"reference password", "CorrectHorseBattery9!", 138},
		// minimal password meeting all class requirements
		{"short mixed", "Aa1!", 26},
		// the space expands the charset to 95
		{"with space", "Correct Horse Battery9!", 151},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EstimatePasswordEntropy([]byte(tt.password))
			if err != nil {
				t.Fatalf("EstimatePasswordEntropy() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EstimatePasswordEntropy() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEstimatePasswordEntropy_NonASCII(t *testing.T) {
	// Any character outside the modeled classes widens the charset
	// assumption to a full byte.
	got, err := EstimatePasswordEntropy([]byte("Aa1!日本"))
	if err != nil {
		t.Fatalf("EstimatePasswordEntropy() error = %v", err)
	}
	// 6 runes * log2(256) = 48 bits
	if got != 48 {
		t.Errorf("EstimatePasswordEntropy() = %d, want 48", got)
	}
}

func TestEstimatePasswordEntropy_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"empty", ""},
		{"no uppercase", "correcthorse9!"},
		{"no lowercase", "CORRECTHORSE9!"},
		{"no digit", "CorrectHorse!"},
		{"no symbol", "CorrectHorse9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EstimatePasswordEntropy([]byte(tt.password))
			if !errors.Is(err, ErrWeakPassword) {
				t.Errorf("EstimatePasswordEntropy() = %v, want ErrWeakPassword", err)
			}
		})
	}
}

func TestEstimatePasswordEntropy_DoesNotMutateInput(t *testing.T) {
	password := []byte("CorrectHorseBattery9!")
	if _, err := EstimatePasswordEntropy(password); err != nil {
		t.Fatal(err)
	}
	if string(password) != "CorrectHorseBattery9!" {
		t.Error("input password was mutated")
	}
}
