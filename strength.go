package keyvault

import (
	"fmt"
	"math"
	"unicode"

	"github.com/quantumpurse/keyvault-go/internal/securemem"
)

// EstimatePasswordEntropy estimates a password's strength in bits using
// a character-set model: length * log2(charset size). It is a heuristic
// gate for interactive flows, not a cryptographic measurement; it
// cannot detect dictionary words or reuse.
//
// Passwords must contain at least one uppercase letter, one lowercase
// letter, one digit and one punctuation character; violations return
// ErrWeakPassword. The input is copied into secure memory for the scan
// and wiped before returning; the caller wipes its own copy.
func EstimatePasswordEntropy(password []byte) (uint32, error) {
	buf := securemem.FromBytes(password)
	defer buf.Wipe()

	if buf.Len() == 0 {
		return 0, fmt.Errorf("%w: empty password", ErrWeakPassword)
	}

	var hasLower, hasUpper, hasDigit, hasPunct, hasSpace, hasOther bool
	runeCount := 0
	for _, r := range string(buf.Bytes()) {
		runeCount++
		switch {
		case r == ' ':
			hasSpace = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case r < unicode.MaxASCII && (unicode.IsPunct(r) || unicode.IsSymbol(r)):
			hasPunct = true
		default:
			hasOther = true
		}
	}

	switch {
	case !hasUpper:
		return 0, fmt.Errorf("%w: needs an uppercase letter", ErrWeakPassword)
	case !hasLower:
		return 0, fmt.Errorf("%w: needs a lowercase letter", ErrWeakPassword)
	case !hasDigit:
		return 0, fmt.Errorf("%w: needs a digit", ErrWeakPassword)
	case !hasPunct:
		return 0, fmt.Errorf("%w: needs a symbol", ErrWeakPassword)
	}

	charset := 0
	if hasOther {
		charset = 256
	} else {
		charset = 26 + 26 + 10 + 32 // lower, upper, digits, ASCII punctuation
		if hasSpace {
			charset++
		}
	}

	bits := float64(runeCount) * math.Log2(float64(charset))
	return uint32(math.Round(bits)), nil
}
