// Package kdf wraps scrypt with the two fixed cost presets used by the
// vault: a high-cost preset for password-based encryption keys and a
// cheaper preset for child-key derivation from high-entropy master
// secrets.
package kdf

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/scrypt"

	"github.com/quantumpurse/keyvault-go/internal/securemem"
)

// ErrInvalidParams is returned when scrypt cost parameters are out of
// range. It is fatal: the vault refuses construction.
var ErrInvalidParams = errors.New("invalid scrypt parameters")

// Params holds scrypt cost parameters. N is expressed as LogN, so the
// work factor is 1<<LogN.
type Params struct {
	LogN   uint8
	R      int
	P      int
	KeyLen int
}

// Encryption is the preset used whenever a password is the only entropy
// source protecting a payload at rest. log_n=14 matches the scrypt
// paper's interactive-login recommendation.
var Encryption = Params{LogN: 14, R: 8, P: 1, KeyLen: 32}

// Derivation is the preset used to derive child secrets from a master
// secret that already carries at least 256 bits of entropy. The
// attacker's work factor is dominated by the master entropy, not by
// this call, so the cost is deliberately lower.
var Derivation = Params{LogN: 10, R: 8, P: 1, KeyLen: 32}

// Validate rejects cost parameters scrypt itself would refuse.
func (p Params) Validate() error {
	if p.LogN == 0 || p.LogN >= 32 {
		return fmt.Errorf("%w: log_n %d out of range", ErrInvalidParams, p.LogN)
	}
	if p.R <= 0 || p.P <= 0 {
		return fmt.Errorf("%w: r=%d p=%d", ErrInvalidParams, p.R, p.P)
	}
	if uint64(p.R)*uint64(p.P) >= 1<<30 {
		return fmt.Errorf("%w: r*p too large", ErrInvalidParams)
	}
	if p.KeyLen <= 0 {
		return fmt.Errorf("%w: key length %d", ErrInvalidParams, p.KeyLen)
	}
	return nil
}

// Derive runs scrypt over secret and salt with the given parameters.
// It is pure and deterministic: identical inputs always produce
// identical output. Wiping the secret afterwards is the caller's
// responsibility.
func Derive(secret, salt []byte, p Params) (*securemem.Buffer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	key, err := scrypt.Key(secret, salt, 1<<p.LogN, p.R, p.P, p.KeyLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	out := securemem.FromBytes(key)
	securemem.Zero(key)
	return out, nil
}
