package keyvault

import "github.com/quantumpurse/keyvault-go/variant"

// defaultVariant matches the original deployment default.
const defaultVariant = variant.Shake128F

// vaultConfig holds configuration for the vault. It is immutable after
// New returns; the signature variant in particular is fixed for the
// lifetime of a vault because switching it would orphan every derived
// account.
type vaultConfig struct {
	variant            variant.ID
	minPasswordEntropy uint32
}

// Option configures the vault.
type Option func(*vaultConfig)

// WithVariant selects the signature parameter set for this vault.
// Default: variant.Shake128F.
func WithVariant(id variant.ID) Option {
	return func(c *vaultConfig) {
		c.variant = id
	}
}

// WithMinPasswordEntropy makes Init and ImportPhrase reject passwords
// whose estimated entropy is below bits. Zero (the default) disables
// the gate; callers may still invoke EstimatePasswordEntropy themselves.
func WithMinPasswordEntropy(bits uint32) Option {
	return func(c *vaultConfig) {
		c.minPasswordEntropy = bits
	}
}
