package keyvault

import (
	"errors"
	"fmt"

	"github.com/quantumpurse/keyvault-go/internal/aead"
	"github.com/quantumpurse/keyvault-go/internal/derive"
	"github.com/quantumpurse/keyvault-go/internal/kdf"
	"github.com/quantumpurse/keyvault-go/internal/mnemonic"
	"github.com/quantumpurse/keyvault-go/store"
	"github.com/quantumpurse/keyvault-go/variant"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidKDFParams is returned when scrypt cost parameters are
	// invalid. It is fatal and surfaces at vault construction.
	ErrInvalidKDFParams = errors.New("invalid KDF parameters")

	// ErrUnknownVariant is returned when the configured signature
	// variant is not one of the twelve catalog entries.
	ErrUnknownVariant = errors.New("unknown signature variant")

	// ErrCorruptedPayload is returned when a stored payload fails hex
	// decoding. It indicates corrupted data at rest and is never retried.
	ErrCorruptedPayload = errors.New("stored payload is corrupted")

	// ErrAuthenticationFailed is returned on any AEAD tag mismatch.
	// A wrong password and tampered ciphertext are deliberately
	// indistinguishable so the error carries no oracle.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrDerivation is returned when seed or key material does not
	// match the configured variant's sizes. It is a programming or
	// data error, not a user mistake.
	ErrDerivation = errors.New("key derivation failed")

	// ErrMasterSecretNotFound is returned when no master secret has
	// been initialized or imported yet.
	ErrMasterSecretNotFound = errors.New("master secret not found")

	// ErrAccountNotFound is returned when no account matches the given
	// public identifier.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidMnemonic is returned when an imported phrase fails word
	// count or checksum validation. Recoverable: re-prompt the caller.
	ErrInvalidMnemonic = errors.New("invalid mnemonic phrase")

	// ErrWeakPassword is returned when a password fails the entropy
	// heuristic.
	ErrWeakPassword = errors.New("password too weak")
)

// KeyVaultError is implemented by all typed SDK errors.
type KeyVaultError interface {
	error
	KeyVaultError() // marker method
}

// ConfigurationError reports an invalid vault configuration. It is
// fatal: New refuses to build a vault from it.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// Unwrap returns the underlying error.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// KeyVaultError implements the KeyVaultError interface.
func (e *ConfigurationError) KeyVaultError() {}

// MnemonicError reports why an imported phrase was rejected.
type MnemonicError struct {
	Reason string
	Err    error
}

func (e *MnemonicError) Error() string {
	return fmt.Sprintf("invalid mnemonic: %s", e.Reason)
}

// Unwrap returns the underlying error.
func (e *MnemonicError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *MnemonicError) Is(target error) bool {
	return target == ErrInvalidMnemonic
}

// KeyVaultError implements the KeyVaultError interface.
func (e *MnemonicError) KeyVaultError() {}

// wrapError converts internal package errors to public errors so that
// errors.Is() checks work with the sentinels above.
func wrapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, aead.ErrAuthFailed):
		return ErrAuthenticationFailed
	case errors.Is(err, aead.ErrEncoding):
		return fmt.Errorf("%w: %v", ErrCorruptedPayload, err)
	case errors.Is(err, kdf.ErrInvalidParams):
		return &ConfigurationError{Reason: "KDF parameters", Err: ErrInvalidKDFParams}
	case errors.Is(err, variant.ErrUnknownVariant):
		return fmt.Errorf("%w: %v", ErrUnknownVariant, err)
	case errors.Is(err, variant.ErrSeedLength),
		errors.Is(err, variant.ErrKeyLength),
		errors.Is(err, derive.ErrMasterLength):
		return fmt.Errorf("%w: %v", ErrDerivation, err)
	case errors.Is(err, mnemonic.ErrWordCount),
		errors.Is(err, mnemonic.ErrChecksum),
		errors.Is(err, mnemonic.ErrEntropySize):
		return &MnemonicError{Reason: err.Error(), Err: err}
	}
	return err
}

// wrapMasterError additionally maps a missing store record to
// ErrMasterSecretNotFound.
func wrapMasterError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrMasterSecretNotFound
	}
	return wrapError(err)
}

// wrapAccountError additionally maps a missing store record to
// ErrAccountNotFound.
func wrapAccountError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrAccountNotFound
	}
	return wrapError(err)
}
