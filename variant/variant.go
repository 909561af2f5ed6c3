// Package variant is the closed catalog of the twelve SLH-DSA (FIPS 205,
// formerly SPHINCS+) parameter sets supported by the vault. Each entry
// pins the constants a vault needs before any key exists: the native
// secret length, the security and speed classes, and the mnemonic
// entropy size. Dispatch to the underlying signature scheme is an
// exhaustive switch; there is no open extension point.
package variant

import (
	"errors"
	"fmt"

	"github.com/cloudflare/circl/sign"
	"github.com/cloudflare/circl/sign/schemes"
)

// ID identifies one parameter set. The numeric values start at 48 and
// are wire-compatible with the original catalog; they must never be
// renumbered once vaults exist.
type ID uint8

const (
	Sha2128F ID = 48 + iota
	Sha2128S
	Sha2192F
	Sha2192S
	Sha2256F
	Sha2256S
	Shake128F
	Shake128S
	Shake192F
	Shake192S
	Shake256F
	Shake256S
)

// SecurityClass groups variants by native secret length N.
type SecurityClass uint8

const (
	// Low is the 128-bit class, N = 16.
	Low SecurityClass = iota
	// Medium is the 192-bit class, N = 24.
	Medium
	// High is the 256-bit class, N = 32.
	High
)

// SpeedClass is the fast/small trade-off within a security class.
type SpeedClass uint8

const (
	// Fast variants sign quickly and produce larger signatures.
	Fast SpeedClass = iota
	// Small variants produce compact signatures at higher signing cost.
	Small
)

// ErrUnknownVariant is returned for an ID outside the catalog.
var ErrUnknownVariant = errors.New("unknown signature variant")

// ErrSeedLength is returned when a keygen seed does not match the
// variant's seed size.
var ErrSeedLength = errors.New("seed length does not match variant")

// ErrKeyLength is returned when key bytes do not match the variant's
// native sizes.
var ErrKeyLength = errors.New("key length does not match variant")

// All lists the twelve catalog entries in identifier order.
func All() []ID {
	return []ID{
		Sha2128F, Sha2128S, Sha2192F, Sha2192S, Sha2256F, Sha2256S,
		Shake128F, Shake128S, Shake192F, Shake192S, Shake256F, Shake256S,
	}
}

// Valid reports whether id is one of the twelve catalog entries.
func (id ID) Valid() bool {
	return id >= Sha2128F && id <= Shake256S
}

func (id ID) String() string {
	switch id {
	case Sha2128F:
		return "Sha2128F"
	case Sha2128S:
		return "Sha2128S"
	case Sha2192F:
		return "Sha2192F"
	case Sha2192S:
		return "Sha2192S"
	case Sha2256F:
		return "Sha2256F"
	case Sha2256S:
		return "Sha2256S"
	case Shake128F:
		return "Shake128F"
	case Shake128S:
		return "Shake128S"
	case Shake192F:
		return "Shake192F"
	case Shake192S:
		return "Shake192S"
	case Shake256F:
		return "Shake256F"
	case Shake256S:
		return "Shake256S"
	default:
		return fmt.Sprintf("variant.ID(%d)", uint8(id))
	}
}

// schemeName maps an ID to its FIPS 205 scheme name. The switch is the
// single dispatch point of the catalog and must stay exhaustive.
func (id ID) schemeName() string {
	switch id {
	case Sha2128F:
		return "SLH-DSA-SHA2-128f"
	case Sha2128S:
		return "SLH-DSA-SHA2-128s"
	case Sha2192F:
		return "SLH-DSA-SHA2-192f"
	case Sha2192S:
		return "SLH-DSA-SHA2-192s"
	case Sha2256F:
		return "SLH-DSA-SHA2-256f"
	case Sha2256S:
		return "SLH-DSA-SHA2-256s"
	case Shake128F:
		return "SLH-DSA-SHAKE-128f"
	case Shake128S:
		return "SLH-DSA-SHAKE-128s"
	case Shake192F:
		return "SLH-DSA-SHAKE-192f"
	case Shake192S:
		return "SLH-DSA-SHAKE-192s"
	case Shake256F:
		return "SLH-DSA-SHAKE-256f"
	case Shake256S:
		return "SLH-DSA-SHAKE-256s"
	default:
		return ""
	}
}

func (id ID) scheme() (sign.Scheme, error) {
	name := id.schemeName()
	if name == "" {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVariant, uint8(id))
	}
	sch := schemes.ByName(name)
	if sch == nil {
		return nil, fmt.Errorf("%w: %s not available", ErrUnknownVariant, name)
	}
	return sch, nil
}

// SecurityClass returns the variant's security class.
func (id ID) SecurityClass() SecurityClass {
	switch id {
	case Sha2128F, Sha2128S, Shake128F, Shake128S:
		return Low
	case Sha2192F, Sha2192S, Shake192F, Shake192S:
		return Medium
	default:
		return High
	}
}

// SpeedClass returns the variant's fast/small trade-off.
func (id ID) SpeedClass() SpeedClass {
	switch id {
	case Sha2128F, Sha2192F, Sha2256F, Shake128F, Shake192F, Shake256F:
		return Fast
	default:
		return Small
	}
}

// SecretLen returns the variant's native secret parameter N in bytes.
func (id ID) SecretLen() int {
	switch id.SecurityClass() {
	case Low:
		return 16
	case Medium:
		return 24
	default:
		return 32
	}
}

// EntropySize returns the master entropy size for this variant: two
// 32-byte mnemonic chunks (64) for the 128-bit class, three (96) for
// the larger classes. It is fixed by the mnemonic chunking, not by the
// seed size; derivation expands master entropy into a seed of whatever
// length the scheme requires.
func (id ID) EntropySize() int {
	if id.SecurityClass() == Low {
		return 64
	}
	return 96
}

// SeedSize returns the keygen seed length the scheme consumes: 4*N,
// matching the serialized private key.
func (id ID) SeedSize() int {
	return 4 * id.SecretLen()
}

// PublicKeySize returns the serialized public key length.
func (id ID) PublicKeySize() int {
	return 2 * id.SecretLen()
}

// PrivateKeySize returns the serialized private key length.
func (id ID) PrivateKeySize() int {
	return 4 * id.SecretLen()
}

// SignatureSize returns the signature length for this variant.
func (id ID) SignatureSize() int {
	sch, err := id.scheme()
	if err != nil {
		return 0
	}
	return sch.SignatureSize()
}

// KeyGenFromSeed deterministically produces a key pair from a seed of
// exactly SeedSize() bytes. Same seed, same key pair.
func (id ID) KeyGenFromSeed(seed []byte) (pub, priv []byte, err error) {
	sch, err := id.scheme()
	if err != nil {
		return nil, nil, err
	}
	if len(seed) != sch.SeedSize() {
		return nil, nil, fmt.Errorf("%w: got %d, want %d", ErrSeedLength, len(seed), sch.SeedSize())
	}

	pubKey, privKey := sch.DeriveKey(seed)
	pub, err = pubKey.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("marshal public key: %w", err)
	}
	priv, err = privKey.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("marshal private key: %w", err)
	}
	return pub, priv, nil
}

// Sign produces a signature over message with a serialized private key.
// The caller owns the private key bytes and wipes them afterwards.
func (id ID) Sign(priv, message []byte) ([]byte, error) {
	sch, err := id.scheme()
	if err != nil {
		return nil, err
	}
	if len(priv) != sch.PrivateKeySize() {
		return nil, fmt.Errorf("%w: private key got %d, want %d", ErrKeyLength, len(priv), sch.PrivateKeySize())
	}
	key, err := sch.UnmarshalBinaryPrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("load private key: %w", err)
	}
	return sch.Sign(key, message, nil), nil
}

// Verify checks a signature over message with a serialized public key.
func (id ID) Verify(pub, message, sig []byte) (bool, error) {
	sch, err := id.scheme()
	if err != nil {
		return false, err
	}
	if len(pub) != sch.PublicKeySize() {
		return false, fmt.Errorf("%w: public key got %d, want %d", ErrKeyLength, len(pub), sch.PublicKeySize())
	}
	key, err := sch.UnmarshalBinaryPublicKey(pub)
	if err != nil {
		return false, fmt.Errorf("load public key: %w", err)
	}
	return sch.Verify(key, message, sig, nil), nil
}
