// Package derive turns (master entropy, account index, variant) into a
// deterministic SLH-DSA key pair.
//
// One scrypt call (derivation preset) over the master entropy, salted
// with a per-index path string, yields a 32-byte value. That value keys
// a ChaCha20 stream with an all-zero nonce, and the first SeedSize()
// bytes of the stream feed the variant's seed-based keygen. A single KDF
// call keeps derivation cost independent of the variant's secret length,
// and the index-salted path gives domain separation: compromising one
// child key reveals nothing about its siblings.
package derive

import (
	"fmt"
	"strconv"

	"golang.org/x/crypto/chacha20"

	"github.com/quantumpurse/keyvault-go/internal/kdf"
	"github.com/quantumpurse/keyvault-go/internal/securemem"
	"github.com/quantumpurse/keyvault-go/variant"
)

// PathPrefix is the fixed domain-separation prefix. The decimal account
// index is appended to form the KDF salt. Changing it invalidates every
// previously derived key, so it is frozen.
const PathPrefix = "ckb/quantum-purse/sphincs-plus/"

// Path returns the domain-separation string for an account index.
func Path(index uint32) string {
	return PathPrefix + strconv.FormatUint(uint64(index), 10)
}

// ErrMasterLength is returned when master entropy does not match the
// variant's required entropy size. This is a data error, not a bad
// password: it means the stored master secret belongs to a different
// security class.
var ErrMasterLength = fmt.Errorf("master entropy length does not match variant")

// ChildKey derives the key pair for one account index. It is pure and
// deterministic: the same (master, index, v) always yields the same
// pair, which is what makes recovery-by-rescan possible. The returned
// private key buffer is owned by the caller and must be wiped after use.
func ChildKey(master []byte, index uint32, v variant.ID) ([]byte, *securemem.Buffer, error) {
	if !v.Valid() {
		return nil, nil, fmt.Errorf("%w: %d", variant.ErrUnknownVariant, uint8(v))
	}
	if len(master) != v.EntropySize() {
		return nil, nil, fmt.Errorf("%w: got %d, want %d for %s",
			ErrMasterLength, len(master), v.EntropySize(), v)
	}

	streamKey, err := kdf.Derive(master, []byte(Path(index)), kdf.Derivation)
	if err != nil {
		return nil, nil, err
	}
	defer streamKey.Wipe()

	seed := securemem.New(v.SeedSize())
	defer seed.Wipe()
	if err := expandSeed(streamKey.Bytes(), seed.Bytes()); err != nil {
		return nil, nil, err
	}

	pub, priv, err := v.KeyGenFromSeed(seed.Bytes())
	if err != nil {
		return nil, nil, err
	}

	privBuf := securemem.FromBytes(priv)
	securemem.Zero(priv)
	return pub, privBuf, nil
}

// expandSeed fills dst with the ChaCha20 keystream under key and a zero
// nonce. The key is unique per (master, index) pair, so the fixed nonce
// cannot repeat across distinct derivations.
func expandSeed(key, dst []byte) error {
	nonce := make([]byte, chacha20.NonceSize)
	stream, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return fmt.Errorf("seed stream: %w", err)
	}
	stream.XORKeyStream(dst, dst)
	return nil
}
