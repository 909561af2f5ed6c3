// Package keyvault implements the key-derivation and encryption core of
// a post-quantum credential vault. From one high-entropy master secret
// it deterministically derives an unbounded sequence of independent
// SLH-DSA (FIPS 205) signature accounts, and it protects every secret at
// rest with password-derived authenticated encryption.
//
// # Algorithm Suite
//
//   - SLH-DSA (NIST FIPS 205): stateless hash-based signatures. All
//     twelve parameter sets are supported; a vault fixes one for its
//     lifetime via [WithVariant].
//
//   - scrypt: memory-hard key derivation, with a high-cost preset for
//     password-based encryption keys and a cheaper preset for child-key
//     derivation from the already-high-entropy master secret.
//
//   - AES-256-GCM: authenticated encryption for secrets at rest.
//
//   - ChaCha20: deterministic stream expanding one derived value into a
//     variant-sized keygen seed.
//
//   - BIP39: human-readable backup phrases; master secrets larger than
//     32 bytes are split into consecutive 24-word chunks.
//
// # Security Model
//
// Derivation is pure and deterministic: the same (master secret, index,
// variant) always yields the same key pair, so a vault is fully
// recoverable from its mnemonic phrase alone. Each index is domain
// separated by a per-index derivation path, so compromising one child
// key reveals nothing about its siblings. Signing decrypts the stored
// private key; it never re-runs derivation.
//
// Sensitive material lives in zero-on-release buffers throughout.
// Constructing a vault buffer from caller-supplied bytes copies them;
// scrubbing the original remains the caller's responsibility.
//
// Basic usage:
//
//	mem := store.NewMemory()
//	vault, err := keyvault.New(mem, mem, keyvault.WithVariant(variant.Shake128F))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	password := []byte("CorrectHorseBattery9!")
//	if err := vault.Init(ctx, password); err != nil {
//	    log.Fatal(err)
//	}
//
//	account, err := vault.GenerateAccount(ctx, password)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sig, err := vault.Sign(ctx, password, account.PublicIdentifier, message)
package keyvault
