package keyvault

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"

	"github.com/quantumpurse/keyvault-go/internal/aead"
	"github.com/quantumpurse/keyvault-go/internal/derive"
	"github.com/quantumpurse/keyvault-go/internal/kdf"
	"github.com/quantumpurse/keyvault-go/internal/mnemonic"
	"github.com/quantumpurse/keyvault-go/internal/securemem"
	"github.com/quantumpurse/keyvault-go/store"
	"github.com/quantumpurse/keyvault-go/variant"
)

// Vault is the hierarchical key-derivation and encryption engine. From
// one password-protected master secret it derives an unbounded sequence
// of independent SLH-DSA accounts, one per index, and protects every
// secret at rest with password-derived authenticated encryption.
//
// All cryptographic work is synchronous and self-contained; only the
// store collaborators may suspend, which is why every store-touching
// method takes a context. A Vault holds no mutable state between calls,
// so concurrent calls are safe as long as each owns its own buffers.
type Vault struct {
	cfg      vaultConfig
	masters  store.MasterStore
	accounts store.AccountStore
}

// New builds a vault over the given stores. It validates the fixed KDF
// presets and the configured variant up front; an invalid configuration
// is fatal and surfaces here, never later.
func New(masters store.MasterStore, accounts store.AccountStore, opts ...Option) (*Vault, error) {
	if masters == nil || accounts == nil {
		return nil, &ConfigurationError{Reason: "nil store"}
	}

	cfg := vaultConfig{variant: defaultVariant}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !cfg.variant.Valid() {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("variant %d", uint8(cfg.variant)),
			Err:    ErrUnknownVariant,
		}
	}
	for _, params := range []kdf.Params{kdf.Encryption, kdf.Derivation} {
		if err := params.Validate(); err != nil {
			return nil, &ConfigurationError{Reason: "KDF parameters", Err: ErrInvalidKDFParams}
		}
	}

	return &Vault{cfg: cfg, masters: masters, accounts: accounts}, nil
}

// Variant returns the signature parameter set this vault was built with.
func (v *Vault) Variant() variant.ID {
	return v.cfg.variant
}

// Init creates the master secret if none exists: it draws fresh entropy
// of the variant's required size, encrypts it under password and
// persists it. When a master secret is already present Init is a no-op,
// so it is safe to call on every startup. The caller wipes its own copy
// of the password.
func (v *Vault) Init(ctx context.Context, password []byte) error {
	if err := v.checkPassword(password); err != nil {
		return err
	}

	_, err := v.masters.GetMaster(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return wrapError(err)
	}

	entropy, err := securemem.Random(v.cfg.variant.EntropySize())
	if err != nil {
		return err
	}
	defer entropy.Wipe()

	payload, err := aead.Encrypt(password, entropy.Bytes())
	if err != nil {
		return wrapError(err)
	}
	return wrapError(v.masters.PutMaster(ctx, store.CipherPayload(payload)))
}

// ImportPhrase replaces the master secret with one recovered from a
// mnemonic phrase. The phrase must decode to entropy of exactly the
// variant's required size. Existing accounts derived from a previous
// master secret become unusable; callers typically Wipe first.
func (v *Vault) ImportPhrase(ctx context.Context, phrase string, password []byte) error {
	if err := v.checkPassword(password); err != nil {
		return err
	}

	entropy, err := mnemonic.Decode(phrase)
	if err != nil {
		return wrapError(err)
	}
	defer entropy.Wipe()

	if entropy.Len() != v.cfg.variant.EntropySize() {
		return &MnemonicError{
			Reason: fmt.Sprintf("phrase encodes %d bytes, variant %s needs %d",
				entropy.Len(), v.cfg.variant, v.cfg.variant.EntropySize()),
		}
	}

	payload, err := aead.Encrypt(password, entropy.Bytes())
	if err != nil {
		return wrapError(err)
	}
	return wrapError(v.masters.PutMaster(ctx, store.CipherPayload(payload)))
}

// ExportPhrase decrypts the master secret and encodes it as a mnemonic
// phrase. The returned string is sensitive; it is the caller's
// responsibility to keep it off screens and logs.
func (v *Vault) ExportPhrase(ctx context.Context, password []byte) (string, error) {
	entropy, err := v.masterEntropy(ctx, password)
	if err != nil {
		return "", err
	}
	defer entropy.Wipe()

	phrase, err := mnemonic.Encode(entropy.Bytes())
	if err != nil {
		return "", wrapError(err)
	}
	return phrase, nil
}

// GenerateAccount derives the next account in sequence, encrypts its
// private key under password and persists it. The index equals the
// current account count, so repeated calls produce the gapless sequence
// 0, 1, 2, ...
func (v *Vault) GenerateAccount(ctx context.Context, password []byte) (*Account, error) {
	entropy, err := v.masterEntropy(ctx, password)
	if err != nil {
		return nil, err
	}
	defer entropy.Wipe()

	existing, err := v.accounts.All(ctx)
	if err != nil {
		return nil, wrapError(err)
	}

	return v.deriveAndStore(ctx, entropy.Bytes(), uint32(len(existing)), password)
}

// Accounts returns all stored accounts sorted by index, regardless of
// the order the store delivers them in.
func (v *Vault) Accounts(ctx context.Context) ([]Account, error) {
	accounts, err := v.accounts.All(ctx)
	if err != nil {
		return nil, wrapError(err)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Index < accounts[j].Index
	})
	return accounts, nil
}

// Account looks up one account by its public identifier.
func (v *Vault) Account(ctx context.Context, publicIdentifier string) (*Account, error) {
	account, err := v.accounts.Get(ctx, publicIdentifier)
	if err != nil {
		return nil, wrapAccountError(err)
	}
	return account, nil
}

// PreviewAccounts derives the public identifiers for indices start
// through start+count-1 without persisting anything. It backs recovery
// scans, where a wallet probes which accounts have on-chain history
// before deciding how many to restore.
func (v *Vault) PreviewAccounts(ctx context.Context, password []byte, start, count uint32) ([]string, error) {
	entropy, err := v.masterEntropy(ctx, password)
	if err != nil {
		return nil, err
	}
	defer entropy.Wipe()

	// The index space ends at MaxUint32; a range reaching past it is
	// truncated rather than wrapped.
	end := uint64(start) + uint64(count)
	if end > 1<<32 {
		end = 1 << 32
	}

	identifiers := make([]string, 0, count)
	for i := uint64(start); i < end; i++ {
		pub, priv, err := derive.ChildKey(entropy.Bytes(), uint32(i), v.cfg.variant)
		if err != nil {
			return nil, wrapError(err)
		}
		priv.Wipe()
		identifiers = append(identifiers, hex.EncodeToString(pub))
	}
	return identifiers, nil
}

// RecoverAccounts derives and persists accounts for indices 0 through
// count-1. Accounts already present are left untouched because append
// treats duplicate identifiers as no-ops, so recovery is idempotent.
func (v *Vault) RecoverAccounts(ctx context.Context, password []byte, count uint32) ([]string, error) {
	entropy, err := v.masterEntropy(ctx, password)
	if err != nil {
		return nil, err
	}
	defer entropy.Wipe()

	identifiers := make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		account, err := v.deriveAndStore(ctx, entropy.Bytes(), i, password)
		if err != nil {
			return nil, err
		}
		identifiers = append(identifiers, account.PublicIdentifier)
	}
	return identifiers, nil
}

// Sign signs message with the account's private key. The key is
// recovered by decrypting its stored payload, never by re-running
// derivation, and is wiped before Sign returns.
func (v *Vault) Sign(ctx context.Context, password []byte, publicIdentifier string, message []byte) ([]byte, error) {
	account, err := v.accounts.Get(ctx, publicIdentifier)
	if err != nil {
		return nil, wrapAccountError(err)
	}

	priv, err := aead.Decrypt(password, aead.Payload(account.PriEnc))
	if err != nil {
		return nil, wrapError(err)
	}
	defer priv.Wipe()

	sig, err := v.cfg.variant.Sign(priv.Bytes(), message)
	if err != nil {
		return nil, wrapError(err)
	}
	return sig, nil
}

// Verify checks a signature against an account's public identifier. It
// needs no password: the identifier is the public key.
func (v *Vault) Verify(publicIdentifier string, message, sig []byte) (bool, error) {
	pub, err := hex.DecodeString(publicIdentifier)
	if err != nil {
		return false, fmt.Errorf("%w: public identifier", ErrCorruptedPayload)
	}
	ok, err := v.cfg.variant.Verify(pub, message, sig)
	if err != nil {
		return false, wrapError(err)
	}
	return ok, nil
}

// Wipe clears all stored accounts, and the master secret when the
// master store supports removal.
func (v *Vault) Wipe(ctx context.Context) error {
	if err := v.accounts.Clear(ctx); err != nil {
		return wrapError(err)
	}
	if mw, ok := v.masters.(interface {
		ClearMaster(context.Context) error
	}); ok {
		return wrapError(mw.ClearMaster(ctx))
	}
	return nil
}

// masterEntropy fetches and decrypts the master secret. The returned
// buffer is owned by the caller and must be wiped.
func (v *Vault) masterEntropy(ctx context.Context, password []byte) (*securemem.Buffer, error) {
	payload, err := v.masters.GetMaster(ctx)
	if err != nil {
		return nil, wrapMasterError(err)
	}
	entropy, err := aead.Decrypt(password, aead.Payload(*payload))
	if err != nil {
		return nil, wrapError(err)
	}
	return entropy, nil
}

// deriveAndStore derives one child key pair, encrypts the private key
// and appends the account. The store assigns the final index; a
// duplicate identifier leaves the stored collection unchanged.
func (v *Vault) deriveAndStore(ctx context.Context, entropy []byte, index uint32, password []byte) (*Account, error) {
	pub, priv, err := derive.ChildKey(entropy, index, v.cfg.variant)
	if err != nil {
		return nil, wrapError(err)
	}
	defer priv.Wipe()

	encrypted, err := aead.Encrypt(password, priv.Bytes())
	if err != nil {
		return nil, wrapError(err)
	}

	account := Account{
		PublicIdentifier: hex.EncodeToString(pub),
		PriEnc:           store.CipherPayload(encrypted),
	}
	assigned, err := v.accounts.Append(ctx, account)
	if err != nil {
		return nil, wrapError(err)
	}
	account.Index = assigned
	return &account, nil
}

// checkPassword applies the optional entropy gate.
func (v *Vault) checkPassword(password []byte) error {
	if v.cfg.minPasswordEntropy == 0 {
		return nil
	}
	bits, err := EstimatePasswordEntropy(password)
	if err != nil {
		return err
	}
	if bits < v.cfg.minPasswordEntropy {
		return fmt.Errorf("%w: %d bits, need %d", ErrWeakPassword, bits, v.cfg.minPasswordEntropy)
	}
	return nil
}
