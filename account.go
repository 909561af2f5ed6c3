package keyvault

import "github.com/quantumpurse/keyvault-go/store"

// CipherPayload is an encrypted secret at rest: hex-encoded salt, IV and
// ciphertext (including the trailing authentication tag). Fresh salt and
// IV are drawn on every encryption and never reused.
type CipherPayload = store.CipherPayload

// Account is one derived signature account. The public identifier is
// the hex-encoded SLH-DSA public key; the private key is stored only in
// encrypted form.
type Account = store.Account
