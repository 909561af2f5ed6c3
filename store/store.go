// Package store defines the persistence contract between the vault core
// and its storage collaborator, plus the wire shapes that cross it. The
// core never reaches into storage internals; it only speaks these two
// interfaces, so implementations may be synchronous, embedded or remote.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested master secret or account is
// absent. It is an expected condition; the caller decides what to do.
var ErrNotFound = errors.New("record not found")

// CipherPayload is an encrypted secret at rest. All fields are
// hex-encoded: a 16-byte salt (32 hex chars), a 12-byte IV (24 hex
// chars), and the ciphertext with its trailing authentication tag.
type CipherPayload struct {
	Salt       string `json:"salt"`
	IV         string `json:"iv"`
	CipherText string `json:"cipher_text"`
}

// Account is one derived signature account. Index is assigned by the
// account store at insertion time and equals the record count at that
// moment, so indices are zero-based, gapless and strictly increasing.
type Account struct {
	Index            uint32        `json:"index"`
	PublicIdentifier string        `json:"public_identifier"`
	PriEnc           CipherPayload `json:"pri_enc"`
}

// MasterStore persists the single encrypted master secret under a fixed
// key. Put overwrites any existing record.
type MasterStore interface {
	GetMaster(ctx context.Context) (*CipherPayload, error)
	PutMaster(ctx context.Context, payload CipherPayload) error
}

// AccountStore persists derived accounts keyed by public identifier.
//
// Append assigns the account's index (current record count) and returns
// it. Appending an identifier that already exists is a silent no-op
// returning the stored record's index, never an error. All returns
// records in whatever order the backend delivers them; callers sort by
// Index.
type AccountStore interface {
	Get(ctx context.Context, publicIdentifier string) (*Account, error)
	Append(ctx context.Context, account Account) (uint32, error)
	All(ctx context.Context) ([]Account, error)
	Clear(ctx context.Context) error
}
