package boltstore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/quantumpurse/keyvault-go/store"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "vault.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMasterRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, err := s.GetMaster(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetMaster() on empty store = %v, want ErrNotFound", err)
	}

	payload := store.CipherPayload{Salt: "00ff", IV: "0102", CipherText: "abcdef"}
	if err := s.PutMaster(ctx, payload); err != nil {
		t.Fatalf("PutMaster() error = %v", err)
	}

	got, err := s.GetMaster(ctx)
	if err != nil {
		t.Fatalf("GetMaster() error = %v", err)
	}
	if *got != payload {
		t.Errorf("GetMaster() = %+v, want %+v", got, payload)
	}
}

func TestAppend_IndexAndDuplicates(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	for i := 0; i < 4; i++ {
		index, err := s.Append(ctx, store.Account{
			PublicIdentifier: fmt.Sprintf("pub-%d", i),
			PriEnc:           store.CipherPayload{Salt: "aa"},
		})
		if err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		if index != uint32(i) {
			t.Errorf("Append() index = %d, want %d", index, i)
		}
	}

	// Duplicate append: silent no-op returning the stored index.
	index, err := s.Append(ctx, store.Account{
		PublicIdentifier: "pub-2",
		PriEnc:           store.CipherPayload{Salt: "bb"},
	})
	if err != nil {
		t.Fatalf("duplicate Append() error = %v", err)
	}
	if index != 2 {
		t.Errorf("duplicate Append() index = %d, want 2", index)
	}

	stored, err := s.Get(ctx, "pub-2")
	if err != nil {
		t.Fatal(err)
	}
	if stored.PriEnc.Salt != "aa" {
		t.Error("duplicate append replaced the stored record")
	}

	all, err := s.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Errorf("All() returned %d accounts, want 4", len(all))
	}
}

func TestGet_NotFound(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get() = %v, want ErrNotFound", err)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, err := s.Append(ctx, store.Account{PublicIdentifier: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	all, err := s.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("All() after Clear() returned %d accounts", len(all))
	}

	index, err := s.Append(ctx, store.Account{PublicIdentifier: "b"})
	if err != nil {
		t.Fatal(err)
	}
	if index != 0 {
		t.Errorf("first index after Clear() = %d, want 0", index)
	}
}

func TestClearMaster(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.PutMaster(ctx, store.CipherPayload{Salt: "00"}); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearMaster(ctx); err != nil {
		t.Fatalf("ClearMaster() error = %v", err)
	}
	if _, err := s.GetMaster(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetMaster() after ClearMaster() = %v, want ErrNotFound", err)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vault.db")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.PutMaster(ctx, store.CipherPayload{Salt: "persist"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Append(ctx, store.Account{PublicIdentifier: "survivor"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	master, err := reopened.GetMaster(ctx)
	if err != nil {
		t.Fatalf("GetMaster() after reopen error = %v", err)
	}
	if master.Salt != "persist" {
		t.Errorf("master salt = %q, want %q", master.Salt, "persist")
	}
	if _, err := reopened.Get(ctx, "survivor"); err != nil {
		t.Errorf("Get() after reopen error = %v", err)
	}
}
