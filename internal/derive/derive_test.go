package derive

import (
	"bytes"
	"errors"
	"testing"

	"github.com/quantumpurse/keyvault-go/variant"
)

func TestPath(t *testing.T) {
	tests := []struct {
		index uint32
		want  string
	}{
		{0, "ckb/quantum-purse/sphincs-plus/0"},
		{7, "ckb/quantum-purse/sphincs-plus/7"},
		{4294967295, "ckb/quantum-purse/sphincs-plus/4294967295"},
	}

	for _, tt := range tests {
		if got := Path(tt.index); got != tt.want {
			t.Errorf("Path(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestChildKey_Deterministic(t *testing.T) {
	master := make([]byte, variant.Shake128F.EntropySize())

	pub1, priv1, err := ChildKey(master, 0, variant.Shake128F)
	if err != nil {
		t.Fatalf("ChildKey() error = %v", err)
	}
	defer priv1.Wipe()

	pub2, priv2, err := ChildKey(master, 0, variant.Shake128F)
	if err != nil {
		t.Fatalf("ChildKey() error = %v", err)
	}
	defer priv2.Wipe()

	if !bytes.Equal(pub1, pub2) {
		t.Error("same inputs produced different public keys")
	}
	if !bytes.Equal(priv1.Bytes(), priv2.Bytes()) {
		t.Error("same inputs produced different private keys")
	}
}

func TestChildKey_IndexSeparation(t *testing.T) {
	master := make([]byte, variant.Shake128F.EntropySize())

	pub0, priv0, err := ChildKey(master, 0, variant.Shake128F)
	if err != nil {
		t.Fatalf("ChildKey(0) error = %v", err)
	}
	defer priv0.Wipe()

	pub1, priv1, err := ChildKey(master, 1, variant.Shake128F)
	if err != nil {
		t.Fatalf("ChildKey(1) error = %v", err)
	}
	defer priv1.Wipe()

	if bytes.Equal(pub0, pub1) {
		t.Error("indices 0 and 1 derived the same public key")
	}
	if bytes.Equal(priv0.Bytes(), priv1.Bytes()) {
		t.Error("indices 0 and 1 derived the same private key")
	}
}

func TestChildKey_MasterSeparation(t *testing.T) {
	masterA := make([]byte, variant.Shake128F.EntropySize())
	masterB := make([]byte, variant.Shake128F.EntropySize())
	masterB[0] = 1

	pubA, privA, err := ChildKey(masterA, 0, variant.Shake128F)
	if err != nil {
		t.Fatal(err)
	}
	privA.Wipe()

	pubB, privB, err := ChildKey(masterB, 0, variant.Shake128F)
	if err != nil {
		t.Fatal(err)
	}
	privB.Wipe()

	if bytes.Equal(pubA, pubB) {
		t.Error("different master secrets derived the same key")
	}
}

func TestChildKey_MasterLength(t *testing.T) {
	tests := []struct {
		name   string
		master []byte
		id     variant.ID
	}{
		{"too short", make([]byte, 32), variant.Shake128F},
		{"wrong class", make([]byte, 64), variant.Shake256F}, // 256 class needs 96
		{"empty", nil, variant.Shake128F},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ChildKey(tt.master, 0, tt.id)
			if !errors.Is(err, ErrMasterLength) {
				t.Errorf("ChildKey() = %v, want ErrMasterLength", err)
			}
		})
	}
}

func TestChildKey_UnknownVariant(t *testing.T) {
	_, _, err := ChildKey(make([]byte, 64), 0, variant.ID(0))
	if !errors.Is(err, variant.ErrUnknownVariant) {
		t.Errorf("ChildKey() = %v, want ErrUnknownVariant", err)
	}
}

func TestChildKey_KeySizes(t *testing.T) {
	for _, id := range []variant.ID{variant.Shake128F, variant.Sha2192S, variant.Shake256F} {
		t.Run(id.String(), func(t *testing.T) {
			master := make([]byte, id.EntropySize())
			pub, priv, err := ChildKey(master, 3, id)
			if err != nil {
				t.Fatalf("ChildKey() error = %v", err)
			}
			defer priv.Wipe()

			if len(pub) != id.PublicKeySize() {
				t.Errorf("public key length = %d, want %d", len(pub), id.PublicKeySize())
			}
			if priv.Len() != id.PrivateKeySize() {
				t.Errorf("private key length = %d, want %d", priv.Len(), id.PrivateKeySize())
			}
		})
	}
}
