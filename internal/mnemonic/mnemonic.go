// Package mnemonic converts raw master entropy to and from human-readable
// recovery phrases. BIP39 caps a single phrase at 32 bytes of entropy, so
// larger secrets are split into consecutive 32-byte chunks, each encoded
// as an independent 24-word phrase and joined with single spaces.
package mnemonic

import (
	"errors"
	"fmt"
	"strings"

	bip39 "github.com/tyler-smith/go-bip39"

	"github.com/quantumpurse/keyvault-go/internal/securemem"
)

const (
	// ChunkSize is the entropy carried by one phrase chunk, in bytes.
	ChunkSize = 32
	// WordsPerChunk is the BIP39 word count for a 32-byte chunk.
	WordsPerChunk = 24
)

var (
	// ErrEntropySize is returned when entropy is not 64 or 96 bytes.
	ErrEntropySize = errors.New("entropy must be 64 or 96 bytes")

	// ErrWordCount is returned when a phrase does not hold exactly 48 or
	// 72 words.
	ErrWordCount = errors.New("phrase must hold exactly 48 or 72 words")

	// ErrChecksum is returned when any 24-word chunk fails BIP39
	// checksum validation.
	ErrChecksum = errors.New("mnemonic checksum invalid")
)

// Encode splits entropy into 32-byte chunks and encodes each as a BIP39
// phrase, joined in chunk order. Only the two supported master entropy
// sizes are accepted.
func Encode(entropy []byte) (string, error) {
	if len(entropy) != 2*ChunkSize && len(entropy) != 3*ChunkSize {
		return "", fmt.Errorf("%w: got %d", ErrEntropySize, len(entropy))
	}

	phrases := make([]string, 0, len(entropy)/ChunkSize)
	for off := 0; off < len(entropy); off += ChunkSize {
		phrase, err := bip39.NewMnemonic(entropy[off : off+ChunkSize])
		if err != nil {
			return "", fmt.Errorf("encode chunk at %d: %w", off, err)
		}
		phrases = append(phrases, phrase)
	}
	return strings.Join(phrases, " "), nil
}

// Decode reverses Encode, validating the checksum of every 24-word chunk
// independently. The returned buffer owns the recovered entropy; the
// caller wipes it when done.
func Decode(phrase string) (*securemem.Buffer, error) {
	words := strings.Fields(phrase)
	if len(words) != 2*WordsPerChunk && len(words) != 3*WordsPerChunk {
		return nil, fmt.Errorf("%w: got %d", ErrWordCount, len(words))
	}

	entropy := securemem.New(len(words) / WordsPerChunk * ChunkSize)
	for i := 0; i*WordsPerChunk < len(words); i++ {
		chunk := strings.Join(words[i*WordsPerChunk:(i+1)*WordsPerChunk], " ")
		raw, err := bip39.EntropyFromMnemonic(chunk)
		if err != nil {
			entropy.Wipe()
			return nil, fmt.Errorf("%w: chunk %d", ErrChecksum, i)
		}
		copy(entropy.Bytes()[i*ChunkSize:], raw)
		securemem.Zero(raw)
	}
	return entropy, nil
}
