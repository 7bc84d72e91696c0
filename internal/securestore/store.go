// Package securestore layers the obfuscation codec over the key/value
// repository. Every logical key K occupies two physical slots:
// secure_K holds the ciphertext and key_K holds the base64-encoded
// transform key minted for that write.
package securestore

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/BAWimmer/lockbox/internal/codec"
	"github.com/BAWimmer/lockbox/internal/logging"
	"github.com/BAWimmer/lockbox/internal/repositories/keyvalue"
)

const (
	cipherPrefix = "secure_"
	keyPrefix    = "key_"
)

// Store writes and reads encrypted records. Both physical slots must be
// present for a read to succeed; a missing or undecipherable half reads
// as absent, never as an error.
type Store struct {
	kv    keyvalue.Store
	codec codec.Codec
	log   logging.Logger
}

func New(kv keyvalue.Store, c codec.Codec, log logging.Logger) *Store {
	return &Store{kv: kv, codec: c, log: log}
}

// Put encrypts value under a fresh transform key and writes both halves.
// The two writes are a two-step transaction: if the second write fails,
// the first is deleted so no half-written envelope is left behind.
func (s *Store) Put(ctx context.Context, key, value string) error {
	transformKey := s.codec.NewTransformKey()

	ciphertext, err := s.codec.Encrypt(value, transformKey)
	if err != nil {
		return fmt.Errorf("encrypt %s: %w", key, err)
	}

	if err := s.kv.Set(ctx, cipherPrefix+key, ciphertext); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}

	encodedKey := base64.StdEncoding.EncodeToString([]byte(transformKey))
	if err := s.kv.Set(ctx, keyPrefix+key, encodedKey); err != nil {
		// Roll the ciphertext back so the envelope stays consistent.
		if derr := s.kv.Delete(ctx, cipherPrefix+key); derr != nil {
			s.log.Error(ctx, "envelope rollback failed", "key", key, "error", derr)
		}
		return fmt.Errorf("store transform key for %s: %w", key, err)
	}

	return nil
}

// Get reads both halves and reconstructs the plaintext. Either half
// absent yields ("", nil). Malformed key or ciphertext material is
// logged and also reads as absent.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	ciphertext, err := s.kv.Get(ctx, cipherPrefix+key)
	if err != nil {
		return "", fmt.Errorf("retrieve %s: %w", key, err)
	}
	if ciphertext == "" {
		return "", nil
	}

	encodedKey, err := s.kv.Get(ctx, keyPrefix+key)
	if err != nil {
		return "", fmt.Errorf("retrieve transform key for %s: %w", key, err)
	}
	if encodedKey == "" {
		return "", nil
	}

	rawKey, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		s.log.Warn(ctx, "malformed transform key, treating record as absent", "key", key, "error", err)
		return "", nil
	}

	plaintext, err := s.codec.Decrypt(ciphertext, string(rawKey))
	if err != nil {
		s.log.Warn(ctx, "decryption failed, treating record as absent", "key", key, "error", err)
		return "", nil
	}
	return plaintext, nil
}

// Delete removes both halves of the envelope.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.kv.Delete(ctx, cipherPrefix+key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	if err := s.kv.Delete(ctx, keyPrefix+key); err != nil {
		return fmt.Errorf("delete transform key for %s: %w", key, err)
	}
	return nil
}
