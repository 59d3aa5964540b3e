package storage

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// SealedStore cifra os valores (nacl/secretbox) antes de delegar ao Store interno.
// Um valor que não decifra é reportado como ErrCorrupt.
type SealedStore struct {
	inner Store
	key   [32]byte
}

// NewSealedStore deriva a chave com Argon2id a partir do segredo e do salt.
func NewSealedStore(inner Store, secret, salt string) (*SealedStore, error) {
	if secret == "" {
		return nil, errors.New("storage: segredo vazio para SealedStore")
	}
	if len(salt) < 8 {
		return nil, errors.New("storage: salt deve ter pelo menos 8 bytes")
	}

	s := &SealedStore{inner: inner}
	derived := argon2.IDKey([]byte(secret), []byte(salt), 1, 64*1024, 4, 32)
	copy(s.key[:], derived)
	return s, nil
}

func (s *SealedStore) Get(ctx context.Context, key string) (string, error) {
	raw, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}

	box, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(box) < nonceSize+secretbox.Overhead {
		return "", fmt.Errorf("%w: %q", ErrCorrupt, key)
	}

	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])

	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrCorrupt, key)
	}
	return string(plain), nil
}

func (s *SealedStore) Set(ctx context.Context, key, value string) error {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return fmt.Errorf("falha ao gerar nonce: %w", err)
	}

	box := secretbox.Seal(nonce[:], []byte(value), &nonce, &s.key)
	return s.inner.Set(ctx, key, base64.StdEncoding.EncodeToString(box))
}

func (s *SealedStore) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, key)
}
