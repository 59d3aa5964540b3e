package storage

import (
	"context"
	"errors"
)

// Store é o contrato de persistência chave-valor usado pelo registro durável da sessão.
// Escritas são last-write-wins; Get de uma chave inexistente devolve ErrNotFound.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// ErrNotFound é retornado quando a chave não existe.
var ErrNotFound = errors.New("storage: chave não encontrada")

// ErrCorrupt é retornado quando o valor existe mas não pode ser lido
// (por exemplo, um valor selado que não decifra com a chave atual).
var ErrCorrupt = errors.New("storage: valor corrompido")
