package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Driver SQLite (cgo)
	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteDB abre (ou cria) o arquivo SQLite local que guarda a sessão da CLI.
// O diretório pai é criado com permissão 0700, já que o arquivo contém o token.
func NewSQLiteDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("falha ao criar diretório do DB: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir o SQLite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao realizar o ping inicial no SQLite: %w", err)
	}

	// SQLite serializa escritas; uma conexão evita "database is locked".
	db.SetMaxOpenConns(1)

	return db, nil
}
