package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"gotour/config"
	"gotour/internal/pkg/database"
	"gotour/internal/pkg/storage"
)

// Aplica as migrações embutidas da tabela session_slots. A CLI já migra sozinha
// ao abrir o storage; este comando serve para bancos compartilhados (postgres)
// e para status/down.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Warning: .env file not found or failed to read. Loading configs from system environment only: %v", err)
	}

	cfg := config.LoadConfig()

	var backend string
	flag.StringVar(&backend, "backend", cfg.SessionBackend, "sqlite or postgres")
	flag.Parse()

	db, dialect, err := open(backend, cfg)
	if err != nil {
		log.Fatalf("goose: failed to connect to DB: %v\n", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("goose: failed to close DB: %v\n", err)
		}
	}()

	goose.SetBaseFS(storage.Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		log.Fatalf("goose: %v", err)
	}

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"} // Default to 'up' if no command is provided
	}

	command := arguments[0]
	var args []string
	if len(arguments) > 1 {
		args = arguments[1:]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := goose.RunContext(ctx, command, db, storage.MigrationsDir, args...); err != nil {
		log.Fatalf("goose %v: %v", command, err)
	}

	fmt.Printf("goose %s success\n", command)
}

func open(backend string, cfg *config.Config) (*sql.DB, string, error) {
	switch backend {
	case config.BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, "", fmt.Errorf("DATABASE_URL must be set for backend %s", backend)
		}
		db, err := database.NewPostgresDB(cfg.DatabaseURL)
		return db, "postgres", err
	case config.BackendSQLite:
		db, err := database.NewSQLiteDB(cfg.SessionDBPath)
		return db, "sqlite3", err
	default:
		return nil, "", fmt.Errorf("backend %q has no SQL schema", backend)
	}
}
