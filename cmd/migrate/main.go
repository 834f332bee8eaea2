// Command migrate applies the SQL files under migrations/ in lexical order,
// tracking applied files in schema_migrations. Each pending file runs inside
// its own transaction.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"sort"

	"htxagri/internal/config"
	"htxagri/internal/db"

	"github.com/jmoiron/sqlx"
)

func main() {
	dir := flag.String("dir", "migrations", "directory containing *.sql migration files")
	flag.Parse()

	cfg := config.Load()
	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	if err := run(pool, *dir); err != nil {
		log.Fatal(err)
	}
}

func run(pool *sqlx.DB, dir string) error {
	if _, err := pool.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		filename text PRIMARY KEY,
		applied_at timestamptz NOT NULL DEFAULT now()
	)`); err != nil {
		return err
	}

	pending, err := pendingFiles(pool, dir)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		log.Println("schema up to date")
		return nil
	}

	for _, file := range pending {
		if err := apply(pool, file); err != nil {
			return err
		}
		log.Printf("applied %s", filepath.Base(file))
	}
	return nil
}

func pendingFiles(pool *sqlx.DB, dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var applied []string
	if err := pool.Select(&applied, `SELECT filename FROM schema_migrations`); err != nil {
		return nil, err
	}
	done := make(map[string]struct{}, len(applied))
	for _, name := range applied {
		done[name] = struct{}{}
	}

	var pending []string
	for _, file := range files {
		if _, ok := done[filepath.Base(file)]; !ok {
			pending = append(pending, file)
		}
	}
	return pending, nil
}

func apply(pool *sqlx.DB, file string) error {
	content, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	tx, err := pool.Beginx()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(string(content)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations (filename) VALUES ($1)`, filepath.Base(file)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
