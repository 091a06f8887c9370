// migrate-to-postgres copies player and encounter state from SQLite to
// PostgreSQL.
//
// Usage:
//
//	go run ./cmd/migrate-to-postgres \
//	    -sqlite data/delve.db \
//	    -pg-host localhost \
//	    -pg-port 5432 \
//	    -pg-user delve \
//	    -pg-password delve \
//	    -pg-database delve
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	"github.com/hollowfall/delve/internal/storage"
)

func main() {
	sqlitePath := flag.String("sqlite", "data/delve.db", "Path to SQLite database")
	pgHost := flag.String("pg-host", "localhost", "PostgreSQL host")
	pgPort := flag.Int("pg-port", 5432, "PostgreSQL port")
	pgUser := flag.String("pg-user", "delve", "PostgreSQL user")
	pgPassword := flag.String("pg-password", "delve", "PostgreSQL password")
	pgDatabase := flag.String("pg-database", "delve", "PostgreSQL database name")
	pgSSLMode := flag.String("pg-sslmode", "disable", "PostgreSQL SSL mode")
	dryRun := flag.Bool("dry-run", false, "Show what would be migrated without making changes")
	flag.Parse()

	log.Println("SQLite to PostgreSQL Migration Tool")
	log.Println("====================================")

	log.Printf("Opening SQLite database: %s", *sqlitePath)
	src, err := storage.Open(storage.DialectSQLite, *sqlitePath)
	if err != nil {
		log.Fatalf("Failed to open SQLite database: %v", err)
	}
	defer src.Close()

	pgDSN := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		*pgHost, *pgPort, *pgUser, *pgPassword, *pgDatabase, *pgSSLMode,
	)
	log.Printf("Opening PostgreSQL database: %s@%s:%d/%s", *pgUser, *pgHost, *pgPort, *pgDatabase)
	dst, err := storage.Open(storage.DialectPostgres, pgDSN)
	if err != nil {
		log.Fatalf("Failed to open PostgreSQL database: %v", err)
	}
	defer dst.Close()

	if err := dst.DB().Ping(); err != nil {
		log.Fatalf("Failed to connect to PostgreSQL database: %v", err)
	}

	if *dryRun {
		log.Println("DRY RUN MODE - No changes will be made")
	}

	// Leases are transient and deliberately not migrated.
	tables := []struct {
		name string
		key  string
	}{
		{"players", "id"},
		{"encounters", "room_id"},
	}

	var totalRows int64
	for _, t := range tables {
		log.Printf("Migrating table: %s", t.name)
		count, err := migrateTable(src.DB(), dst.DB(), t.name, t.key, *dryRun)
		if err != nil {
			log.Fatalf("Failed to migrate %s: %v", t.name, err)
		}
		log.Printf("  Migrated %d rows", count)
		totalRows += count
	}

	log.Println("====================================")
	log.Printf("Migration complete! Total rows migrated: %d", totalRows)
	if *dryRun {
		log.Println("(DRY RUN - No actual changes were made)")
	}
}

// migrateTable copies every (key, data, updated_at) row, upserting on the key
// so the tool can be re-run safely.
func migrateTable(src, dst *sql.DB, table, keyCol string, dryRun bool) (int64, error) {
	rows, err := src.Query(fmt.Sprintf("SELECT %s, data, updated_at FROM %s", keyCol, table))
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", table, err)
	}
	defer rows.Close()

	upsert := fmt.Sprintf(`INSERT INTO %s (%s, data, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT(%s) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		table, keyCol, keyCol)

	var count int64
	for rows.Next() {
		var (
			key       string
			data      string
			updatedAt int64
		)
		if err := rows.Scan(&key, &data, &updatedAt); err != nil {
			return count, fmt.Errorf("scanning %s row: %w", table, err)
		}
		if dryRun {
			count++
			continue
		}
		if _, err := dst.Exec(upsert, key, data, updatedAt); err != nil {
			return count, fmt.Errorf("writing %s row %s: %w", table, key, err)
		}
		count++
	}
	return count, rows.Err()
}
