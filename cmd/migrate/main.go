package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/fleettrack/fleettrack/infrastructure/service/logger"
)

type direction string

const (
	up   direction = "up"
	down direction = "down"
)

type migrationFile struct {
	version int
	name    string
	path    string
	dir     direction
}

func main() {
	mode := flag.String("mode", "up", "migration mode: up or down")
	dir := flag.String("dir", "migrations", "directory holding NNN_name.up.sql / NNN_name.down.sql files")
	steps := flag.Int("steps", 0, "down only: number of migrations to revert, 0 reverts all")
	flag.Parse()

	_ = godotenv.Load()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	migLogger := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       os.Getenv("LOG_LEVEL"),
		Format:      "text",
		ServiceName: "fleettrack-migrate",
	})

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	if err := ensureSchemaMigrations(ctx, db); err != nil {
		log.Fatalf("failed to ensure schema_migrations: %v", err)
	}

	files, err := loadMigrationFiles(*dir)
	if err != nil {
		log.Fatalf("failed to load migrations: %v", err)
	}

	m := &migrator{db: db, logger: migLogger}
	switch direction(strings.ToLower(*mode)) {
	case up:
		n, err := m.up(ctx, files)
		if err != nil {
			log.Fatalf("migration up failed: %v", err)
		}
		migLogger.Info(ctx, "Migration up completed", map[string]interface{}{"applied": n})
	case down:
		n, err := m.down(ctx, files, *steps)
		if err != nil {
			log.Fatalf("migration down failed: %v", err)
		}
		migLogger.Info(ctx, "Migration down completed", map[string]interface{}{"reverted": n})
	default:
		log.Fatalf("unknown mode: %s", *mode)
	}
}

func ensureSchemaMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

// loadMigrationFiles returns up and down files sorted by ascending version.
func loadMigrationFiles(dir string) ([]migrationFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []migrationFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		f, err := parseMigrationName(e.Name())
		if err != nil {
			log.Printf("skip %s: %v", e.Name(), err)
			continue
		}
		f.path = filepath.Join(dir, e.Name())
		files = append(files, f)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].version < files[j].version })
	return files, nil
}

// parseMigrationName accepts 001_create_fleet_tables.up.sql and its .down.sql pair.
func parseMigrationName(filename string) (migrationFile, error) {
	lower := strings.ToLower(filename)

	var d direction
	var base string
	switch {
	case strings.HasSuffix(lower, ".up.sql"):
		d, base = up, filename[:len(filename)-len(".up.sql")]
	case strings.HasSuffix(lower, ".down.sql"):
		d, base = down, filename[:len(filename)-len(".down.sql")]
	default:
		return migrationFile{}, errors.New("not a .up.sql or .down.sql file")
	}

	parts := strings.SplitN(base, "_", 2)
	if len(parts) < 2 {
		return migrationFile{}, errors.New("missing version prefix")
	}
	version, err := strconv.Atoi(parts[0])
	if err != nil || version <= 0 {
		return migrationFile{}, fmt.Errorf("invalid version %q", parts[0])
	}
	return migrationFile{version: version, name: parts[1], dir: d}, nil
}

type migrator struct {
	db     *sql.DB
	logger logger.Logger
}

func (m *migrator) applied(ctx context.Context) (map[int]bool, error) {
	rows, err := m.db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int]bool{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out[v] = true
	}
	return out, rows.Err()
}

func (m *migrator) up(ctx context.Context, files []migrationFile) (int, error) {
	done, err := m.applied(ctx)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, f := range files {
		if f.dir != up || done[f.version] {
			continue
		}
		m.logger.Info(ctx, "Applying migration", map[string]interface{}{"version": f.version, "name": f.name})
		err := m.inTx(ctx, f.path, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations(version, name, applied_at) VALUES($1, $2, $3)", f.version, f.name, time.Now().UTC())
			return err
		})
		if err != nil {
			return n, fmt.Errorf("failed applying %s: %w", f.path, err)
		}
		n++
	}
	return n, nil
}

func (m *migrator) down(ctx context.Context, files []migrationFile, steps int) (int, error) {
	done, err := m.applied(ctx)
	if err != nil {
		return 0, err
	}

	var downs []migrationFile
	for _, f := range files {
		if f.dir == down && done[f.version] {
			downs = append(downs, f)
		}
	}
	sort.Slice(downs, func(i, j int) bool { return downs[i].version > downs[j].version })
	if steps > 0 && steps < len(downs) {
		downs = downs[:steps]
	}

	n := 0
	for _, f := range downs {
		m.logger.Info(ctx, "Reverting migration", map[string]interface{}{"version": f.version, "name": f.name})
		err := m.inTx(ctx, f.path, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations WHERE version = $1", f.version)
			return err
		})
		if err != nil {
			return n, fmt.Errorf("failed reverting %s: %w", f.path, err)
		}
		n++
	}
	return n, nil
}

// inTx runs the SQL file and the bookkeeping statement in one transaction.
func (m *migrator) inTx(ctx context.Context, path string, record func(tx *sql.Tx) error) error {
	script, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, string(script)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := record(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
