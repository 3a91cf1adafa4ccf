package pathcache

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Entry is one cached entity→path association. Paths are stored for
// the OS that created them; Root names the storage they live under.
type Entry struct {
	EntityType string
	EntityID   int
	EntityName string
	Root       string
	Path       string
}

// Cache provides access to one project's path cache database.
type Cache struct {
	db *sql.DB
}

// Open creates or opens the path cache database at the given path,
// creating parent directories and the schema as needed. Idempotent.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o775); err != nil {
		return nil, fmt.Errorf("failed to create path cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open path cache: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to path cache: %w", err)
	}

	// One local writer at a time; the file sits on shared studio storage.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure path cache: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply path cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Add records an entity→path association. Adding an identical entry
// again is a no-op.
func (c *Cache) Add(ctx context.Context, e Entry) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO path_cache (entity_type, entity_id, entity_name, root, path)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(entity_type, entity_id, root, path) DO NOTHING
	`, e.EntityType, e.EntityID, e.EntityName, e.Root, e.Path)
	if err != nil {
		return fmt.Errorf("add path cache entry: %w", err)
	}
	return nil
}

// PathsForEntity returns every cached path for an entity, in insertion
// order.
func (c *Cache) PathsForEntity(ctx context.Context, entityType string, entityID int) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT path FROM path_cache
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY rowid
	`, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("query path cache: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan path cache row: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// EntityForPath returns the entity a path was created for, or nil when
// the path is not cached.
func (c *Cache) EntityForPath(ctx context.Context, root, path string) (*Entry, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT entity_type, entity_id, entity_name, root, path FROM path_cache
		WHERE root = ? AND path = ?
		ORDER BY rowid LIMIT 1
	`, root, path)

	var e Entry
	err := row.Scan(&e.EntityType, &e.EntityID, &e.EntityName, &e.Root, &e.Path)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query path cache: %w", err)
	}
	return &e, nil
}
