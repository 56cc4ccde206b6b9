package store

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	applog "shopledger/internal/log"
)

// Collection keys. The store is a flat key-value map: one JSON document per
// key, always replaced whole.
const (
	KeyProducts  = "products"
	KeySales     = "sales"
	KeyPurchases = "purchases"
)

// Store persists whole collections to a local sqlite file. Last write wins;
// there is no versioning or migration.
type Store struct{ DB *sqlx.DB }

// Open opens (or creates) the sqlite file at dsn and ensures the schema.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS collections(
  key TEXT PRIMARY KEY,
  body TEXT NOT NULL,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := db.Exec(schema)
	return err
}

// Load reads the collection stored under key into dst and reports whether a
// usable document was found. A missing row or an unparsable body leaves dst
// untouched and returns false: corruption is treated as "no data", never
// surfaced to the caller.
func (s *Store) Load(key string, dst any) bool {
	var body string
	if err := s.DB.Get(&body, `SELECT body FROM collections WHERE key = ?`, key); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			applog.Error(nil, "store.load.fail", err, map[string]any{"key": key})
		}
		return false
	}
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		applog.Error(nil, "store.load.corrupt", err, map[string]any{"key": key})
		return false
	}
	return true
}

// Save serializes v and replaces the document under key in one upsert.
// Durability is best effort: callers treat failure as "this session only".
func (s *Store) Save(key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(`
		INSERT INTO collections(key, body, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`, key, string(body))
	return err
}
