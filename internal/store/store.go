package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoDocument is returned by Load when no document exists under the key.
// Callers treat it as "fall back to defaults", never as a failure.
var ErrNoDocument = errors.New("no document for key")

// Store reads and writes one opaque JSON document per domain key.
//
// Write failures must not break a mutation path: typed callers log and
// continue (fire-and-forget), matching the storage semantics this system was
// specified against.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Document is one persisted JSON blob, keyed by domain name (e.g. "products",
// "coupons", "cart:cust_123").
type Document struct {
	Key       string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	Value     string    `gorm:"type:TEXT NOT NULL"`
	UpdatedAt time.Time `gorm:"type:DATETIME NOT NULL"`
}

// TableName implements the GORM tabler interface.
func (Document) TableName() string { return "documents" }

// SQLiteStore is the production Store, backed by the documents table.
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore wraps a GORM handle opened via OpenSQLite.
func NewSQLiteStore(db *gorm.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load returns the raw document stored under key, or ErrNoDocument.
func (s *SQLiteStore) Load(ctx context.Context, key string) ([]byte, error) {
	var doc Document
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc.Value), nil
}

// Save upserts the document under key.
func (s *SQLiteStore) Save(ctx context.Context, key string, value []byte) error {
	doc := Document{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&doc).Error
}

// NullStore is the degraded Store used when no persistence is available:
// reads are always empty and writes are silently discarded. This mirrors the
// original system's behavior outside a browser environment and is handy in
// tests.
type NullStore struct{}

// Load always reports an absent document.
func (NullStore) Load(context.Context, string) ([]byte, error) { return nil, ErrNoDocument }

// Save discards the value.
func (NullStore) Save(context.Context, string, []byte) error { return nil }
