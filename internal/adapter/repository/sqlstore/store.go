package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/simaogato/advisordesk-backend/internal/domain"
)

// Dialect selects the placeholder style of the underlying driver
type Dialect int

const (
	// Postgres uses $1, $2, ... placeholders
	Postgres Dialect = iota
	// SQLite uses ? placeholders
	SQLite
)

// Store implements domain.DocumentStore over the documents table.
// The same SQL runs on PostgreSQL and SQLite; only placeholders differ.
type Store struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

// New creates a store over an open, migrated database
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect, now: time.Now}
}

type txKey struct{}

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn returns the transaction bound to ctx, if any
func (s *Store) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return s.db
}

// List returns the documents of kind, scoped to ownerID when it is set
func (s *Store) List(ctx context.Context, kind domain.Kind, ownerID string) ([]domain.Document, error) {
	query := `
		SELECT id, owner_id, body, updated_at
		FROM documents
		WHERE kind = ?
	`
	args := []any{string(kind)}
	if ownerID != "" {
		query += " AND owner_id = ?"
		args = append(args, ownerID)
	}
	query += " ORDER BY id"

	rows, err := s.conn(ctx).QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return docs, nil
}

// Get returns the document or (nil, nil) when it does not exist
func (s *Store) Get(ctx context.Context, kind domain.Kind, id string) (*domain.Document, error) {
	query := `
		SELECT id, owner_id, body, updated_at
		FROM documents
		WHERE kind = ? AND id = ?
	`

	row := s.conn(ctx).QueryRowContext(ctx, s.rebind(query), string(kind), id)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// Put upserts the document keyed by (kind, id)
func (s *Store) Put(ctx context.Context, kind domain.Kind, doc domain.Document) (domain.Document, error) {
	query := `
		INSERT INTO documents (kind, id, owner_id, body, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (kind, id) DO UPDATE SET
			owner_id = excluded.owner_id,
			body = excluded.body,
			updated_at = excluded.updated_at
	`

	doc.UpdatedAt = s.now().UTC()
	// Body goes over the wire as text so PostgreSQL can cast it to JSONB
	_, err := s.conn(ctx).ExecContext(ctx, s.rebind(query),
		string(kind),
		doc.ID,
		doc.OwnerID,
		string(doc.Body),
		doc.UpdatedAt,
	)
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to upsert document: %w", err)
	}

	return doc, nil
}

// Delete removes the document and reports whether it existed
func (s *Store) Delete(ctx context.Context, kind domain.Kind, id string) (bool, error) {
	query := `DELETE FROM documents WHERE kind = ? AND id = ?`

	res, err := s.conn(ctx).ExecContext(ctx, s.rebind(query), string(kind), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete document: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

// WithinTx runs fn in a database transaction carried by ctx.
// Nested calls join the outer transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (domain.Document, error) {
	var doc domain.Document
	var body []byte

	if err := row.Scan(&doc.ID, &doc.OwnerID, &body, &doc.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return doc, err
		}
		return doc, fmt.Errorf("failed to scan document: %w", err)
	}

	doc.Body = body
	return doc, nil
}

// rebind rewrites ? placeholders into the dialect's style
func (s *Store) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var (
	_ domain.DocumentStore = (*Store)(nil)
	_ domain.Transactor    = (*Store)(nil)
)
