package pg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"autoelite/internal/application"
	"autoelite/internal/domain"
	"autoelite/internal/infrastructure/logx"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Collection names shared with the storefront's original data layout.
const (
	CollectionVehicles  = "vehicles"
	CollectionBookings  = "bookings"
	CollectionFinancing = "financingRequests"
	CollectionSettings  = "siteSettings"
)

// Docs is a JSONB document collection in the documents table.
type Docs struct {
	db         *DB
	collection string
}

func NewDocs(db *DB, collection string) *Docs { return &Docs{db: db, collection: collection} }

// StoredDoc is a document with its identity and insert time.
type StoredDoc struct {
	ID        string
	Data      domain.Document
	CreatedAt time.Time
}

func (c *Docs) log(op, sql string) *zap.Logger {
	return logx.L().With(
		zap.String("repo", c.collection),
		zap.String("operation", op),
		zap.String("sql", sql),
	)
}

func decode(raw []byte) (domain.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var d domain.Document
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return d, nil
}

func (c *Docs) Insert(ctx context.Context, id string, d domain.Document, createdAt time.Time) error {
	const ins = `
        INSERT INTO documents(collection, id, data, created_at, updated_at)
        VALUES ($1, $2, $3, $4, NOW())`
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	log := c.log("Insert", ins).With(zap.String("id", id))
	log.Debug("sql.exec_start")
	if _, err := c.db.conn(ctx).Exec(ctx, ins, c.collection, id, raw, createdAt); err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return err
	}
	log.Info("sql.exec_success")
	return nil
}

// Upsert writes d whether or not id exists.
func (c *Docs) Upsert(ctx context.Context, id string, d domain.Document) error {
	const up = `
        INSERT INTO documents(collection, id, data)
        VALUES ($1, $2, $3)
        ON CONFLICT (collection, id) DO UPDATE
          SET data=EXCLUDED.data, updated_at=NOW()`
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	log := c.log("Upsert", up).With(zap.String("id", id))
	if _, err := c.db.conn(ctx).Exec(ctx, up, c.collection, id, raw); err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return err
	}
	log.Info("sql.exec_success")
	return nil
}

// Replace overwrites an existing document.
func (c *Docs) Replace(ctx context.Context, id string, d domain.Document) error {
	const up = `
        UPDATE documents SET data=$3, updated_at=NOW()
        WHERE collection=$1 AND id=$2`
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return c.exec(ctx, "Replace", up, id, raw)
}

// SetField sets one top-level key of an existing document.
func (c *Docs) SetField(ctx context.Context, id, key string, value any) error {
	const up = `
        UPDATE documents SET data=jsonb_set(data, ARRAY[$3::text], $4::jsonb, true), updated_at=NOW()
        WHERE collection=$1 AND id=$2`
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode field: %w", err)
	}
	return c.exec(ctx, "SetField", up, id, key, raw)
}

// AddToNumber adds n to a numeric top-level key, treating a missing or
// non-numeric value as 0.
func (c *Docs) AddToNumber(ctx context.Context, id, key string, n int64) error {
	const up = `
        UPDATE documents
        SET data=jsonb_set(data, ARRAY[$3::text],
                 to_jsonb(CASE WHEN jsonb_typeof(data->($3::text)) = 'number' THEN (data->>($3::text))::numeric ELSE 0 END + $4::bigint),
                 true),
            updated_at=NOW()
        WHERE collection=$1 AND id=$2`
	return c.exec(ctx, "AddToNumber", up, id, key, n)
}

func (c *Docs) Delete(ctx context.Context, id string) error {
	const del = `DELETE FROM documents WHERE collection=$1 AND id=$2`
	return c.exec(ctx, "Delete", del, id)
}

func (c *Docs) exec(ctx context.Context, op, sql, id string, args ...any) error {
	log := c.log(op, sql).With(zap.String("id", id))
	log.Debug("sql.exec_start")
	tag, err := c.db.conn(ctx).Exec(ctx, sql, append([]any{c.collection, id}, args...)...)
	if err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		log.Warn("sql.exec_no_rows")
		return application.ErrNotFound
	}
	log.Info("sql.exec_success", zap.Int64("rows_affected", tag.RowsAffected()))
	return nil
}

func (c *Docs) Get(ctx context.Context, id string) (StoredDoc, error) {
	const q = `SELECT id, data, created_at FROM documents WHERE collection=$1 AND id=$2`
	log := c.log("Get", q).With(zap.String("id", id))
	var (
		out StoredDoc
		raw []byte
	)
	err := c.db.conn(ctx).QueryRow(ctx, q, c.collection, id).Scan(&out.ID, &raw, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debug("sql.query_no_rows")
		return StoredDoc{}, application.ErrNotFound
	}
	if err != nil {
		log.Error("sql.query_failed", zap.Error(err))
		return StoredDoc{}, err
	}
	if out.Data, err = decode(raw); err != nil {
		return StoredDoc{}, err
	}
	return out, nil
}

// List returns the whole collection, newest first.
func (c *Docs) List(ctx context.Context) ([]StoredDoc, error) {
	const q = `
        SELECT id, data, created_at FROM documents
        WHERE collection=$1
        ORDER BY created_at DESC, id`
	log := c.log("List", q)
	rows, err := c.db.conn(ctx).Query(ctx, q, c.collection)
	if err != nil {
		log.Error("sql.query_failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	var out []StoredDoc
	for rows.Next() {
		var (
			d   StoredDoc
			raw []byte
		)
		if err := rows.Scan(&d.ID, &raw, &d.CreatedAt); err != nil {
			return nil, err
		}
		if d.Data, err = decode(raw); err != nil {
			log.Warn("document.skipped", zap.String("id", d.ID), zap.Error(err))
			continue
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		log.Error("sql.query_failed", zap.Error(err))
		return nil, err
	}
	log.Debug("sql.query_success", zap.Int("rows", len(out)))
	return out, nil
}
