package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"github.com/inigomartinez/carcassonne-spain-telegram-bot/internal/model"
	"github.com/inigomartinez/carcassonne-spain-telegram-bot/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

// SQLite implements Storage backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// RecordDelivery inserts a journal entry and populates its ID and SentAt.
func (s *SQLite) RecordDelivery(ctx context.Context, d *model.Delivery) error {
	now := time.Now().UTC().Format(timeLayout)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO deliveries (cycle, chat_id, ok, error_kind, error_text, sent_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		d.Cycle, d.ChatID, boolToInt(d.OK), d.ErrorKind, d.ErrorText, now,
	)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	d.ID = id
	d.SentAt, _ = time.Parse(timeLayout, now)
	return nil
}

// ListDeliveries returns the newest journal entries for a cycle, newest first.
func (s *SQLite) ListDeliveries(ctx context.Context, cycle string, limit int) ([]model.Delivery, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, cycle, chat_id, ok, error_kind, error_text, sent_at
		 FROM deliveries WHERE cycle = ? ORDER BY id DESC LIMIT ?`,
		cycle, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query deliveries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var deliveries []model.Delivery
	for rows.Next() {
		var d model.Delivery
		var ok int
		var sentAt string
		if err := rows.Scan(&d.ID, &d.Cycle, &d.ChatID, &ok, &d.ErrorKind, &d.ErrorText, &sentAt); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		d.OK = ok != 0
		d.SentAt, _ = time.Parse(timeLayout, sentAt)
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deliveries: %w", err)
	}
	return deliveries, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
