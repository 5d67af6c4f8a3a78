package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/Yizzii/fishbot/internal/fish"
	_ "modernc.org/sqlite"
)

// CatchLog records every landed fish so the leaderboard can rank the
// most valuable catches. It lives beside the JSON documents but is
// append-only history, not authoritative state.
type CatchLog struct {
	db         *sql.DB
	insertStmt *sql.Stmt
	topStmt    *sql.Stmt
}

func OpenCatchLog(dbPath string) (*CatchLog, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db path: %w", err)
	}

	// DSN notes:
	// - _pragma=busy_timeout sets a lock wait
	// - _pragma=journal_mode(WAL) enables the write-ahead log
	// - _pragma=synchronous(NORMAL) sets the disk synchronizing
	//	 mode to NORMAL (recommended with WAL enabled)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", filepath.Clean(dbPath))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	ins, err := db.Prepare(`
		INSERT INTO catches (username, fish, rarity, weight_tenths, price_cents, caught_at)
		VALUES (?,?,?,?,?,?)
	`)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	top, err := db.Prepare(`
		SELECT id, username, fish, rarity, weight_tenths, price_cents, caught_at
		FROM catches
		ORDER BY price_cents DESC, id DESC
		LIMIT ?
	`)
	if err != nil {
		_ = ins.Close()
		_ = db.Close()
		return nil, err
	}

	return &CatchLog{db: db, insertStmt: ins, topStmt: top}, nil
}

func (l *CatchLog) Close() error {
	if l.insertStmt != nil {
		_ = l.insertStmt.Close()
	}
	if l.topStmt != nil {
		_ = l.topStmt.Close()
	}
	return l.db.Close()
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS catches (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			username      TEXT    NOT NULL,
			fish          TEXT    NOT NULL,
			rarity        TEXT    NOT NULL,
			weight_tenths INTEGER NOT NULL,
			price_cents   INTEGER NOT NULL,
			caught_at     INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_leader_price
			ON catches (price_cents DESC, id DESC);
	`)
	return err
}

func (l *CatchLog) Add(ctx context.Context, c fish.Catch) error {
	if l == nil || l.db == nil {
		return errors.New("catch log not initialized")
	}

	if c.CaughtAt.IsZero() {
		c.CaughtAt = time.Now()
	}

	weightTenths := int64(math.Round(c.Weight * 10.0))
	priceCents := int64(math.Round(c.Price * 100.0))
	_, err := l.insertStmt.ExecContext(ctx,
		Key(c.Username),
		c.Fish,
		c.Rarity,
		weightTenths,
		priceCents,
		c.CaughtAt.Unix(),
	)
	return err
}

// TopByPrice returns the most valuable catches, richest first.
func (l *CatchLog) TopByPrice(ctx context.Context, limit int) ([]fish.Catch, error) {
	if l == nil || l.db == nil {
		return nil, errors.New("catch log not initialized")
	}

	if limit <= 0 {
		limit = 10
	}

	rows, err := l.topStmt.QueryContext(ctx, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]fish.Catch, 0, limit)
	for rows.Next() {
		var (
			id           int64
			username     string
			name, rarity string
			weightTenths int64
			priceCents   int64
			caughtUnix   int64
		)
		if err := rows.Scan(&id, &username, &name, &rarity, &weightTenths, &priceCents, &caughtUnix); err != nil {
			return nil, err
		}

		out = append(out, fish.Catch{
			Id:       id,
			Username: username,
			Fish:     name,
			Rarity:   rarity,
			Weight:   float64(weightTenths) / 10.0,
			Price:    float64(priceCents) / 100.0,
			CaughtAt: time.Unix(caughtUnix, 0).UTC(),
		})
	}

	return out, rows.Err()
}
