package recorder

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists game history to a SQLite database.
type SQLiteRecorder struct {
	db *sqlx.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			tick      INTEGER NOT NULL,
			kind      TEXT NOT NULL,
			subject   TEXT,
			amount    REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_ts ON events(timestamp)`,

		`CREATE TABLE IF NOT EXISTS stats_snapshots (
			id                   INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp            INTEGER NOT NULL,
			time_elapsed         INTEGER NOT NULL,
			money                REAL,
			compute_power        REAL,
			data_quality         REAL,
			reputation           REAL,
			total_earnings       REAL,
			total_spent          REAL,
			highest_earning_rate REAL,
			total_models         INTEGER,
			models_completed     INTEGER,
			upgrades_purchased   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stats_ts ON stats_snapshots(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordEvent(evt *EventRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if evt.Timestamp == 0 {
		evt.Timestamp = time.Now().Unix()
	}
	_, err := r.db.NamedExec(`INSERT INTO events
		(timestamp, tick, kind, subject, amount)
		VALUES (:timestamp, :tick, :kind, :subject, :amount)`, evt)
	return err
}

func (r *SQLiteRecorder) RecordStats(snap *StatsSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if snap.Timestamp == 0 {
		snap.Timestamp = time.Now().Unix()
	}
	_, err := r.db.NamedExec(`INSERT INTO stats_snapshots
		(timestamp, time_elapsed, money, compute_power, data_quality, reputation,
		 total_earnings, total_spent, highest_earning_rate,
		 total_models, models_completed, upgrades_purchased)
		VALUES (:timestamp, :time_elapsed, :money, :compute_power, :data_quality, :reputation,
		 :total_earnings, :total_spent, :highest_earning_rate,
		 :total_models, :models_completed, :upgrades_purchased)`, snap)
	return err
}

// RecentEvents returns the most recent events, newest first.
func (r *SQLiteRecorder) RecentEvents(limit int) ([]EventRecord, error) {
	var events []EventRecord
	err := r.db.Select(&events,
		"SELECT id, timestamp, tick, kind, subject, amount FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
