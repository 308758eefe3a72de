package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/mlindner/spreewire/internal/news"
)

// ErrNoReport is returned when no report has been persisted yet.
var ErrNoReport = errors.New("no report stored")

// Store backs the seen-article contract and report persistence with a
// local sqlite database. Reads and writes use separate handles; the
// write handle is capped at one connection.
type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS seen (
			id         TEXT PRIMARY KEY,
			meta       TEXT NOT NULL DEFAULT '',
			expires_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_seen_expires ON seen(expires_at);

		CREATE TABLE IF NOT EXISTS reports (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			generated_at DATETIME NOT NULL,
			payload      TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_reports_generated ON reports(generated_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Seen reports whether the id was recorded and has not expired yet.
func (s *Store) Seen(id string) (bool, error) {
	query, args, err := sq.Select("expires_at").From("seen").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, err
	}

	var expires time.Time
	err = s.readDB.QueryRow(query, args...).Scan(&expires)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying seen id: %w", err)
	}
	return expires.After(time.Now()), nil
}

// MarkSeen records the id with the given TTL. Re-marking the same id
// overwrites expiry and metadata; the upsert makes concurrent runs
// harmless.
func (s *Store) MarkSeen(id, meta string, ttl time.Duration) error {
	query, args, err := sq.Insert("seen").
		Columns("id", "meta", "expires_at").
		Values(id, meta, time.Now().Add(ttl)).
		Suffix("ON CONFLICT(id) DO UPDATE SET meta = excluded.meta, expires_at = excluded.expires_at").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.writeDB.Exec(query, args...); err != nil {
		return fmt.Errorf("marking seen %s: %w", id, err)
	}
	return nil
}

// PruneExpired removes expired seen entries and returns the count.
func (s *Store) PruneExpired() (int64, error) {
	query, args, err := sq.Delete("seen").Where(sq.LtOrEq{"expires_at": time.Now()}).ToSql()
	if err != nil {
		return 0, err
	}
	res, err := s.writeDB.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("pruning seen: %w", err)
	}
	return res.RowsAffected()
}

// SaveReport persists the report payload as JSON. Formatting for any
// delivery channel happens elsewhere.
func (s *Store) SaveReport(r news.Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	query, args, err := sq.Insert("reports").
		Columns("generated_at", "payload").
		Values(r.Meta.GeneratedAt, string(payload)).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.writeDB.Exec(query, args...); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	return nil
}

// LatestReport loads the most recently generated report.
func (s *Store) LatestReport() (news.Report, error) {
	query, args, err := sq.Select("payload").From("reports").
		OrderBy("generated_at DESC").Limit(1).ToSql()
	if err != nil {
		return news.Report{}, err
	}

	var payload string
	err = s.readDB.QueryRow(query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return news.Report{}, ErrNoReport
	}
	if err != nil {
		return news.Report{}, fmt.Errorf("loading report: %w", err)
	}

	var r news.Report
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return news.Report{}, fmt.Errorf("decoding report: %w", err)
	}
	return r, nil
}

// PruneReports deletes reports older than the retention period.
func (s *Store) PruneReports(retention time.Duration) (int64, error) {
	query, args, err := sq.Delete("reports").
		Where(sq.Lt{"generated_at": time.Now().Add(-retention)}).
		ToSql()
	if err != nil {
		return 0, err
	}
	res, err := s.writeDB.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("pruning reports: %w", err)
	}
	return res.RowsAffected()
}

// Stats returns seen-entry count, stored-report count, and file size.
func (s *Store) Stats(dbPath string) (seen, reports int64, size int64, err error) {
	if err = s.readDB.QueryRow("SELECT COUNT(*) FROM seen").Scan(&seen); err != nil {
		return 0, 0, 0, fmt.Errorf("counting seen: %w", err)
	}
	if err = s.readDB.QueryRow("SELECT COUNT(*) FROM reports").Scan(&reports); err != nil {
		return 0, 0, 0, fmt.Errorf("counting reports: %w", err)
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return 0, 0, 0, err
	}
	return seen, reports, info.Size(), nil
}
