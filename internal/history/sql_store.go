package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

var schemas = map[string]string{
	"sqlite3": `CREATE TABLE IF NOT EXISTS history (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	session TEXT NOT NULL,
	mode TEXT NOT NULL,
	source TEXT NOT NULL,
	result TEXT NOT NULL,
	value_type TEXT NOT NULL,
	failure TEXT NOT NULL,
	at_ns INTEGER NOT NULL
)`,
	"mysql": `CREATE TABLE IF NOT EXISTS history (
	seq BIGINT AUTO_INCREMENT PRIMARY KEY,
	session VARCHAR(64) NOT NULL,
	mode VARCHAR(16) NOT NULL,
	source TEXT NOT NULL,
	result TEXT NOT NULL,
	value_type TEXT NOT NULL,
	failure TEXT NOT NULL,
	at_ns BIGINT NOT NULL
)`,
	"postgres": `CREATE TABLE IF NOT EXISTS history (
	seq BIGSERIAL PRIMARY KEY,
	session TEXT NOT NULL,
	mode TEXT NOT NULL,
	source TEXT NOT NULL,
	result TEXT NOT NULL,
	value_type TEXT NOT NULL,
	failure TEXT NOT NULL,
	at_ns BIGINT NOT NULL
)`,
}

// SQLStore keeps records in a `history` table through database/sql.
type SQLStore struct {
	db     *sql.DB
	driver string
}

func OpenSQL(driver, dsn string) (*SQLStore, error) {
	schema, ok := schemas[driver]
	if !ok {
		return nil, fmt.Errorf("history: unsupported sql driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", driver, err)
	}
	if driver == "sqlite3" {
		// sqlite allows a single writer
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: ping %s: %w", driver, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}

	slog.Debug("history store opened", slog.String("driver", driver))
	return &SQLStore{db: db, driver: driver}, nil
}

func (s *SQLStore) Append(ctx context.Context, r Record) (int64, error) {
	if r.At.IsZero() {
		r.At = time.Now()
	}
	query := s.rebind(`INSERT INTO history (session, mode, source, result, value_type, failure, at_ns)
VALUES (?, ?, ?, ?, ?, ?, ?)`)
	args := []any{r.Session, r.Mode, r.Source, r.Result, r.Type, r.Error, r.At.UnixNano()}

	if s.driver == "postgres" {
		var seq int64
		if err := s.db.QueryRowContext(ctx, query+" RETURNING seq", args...).Scan(&seq); err != nil {
			return 0, fmt.Errorf("history: append: %w", err)
		}
		return seq, nil
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("history: append: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history: append: %w", err)
	}
	return seq, nil
}

func (s *SQLStore) Recent(ctx context.Context, n int) ([]Record, error) {
	if n <= 0 {
		return nil, nil
	}
	query := s.rebind(`SELECT seq, session, mode, source, result, value_type, failure, at_ns
FROM history ORDER BY seq DESC LIMIT ?`)

	rows, err := s.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r  Record
			at int64
		)
		if err := rows.Scan(&r.Seq, &r.Session, &r.Mode, &r.Source, &r.Result, &r.Type, &r.Error, &at); err != nil {
			return nil, fmt.Errorf("history: recent: %w", err)
		}
		r.At = time.Unix(0, at)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}

	reverse(records)
	return records, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// rebind rewrites `?` placeholders into `$n` for postgres.
func (s *SQLStore) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}
