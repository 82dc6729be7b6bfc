// Package history records every evaluated statement, in the REPL and in file runs, so
// sessions can be reviewed later. Records live in a SQL database (sqlite3, mysql or
// postgres) or in a bbolt file.
package history

import (
	"context"
	"fmt"
	"os"
	"time"
)

const (
	ModeRepl = "repl"
	ModeFile = "file"
)

type Record struct {
	Seq     int64     `json:"seq"`
	Session string    `json:"session"`
	Mode    string    `json:"mode"`
	Source  string    `json:"source"`
	Result  string    `json:"result"`
	Type    string    `json:"type"`
	Error   string    `json:"error,omitempty"`
	At      time.Time `json:"at"`
}

type Store interface {
	// Append stores r and returns the sequence number assigned to it.
	Append(ctx context.Context, r Record) (int64, error)
	// Recent returns at most n records, oldest first.
	Recent(ctx context.Context, n int) ([]Record, error)
	Close() error
}

// Open picks a backend by driver name. An empty driver (or "none") disables history.
func Open(driver, dsn string) (Store, error) {
	switch driver {
	case "", "none":
		return Nop{}, nil
	case "sqlite3", "mysql", "postgres":
		return OpenSQL(driver, dsn)
	case "bolt":
		return OpenBolt(dsn)
	default:
		return nil, fmt.Errorf("history: unknown driver %q", driver)
	}
}

func NewSessionID() string {
	return fmt.Sprintf("%d-%d", os.Getpid(), time.Now().UnixNano())
}

// Nop discards everything.
type Nop struct{}

func (Nop) Append(context.Context, Record) (int64, error)   { return 0, nil }
func (Nop) Recent(context.Context, int) ([]Record, error) { return nil, nil }
func (Nop) Close() error                                  { return nil }

func reverse(records []Record) {
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
}
