package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetLineAndColumn(t *testing.T) {
	src := "let x : Real = 1;\nadd x q;"
	cases := []struct {
		name         string
		pos          int
		line, column int
	}{
		{"start", 0, 1, 1},
		{"first line", 4, 1, 5},
		{"second line", 24, 2, 7},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			line, col := GetLineAndColumn(src, c.pos)
			if line != c.line || col != c.column {
				t.Errorf("expected %d:%d, got %d:%d", c.line, c.column, line, col)
			}
		})
	}
}

func TestGetContextLines(t *testing.T) {
	src := "print 1;\nprint 2;\nlet : Real = 3;"
	out := GetContextLines(src, 3, 5)

	if !strings.Contains(out, "       1 | print 1;") {
		t.Errorf("expected first context line, got:\n%s", out)
	}
	if !strings.Contains(out, "  >    3 | let : Real = 3;") {
		t.Errorf("expected marked error line, got:\n%s", out)
	}
	lines := strings.Split(out, "\n")
	caret := lines[len(lines)-1]
	if strings.Index(caret, "^") != len("  >    3 | let ") {
		t.Errorf("caret in the wrong column: %q", caret)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sageleaf.toml")
	content := `
log_level = "debug"
history_driver = "sqlite3"
history_dsn = "/tmp/h.db"
debug_ast = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := Configuration{LogLevel: "error", LogFile: "keep.log", DebugASTFormat: "yaml"}
	if err := LoadConfigFile(path, &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.LogLevel)
	}
	if cfg.LogFile != "keep.log" {
		t.Errorf("expected log file to be kept, got %s", cfg.LogFile)
	}
	if cfg.HistoryDriver != "sqlite3" || cfg.HistoryDSN != "/tmp/h.db" {
		t.Errorf("unexpected history settings %s %s", cfg.HistoryDriver, cfg.HistoryDSN)
	}
	if !cfg.DebugAST || cfg.DebugASTFormat != "yaml" {
		t.Errorf("unexpected debug settings %v %s", cfg.DebugAST, cfg.DebugASTFormat)
	}
}

func TestLoadConfigFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte(`colour = "red"`), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	var cfg Configuration
	if err := LoadConfigFile(path, &cfg); err == nil {
		t.Errorf("expected an error for unknown keys")
	}
}

func TestDefaultHistoryDSN(t *testing.T) {
	cfg := Configuration{SageleafHome: "/home/u/.sageleaf", HistoryDriver: "sqlite3"}
	if got := cfg.DefaultHistoryDSN(); got != filepath.Join("/home/u/.sageleaf", "history.db") {
		t.Errorf("unexpected dsn %s", got)
	}
	cfg.HistoryDriver = "bolt"
	cfg.SageleafHome = ""
	if got := cfg.DefaultHistoryDSN(); got != "history.bolt" {
		t.Errorf("unexpected dsn %s", got)
	}
}
