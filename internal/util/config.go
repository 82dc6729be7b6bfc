package util

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Configuration struct {
	Version   string `toml:"-"`
	BuildDate string `toml:"-"`
	Commit    string `toml:"-"`

	DebugAST       bool   `toml:"debug_ast"`
	DebugASTFormat string `toml:"debug_ast_format"`

	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`

	HistoryDriver string `toml:"history_driver"`
	HistoryDSN    string `toml:"history_dsn"`

	SageleafHome string `toml:"-"`
	Prompt       bool   `toml:"-"`
}

// LoadConfigFile decodes a TOML file over cfg. Keys missing from the file keep the
// values already in cfg.
func LoadConfigFile(path string, cfg *Configuration) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config: unknown keys in %s: %v", path, undecoded)
	}
	return nil
}

// DefaultHistoryDSN is the history database used when a driver is configured without a DSN.
func (c Configuration) DefaultHistoryDSN() string {
	name := "history.db"
	if c.HistoryDriver == "bolt" {
		name = "history.bolt"
	}
	if c.SageleafHome == "" {
		return name
	}
	return filepath.Join(c.SageleafHome, name)
}
