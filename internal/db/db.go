// Package db opens the local session store. This is the only persistence
// the dashboard owns: a sessions table holding bearer tokens and cached
// user copies, the server-side analog of browser storage. All domain data
// stays in the backend.
package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/config"
)

// Open connects to the configured session store. Sqlite is the dev/test
// default; postgres is used when multiple dashboard instances share
// sessions.
func Open(cfg config.SessionConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	switch cfg.Driver {
	case "", "sqlite":
		return gorm.Open(sqlite.Open(cfg.DSN), gormCfg)
	case "postgres":
		return gorm.Open(postgres.Open(NormalizeDSN(cfg.DSN)), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported session store driver %q", cfg.Driver)
	}
}

// NormalizeDSN accepts either a URL style DSN (postgres://...) or a
// key=value list, trims quotes and whitespace, and defaults sslmode to
// disable when absent from key=value form.
func NormalizeDSN(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'")
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return s
	}
	cleaned := strings.Join(strings.Fields(s), " ")
	if !strings.Contains(strings.ToLower(cleaned), "sslmode=") {
		cleaned += " sslmode=disable"
	}
	return cleaned
}
