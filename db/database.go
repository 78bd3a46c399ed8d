package db

import (
	"fmt"
	"log/slog"
	"newspulse/internal/model"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Target is a parsed DATABASE_URL.
type Target struct {
	Dialect string
	DSN     string
}

// FilePath returns the on-disk location of a SQLite database, or "" when
// the target is not file backed.
func (t Target) FilePath() string {
	if t.Dialect != DialectSQLite {
		return ""
	}
	path, _, _ := strings.Cut(t.DSN, "?")
	path = strings.TrimPrefix(path, "file:")
	if path == "" || path == ":memory:" {
		return ""
	}
	return path
}

// ParseURL accepts sqlite:///relative/or/absolute.db and postgres:// URLs.
func ParseURL(databaseURL string) (Target, error) {
	switch {
	case strings.HasPrefix(databaseURL, "sqlite:///"):
		return Target{Dialect: DialectSQLite, DSN: strings.TrimPrefix(databaseURL, "sqlite:///")}, nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return Target{Dialect: DialectSQLite, DSN: strings.TrimPrefix(databaseURL, "sqlite://")}, nil
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return Target{Dialect: DialectPostgres, DSN: databaseURL}, nil
	}
	return Target{}, fmt.Errorf("unsupported database url %q", databaseURL)
}

func Connect(databaseURL string) (*gorm.DB, error) {
	target, err := ParseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch target.Dialect {
	case DialectSQLite:
		if path := target.FilePath(); path != "" {
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		// modernc.org/sqlite registers itself as "sqlite".
		dialector = &sqlite.Dialector{DriverName: "sqlite", DSN: target.DSN}
	case DialectPostgres:
		// lib/pq registers itself as "postgres".
		dialector = postgres.New(postgres.Config{DriverName: "postgres", DSN: target.DSN})
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{Logger: newLogger()})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB: %w", err)
	}

	if target.Dialect == DialectSQLite {
		// One writer at a time; each request still gets its own transaction.
		sqlDB.SetMaxOpenConns(1)
		if _, err := sqlDB.Exec("PRAGMA busy_timeout = 5000"); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("setting busy timeout: %w", err)
		}
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if err := Migrate(gdb); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return gdb, nil
}

func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&model.NewsItem{}); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}

func Close(gdb *gorm.DB) {
	if gdb == nil {
		return
	}
	if sqlDB, err := gdb.DB(); err == nil {
		sqlDB.Close()
	}
}

type slogWriter struct{}

func (slogWriter) Printf(format string, args ...interface{}) {
	slog.Warn("gorm", "message", fmt.Sprintf(format, args...))
}

func newLogger() logger.Interface {
	return logger.New(slogWriter{}, logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
