package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"GeoPits/internal/shared/config"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Open 打开（必要时创建）sqlite 文件。modernc 驱动是纯 Go 的，不需要 cgo。
func Open(cfg config.SQLiteConfig, l *zap.Logger) (*sql.DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	if l == nil {
		l = zap.NewNop()
	}
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, err
	}
	// 单写者，避免 SQLITE_BUSY
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite pragma: %w", err)
	}

	l.Info("open sqlite success", zap.String("path", cfg.Path))
	return db, nil
}
