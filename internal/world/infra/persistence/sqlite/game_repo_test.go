package sqlite

import (
	"context"
	"testing"

	"GeoPits/internal/shared/config"
	sqliteinfra "GeoPits/internal/shared/infrastructure/sqlite"
	"GeoPits/internal/world/infra/persistence/repotest"
)

func TestGameRepository_Contract(t *testing.T) {
	db, err := sqliteinfra.Open(config.SQLiteConfig{Path: ":memory:"}, nil)
	if err != nil {
		t.Fatalf("open err=%v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	r, err := NewGameRepository(context.Background(), db)
	if err != nil {
		t.Fatalf("new repo err=%v", err)
	}
	repotest.Run(t, r)
}

func TestNewGameRepository_nilDB(t *testing.T) {
	if _, err := NewGameRepository(context.Background(), nil); err == nil {
		t.Fatalf("nil db 应报错")
	}
}
