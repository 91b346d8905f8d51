package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"GeoPits/internal/world/entity"
	"GeoPits/internal/world/infra/persistence/repotest"
)

func TestGameRepository_Contract(t *testing.T) {
	r, err := NewGameRepository(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	repotest.Run(t, r)
}

func TestGameRepository_文件名与无残留临时文件(t *testing.T) {
	dir := t.TempDir()
	r, err := NewGameRepository(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Save(context.Background(), &entity.GamePersistSnapshot{GameID: 123, Momento: []byte(`{}`)}); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "123.json" {
		t.Fatalf("目录里只应有 123.json, got=%v", entries)
	}
	raw, _ := os.ReadFile(filepath.Join(dir, "123.json"))
	if string(raw) != `{}` {
		t.Fatalf("got=%s", raw)
	}
}

func TestNewGameRepository_空目录(t *testing.T) {
	if _, err := NewGameRepository(""); err == nil {
		t.Fatalf("空目录应报错")
	}
}
