// Package repotest 是各个 GameRepository 实现共用的行为测试。
package repotest

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"GeoPits/internal/world/app/port"
	"GeoPits/internal/world/entity"
)

func snapshot(id entity.GameID, version uint64, momento string) *entity.GamePersistSnapshot {
	return &entity.GamePersistSnapshot{
		Version: version,
		GameID:  id,
		Momento: []byte(momento),
		SavedAt: time.Now(),
	}
}

// Run 覆盖读不到、写入、覆盖、删除这几条路径。
func Run(t *testing.T, repo port.GameRepository) {
	t.Helper()
	ctx := context.Background()

	if _, err := repo.Load(ctx, 42); !errors.Is(err, entity.ErrGameNotFound) {
		t.Fatalf("空仓储期望 ErrGameNotFound, got=%v", err)
	}

	if err := repo.Save(ctx, snapshot(42, 1, `{"version":1}`)); err != nil {
		t.Fatalf("save err=%v", err)
	}
	if err := repo.Save(ctx, snapshot(7, 1, `{"other":true}`)); err != nil {
		t.Fatalf("save err=%v", err)
	}
	if err := repo.Save(ctx, snapshot(42, 2, `{"version":1,"v":2}`)); err != nil {
		t.Fatalf("overwrite err=%v", err)
	}

	rec, err := repo.Load(ctx, 42)
	if err != nil {
		t.Fatalf("load err=%v", err)
	}
	if rec.GameID != 42 || !bytes.Equal(rec.Momento, []byte(`{"version":1,"v":2}`)) {
		t.Fatalf("应读到最后一次写入: id=%d momento=%s", rec.GameID, rec.Momento)
	}

	if err := repo.Save(ctx, nil); err != nil {
		t.Fatalf("nil 快照应忽略, err=%v", err)
	}

	if err := repo.Delete(ctx, 42); err != nil {
		t.Fatalf("delete err=%v", err)
	}
	if _, err := repo.Load(ctx, 42); !errors.Is(err, entity.ErrGameNotFound) {
		t.Fatalf("删除后期望 ErrGameNotFound, got=%v", err)
	}
	if err := repo.Delete(ctx, 42); err != nil {
		t.Fatalf("重复删除不应报错, err=%v", err)
	}
	if _, err := repo.Load(ctx, 7); err != nil {
		t.Fatalf("其他对局不受影响, err=%v", err)
	}
}
