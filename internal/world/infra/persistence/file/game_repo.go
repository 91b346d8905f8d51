package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"GeoPits/internal/world/entity"
)

// GameRepository 每局一个 <dir>/<id>.json，内容就是 momento 本身。
type GameRepository struct {
	dir string
}

func NewGameRepository(dir string) (*GameRepository, error) {
	if dir == "" {
		return nil, errors.New("momento dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, entity.ErrStoreUnavailable.WithCause(err)
	}
	return &GameRepository{dir: dir}, nil
}

func (r *GameRepository) path(id entity.GameID) string {
	return filepath.Join(r.dir, strconv.FormatInt(int64(id), 10)+".json")
}

func (r *GameRepository) Load(ctx context.Context, id entity.GameID) (*entity.GameRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := r.path(id)
	raw, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, entity.ErrGameNotFound.WithData("gameId", int64(id))
	}
	if err != nil {
		return nil, entity.ErrStoreUnavailable.WithCause(err)
	}
	rec := &entity.GameRecord{GameID: id, Momento: raw}
	if fi, err := os.Stat(p); err == nil {
		rec.UpdatedAt = fi.ModTime()
	}
	return rec, nil
}

// Save 先写临时文件再 rename，读的一方不会看到写了一半的存档。
func (r *GameRepository) Save(ctx context.Context, s *entity.GamePersistSnapshot) error {
	if s == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(r.dir, "momento-*.tmp")
	if err != nil {
		return entity.ErrStoreUnavailable.WithCause(err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(s.Momento); err != nil {
		_ = tmp.Close()
		return entity.ErrStoreUnavailable.WithCause(err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return entity.ErrStoreUnavailable.WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		return entity.ErrStoreUnavailable.WithCause(err)
	}
	if err := os.Rename(tmpName, r.path(s.GameID)); err != nil {
		return entity.ErrStoreUnavailable.WithCause(err)
	}
	return nil
}

func (r *GameRepository) Delete(ctx context.Context, id entity.GameID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(r.path(id))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return entity.ErrStoreUnavailable.WithCause(err)
	}
	return nil
}
