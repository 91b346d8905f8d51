package memory

import (
	"context"
	"sync"

	"GeoPits/internal/world/entity"
)

// GameRepository 进程内存储，开发和测试用，重启即丢。
type GameRepository struct {
	mu   sync.RWMutex
	rows map[entity.GameID]entity.GameRecord
}

func NewGameRepository() *GameRepository {
	return &GameRepository{
		rows: make(map[entity.GameID]entity.GameRecord),
	}
}

func (r *GameRepository) Load(ctx context.Context, id entity.GameID) (*entity.GameRecord, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.rows[id]
	if !ok {
		return nil, entity.ErrGameNotFound.WithData("gameId", int64(id))
	}
	rec.Momento = append([]byte(nil), rec.Momento...)
	return &rec, nil
}

func (r *GameRepository) Save(ctx context.Context, s *entity.GamePersistSnapshot) error {
	_ = ctx
	if s == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[s.GameID] = entity.GameRecord{
		GameID:    s.GameID,
		Momento:   append([]byte(nil), s.Momento...),
		UpdatedAt: s.SavedAt,
	}
	return nil
}

func (r *GameRepository) Delete(ctx context.Context, id entity.GameID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *GameRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows)
}
