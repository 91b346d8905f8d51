package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"GeoPits/internal/world/entity"
	"GeoPits/internal/world/infra/persistence/model"
)

const schema = `CREATE TABLE IF NOT EXISTS game_momento (
	game_id    INTEGER PRIMARY KEY,
	version    INTEGER NOT NULL DEFAULT 0,
	momento    TEXT    NOT NULL,
	updated_at INTEGER NOT NULL
)`

type GameRepository struct {
	db *sql.DB
}

// NewGameRepository 建表后返回。db 由 infrastructure/sqlite.Open 打开。
func NewGameRepository(ctx context.Context, db *sql.DB) (*GameRepository, error) {
	if db == nil {
		return nil, errors.New("sqlite db is nil")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, entity.ErrStoreUnavailable.WithCause(err)
	}
	return &GameRepository{db: db}, nil
}

func (r *GameRepository) Load(ctx context.Context, id entity.GameID) (*entity.GameRecord, error) {
	var (
		row       model.GameMomento
		updatedAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT game_id, version, momento, updated_at FROM game_momento WHERE game_id = ?`, int64(id),
	).Scan(&row.GameId, &row.Version, &row.Momento, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrGameNotFound.WithData("gameId", int64(id))
	}
	if err != nil {
		return nil, entity.ErrStoreUnavailable.WithCause(err)
	}
	row.UpdatedAt = time.UnixMilli(updatedAt)
	return model.RowToRecord(row), nil
}

func (r *GameRepository) Save(ctx context.Context, s *entity.GamePersistSnapshot) error {
	if s == nil {
		return nil
	}
	row := model.SnapshotToRow(s)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO game_momento (game_id, version, momento, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(game_id) DO UPDATE SET version = excluded.version, momento = excluded.momento, updated_at = excluded.updated_at`,
		row.GameId, int64(row.Version), row.Momento, row.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return entity.ErrStoreUnavailable.WithCause(err)
	}
	return nil
}

func (r *GameRepository) Delete(ctx context.Context, id entity.GameID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM game_momento WHERE game_id = ?`, int64(id)); err != nil {
		return entity.ErrStoreUnavailable.WithCause(err)
	}
	return nil
}
