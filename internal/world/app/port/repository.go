package port

import (
	"context"

	"GeoPits/internal/world/entity"
)

// GameRepository 存取每局的 momento。找不到时返回 entity.ErrGameNotFound。
type GameRepository interface {
	Load(ctx context.Context, id entity.GameID) (*entity.GameRecord, error)
	Save(ctx context.Context, s *entity.GamePersistSnapshot) error
	Delete(ctx context.Context, id entity.GameID) error
}
