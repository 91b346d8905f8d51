package mysql

import (
	"context"
	"errors"

	"GeoPits/internal/world/entity"
	"GeoPits/internal/world/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GameRepository struct {
	db *gorm.DB
}

// NewGameRepository 会 AutoMigrate game_momento 表。
func NewGameRepository(db *gorm.DB) (*GameRepository, error) {
	if db == nil {
		return nil, errors.New("gorm db is nil")
	}
	if err := db.AutoMigrate(&model.GameMomento{}); err != nil {
		return nil, entity.ErrStoreUnavailable.WithCause(err)
	}
	return &GameRepository{db: db}, nil
}

func (r *GameRepository) Load(ctx context.Context, id entity.GameID) (*entity.GameRecord, error) {
	var row model.GameMomento
	err := r.db.WithContext(ctx).Where("game_id = ?", int64(id)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrGameNotFound.WithData("gameId", int64(id))
	}
	if err != nil {
		return nil, entity.ErrStoreUnavailable.WithCause(err)
	}
	return model.RowToRecord(row), nil
}

func (r *GameRepository) Save(ctx context.Context, s *entity.GamePersistSnapshot) error {
	if s == nil {
		return nil
	}
	row := model.SnapshotToRow(s)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"version", "momento", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return entity.ErrStoreUnavailable.WithCause(err)
	}
	return nil
}

func (r *GameRepository) Delete(ctx context.Context, id entity.GameID) error {
	err := r.db.WithContext(ctx).Where("game_id = ?", int64(id)).Delete(&model.GameMomento{}).Error
	if err != nil {
		return entity.ErrStoreUnavailable.WithCause(err)
	}
	return nil
}
