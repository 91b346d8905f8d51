package model

import (
	"time"

	"GeoPits/internal/world/entity"
)

// GameMomento 是 mysql/sqlite 里的一行存档。
type GameMomento struct {
	GameId    int64     `gorm:"column:game_id;type:bigint;comment:对局id;primaryKey;not null;" json:"game_id"`
	Version   uint64    `gorm:"column:version;type:bigint UNSIGNED;comment:快照版本;not null;default:0;" json:"version"`
	Momento   string    `gorm:"column:momento;type:mediumtext;comment:momento json;not null;" json:"momento"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;not null;default:CURRENT_TIMESTAMP;" json:"updated_at"`
}

func (m *GameMomento) TableName() string {
	return "game_momento"
}

// GameDoc 是 mongodb 里的一个文档，_id 即对局 id。
type GameDoc struct {
	GameId    int64     `bson:"_id"`
	Version   uint64    `bson:"version"`
	Momento   string    `bson:"momento"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func SnapshotToRow(s *entity.GamePersistSnapshot) GameMomento {
	return GameMomento{
		GameId:    int64(s.GameID),
		Version:   s.Version,
		Momento:   string(s.Momento),
		UpdatedAt: savedAt(s),
	}
}

func RowToRecord(m GameMomento) *entity.GameRecord {
	return &entity.GameRecord{
		GameID:    entity.GameID(m.GameId),
		Momento:   []byte(m.Momento),
		UpdatedAt: m.UpdatedAt,
	}
}

func SnapshotToDoc(s *entity.GamePersistSnapshot) GameDoc {
	return GameDoc{
		GameId:    int64(s.GameID),
		Version:   s.Version,
		Momento:   string(s.Momento),
		UpdatedAt: savedAt(s),
	}
}

func DocToRecord(d GameDoc) *entity.GameRecord {
	return &entity.GameRecord{
		GameID:    entity.GameID(d.GameId),
		Momento:   []byte(d.Momento),
		UpdatedAt: d.UpdatedAt,
	}
}

func savedAt(s *entity.GamePersistSnapshot) time.Time {
	if s.SavedAt.IsZero() {
		return time.Now()
	}
	return s.SavedAt
}
