package entity

import "time"

// GamePersistSnapshot 是一次要落库的完整 momento，Version 越大越新。
type GamePersistSnapshot struct {
	Version uint64
	GameID  GameID
	Momento []byte
	SavedAt time.Time
}

// GameRecord 是仓储读出来的一行。
type GameRecord struct {
	GameID    GameID
	Momento   []byte
	UpdatedAt time.Time
}
