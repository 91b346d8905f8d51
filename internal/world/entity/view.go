package entity

import "GeoPits/internal/world/entity/domain"

type GameView struct {
	GameID         GameID  `json:"game_id"`
	Position       LatLng  `json:"position"`
	Cell           Cell    `json:"cell"`
	Status         string  `json:"status"`
	Inventory      []Token `json:"inventory"`
	GeneratedCells int     `json:"generated_cells"`
}

type PitView struct {
	Cell   Cell                `json:"cell"`
	Bounds domain.LatLngBounds `json:"bounds"`
	Tokens []Token             `json:"tokens"`
}
