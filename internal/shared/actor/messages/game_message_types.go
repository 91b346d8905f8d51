package messages

type Cell struct {
	I int `json:"i"`
	J int `json:"j"`
}

type GameView struct {
	GameId         int64    `json:"game_id,string"`
	Lat            float64  `json:"lat"`
	Lng            float64  `json:"lng"`
	Cell           Cell     `json:"cell"`
	Status         string   `json:"status"`
	Inventory      []string `json:"inventory"`
	GeneratedCells int      `json:"generated_cells"`
}

type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

type PitView struct {
	Cell   Cell     `json:"cell"`
	Key    string   `json:"key"`
	Bounds Bounds   `json:"bounds"`
	Tokens []string `json:"tokens"`
}
