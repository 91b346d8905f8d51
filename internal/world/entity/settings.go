package entity

import "GeoPits/internal/world/entity/domain"

const (
	DefaultTileWidth        = 1e-4
	DefaultVisibilityRadius = 8
	DefaultSpawnProbability = 0.1
)

// Origin 是 Reset 回到的位置。
var Origin = domain.LatLng{Lat: 0, Lng: 0}

// Settings 是生成世界和玩法的参数；同一组 Settings 生成的世界完全一致。
type Settings struct {
	TileWidth        float64
	VisibilityRadius int
	SpawnProbability float64
	Seed             string
	Start            domain.LatLng
}

func DefaultSettings() Settings {
	return Settings{
		TileWidth:        DefaultTileWidth,
		VisibilityRadius: DefaultVisibilityRadius,
		SpawnProbability: DefaultSpawnProbability,
		Start:            domain.LatLng{Lat: 36.9995, Lng: -122.0533},
	}
}

// normalized 把非法值换成默认值。
func (s Settings) normalized() Settings {
	if s.TileWidth <= 0 {
		s.TileWidth = DefaultTileWidth
	}
	if s.VisibilityRadius <= 0 {
		s.VisibilityRadius = DefaultVisibilityRadius
	}
	if s.SpawnProbability < 0 || s.SpawnProbability > 1 {
		s.SpawnProbability = DefaultSpawnProbability
	}
	if s.Start.Validate() != nil {
		s.Start = Origin
	}
	return s
}
