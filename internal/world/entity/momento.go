package entity

import (
	"encoding/json"

	"GeoPits/internal/world/entity/domain"
)

const MomentoVersion = 1

// BoardMomento 只记已生成的格子；没记的格子下次访问会按种子重新生成出同样的内容。
type BoardMomento struct {
	TileWidth float64            `json:"tile_width"`
	Cells     map[string][]Token `json:"cells"`
}

type PlayerMomento struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Tokens []Token `json:"tokens"`
}

type GameMomento struct {
	Version int           `json:"version"`
	Board   BoardMomento  `json:"board"`
	Player  PlayerMomento `json:"player"`
}

func (b *Board) ToMomento() BoardMomento {
	cells := make(map[string][]Token, len(b.cellTokens))
	for key, list := range b.cellTokens {
		cp := make([]Token, len(list))
		copy(cp, list)
		cells[key] = cp
	}
	return BoardMomento{TileWidth: b.tileWidth, Cells: cells}
}

// FromMomento 整体替换棋盘内容。校验失败时棋盘保持原样。
func (b *Board) FromMomento(m BoardMomento) error {
	if m.TileWidth != 0 && m.TileWidth != b.tileWidth {
		return ErrMomentoInvalid.WithData("reason", "tile_width mismatch").
			WithData("want", b.tileWidth).WithData("got", m.TileWidth)
	}

	known := make(map[string]Cell, len(m.Cells))
	cells := make(map[string][]Token, len(m.Cells))
	seen := make(map[Token]string)
	for key, list := range m.Cells {
		c, err := domain.ParseCellKey(key)
		if err != nil {
			return ErrMomentoInvalid.WithData("reason", "bad cell key").WithData("key", key)
		}
		// key 统一成规范形式，"01,2" 这种也能接住
		canon := c.Key()
		if _, dup := cells[canon]; dup {
			return ErrMomentoInvalid.WithData("reason", "duplicate cell").WithData("key", key)
		}
		cp := make([]Token, 0, len(list))
		for _, t := range list {
			if t.IsZero() {
				return ErrMomentoInvalid.WithData("reason", "empty token").WithData("key", key)
			}
			if prev, dup := seen[t]; dup {
				return ErrMomentoInvalid.WithData("reason", "duplicate token").
					WithData("token", t.ID()).WithData("cells", []string{prev, canon})
			}
			seen[t] = canon
			cp = append(cp, t)
		}
		known[canon] = c
		cells[canon] = cp
	}
	for _, list := range cells {
		for _, t := range list {
			if err := b.checkTokenOrigin(cells, t); err != nil {
				return err
			}
		}
	}

	for key, c := range b.knownCells {
		if _, ok := known[key]; !ok {
			known[key] = c
		}
	}
	b.knownCells = known
	b.cellTokens = cells
	return nil
}

// ParseGameMomento 解析并做版本检查，不校验内容。
func ParseGameMomento(raw []byte) (GameMomento, error) {
	var m GameMomento
	if err := json.Unmarshal(raw, &m); err != nil {
		return GameMomento{}, ErrMomentoInvalid.WithData("reason", "bad json").WithCause(err)
	}
	if m.Version != MomentoVersion {
		return GameMomento{}, ErrMomentoInvalid.WithData("reason", "unsupported version").WithData("version", m.Version)
	}
	return m, nil
}
