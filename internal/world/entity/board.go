package entity

import (
	"math"

	"GeoPits/internal/world/entity/domain"
)

type Cell = domain.Cell
type Token = domain.Token
type LatLng = domain.LatLng

// Board 是惰性生成的无限网格：格子第一次被访问时按种子生成 1~3 个代币，之后只记住不再生成。
// 格子集合只增不减，清空的格子保留空列表。
type Board struct {
	tileWidth        float64
	visibilityRadius int
	spawnProbability float64
	seed             string

	knownCells map[string]Cell
	cellTokens map[string][]Token
}

func NewBoard(s Settings) *Board {
	s = s.normalized()
	return &Board{
		tileWidth:        s.TileWidth,
		visibilityRadius: s.VisibilityRadius,
		spawnProbability: s.SpawnProbability,
		seed:             s.Seed,
		knownCells:       make(map[string]Cell),
		cellTokens:       make(map[string][]Token),
	}
}

func (b *Board) TileWidth() float64 {
	return b.tileWidth
}

func (b *Board) VisibilityRadius() int {
	return b.visibilityRadius
}

func (b *Board) canonicalCell(c Cell) Cell {
	key := c.Key()
	if known, ok := b.knownCells[key]; ok {
		return known
	}
	b.knownCells[key] = c
	return c
}

func (b *Board) CellForPoint(p LatLng) Cell {
	return b.canonicalCell(Cell{
		I: int(math.Floor(p.Lat / b.tileWidth)),
		J: int(math.Floor(p.Lng / b.tileWidth)),
	})
}

func (b *Board) CellBounds(c Cell) domain.LatLngBounds {
	return domain.LatLngBounds{
		SouthWest: LatLng{Lat: float64(c.I) * b.tileWidth, Lng: float64(c.J) * b.tileWidth},
		NorthEast: LatLng{Lat: float64(c.I+1) * b.tileWidth, Lng: float64(c.J+1) * b.tileWidth},
	}
}

// CellCenter 格子中心点，落在该格子内部，浮点误差不会把它推到邻格。
func (b *Board) CellCenter(c Cell) LatLng {
	return LatLng{
		Lat: (float64(c.I) + 0.5) * b.tileWidth,
		Lng: (float64(c.J) + 0.5) * b.tileWidth,
	}
}

// CellsNearPoint 返回以 p 所在格为中心、[-r, r) 范围内的全部格子，按行优先。
func (b *Board) CellsNearPoint(p LatLng) []Cell {
	origin := b.CellForPoint(p)
	r := b.visibilityRadius
	out := make([]Cell, 0, 4*r*r)
	for di := -r; di < r; di++ {
		for dj := -r; dj < r; dj++ {
			out = append(out, origin.Offset(di, dj))
		}
	}
	return out
}

// InNeighborhood 判断 c 是否在 p 的视野范围内。
func (b *Board) InNeighborhood(p LatLng, c Cell) bool {
	origin := b.CellForPoint(p)
	r := b.visibilityRadius
	di, dj := c.I-origin.I, c.J-origin.J
	return di >= -r && di < r && dj >= -r && dj < r
}

func (b *Board) IsPit(c Cell) bool {
	return domain.Luck(b.seed, c.Key()) < b.spawnProbability
}

func (b *Board) PitsNearPoint(p LatLng) []Cell {
	var out []Cell
	for _, c := range b.CellsNearPoint(p) {
		if b.IsPit(c) {
			out = append(out, c)
		}
	}
	return out
}

// tokens 取出（必要时生成）格子的代币列表，返回的是内部切片。
func (b *Board) tokens(c Cell) []Token {
	key := c.Key()
	if list, ok := b.cellTokens[key]; ok {
		return list
	}
	b.canonicalCell(c)
	n := b.tokenCount(key)
	list := make([]Token, 0, n)
	for serial := 0; serial < n; serial++ {
		list = append(list, domain.NewToken(c, serial))
	}
	b.cellTokens[key] = list
	return list
}

// tokenCount 格子首次生成时的代币数量，[1, 3]。
func (b *Board) tokenCount(key string) int {
	return 1 + int(math.Floor(domain.Luck(b.seed, key+":count")*3))
}

// checkTokenOrigin 代币的诞生格必须在 cells 里（已生成），序号不能超过该格生成的数量。
// 否则之后访问那一格会再生成一次同一个代币，或者代币是凭空编出来的。
func (b *Board) checkTokenOrigin(cells map[string][]Token, t Token) error {
	origin, serial, err := t.Origin()
	if err != nil {
		return ErrMomentoInvalid.WithData("reason", "bad token id").WithData("token", t.ID())
	}
	key := origin.Key()
	if _, ok := cells[key]; !ok {
		return ErrMomentoInvalid.WithData("reason", "token origin not generated").
			WithData("token", t.ID()).WithData("origin", key)
	}
	if serial >= b.tokenCount(key) {
		return ErrMomentoInvalid.WithData("reason", "token serial out of range").WithData("token", t.ID())
	}
	return nil
}

// Generated 表示格子的代币是否已经生成过。
func (b *Board) Generated(c Cell) bool {
	_, ok := b.cellTokens[c.Key()]
	return ok
}

// CellTokens 返回副本，调用方改不到内部状态。
func (b *Board) CellTokens(c Cell) []Token {
	list := b.tokens(c)
	out := make([]Token, len(list))
	copy(out, list)
	return out
}

func (b *Board) AddTokenToCell(c Cell, t Token) {
	key := c.Key()
	b.cellTokens[key] = append(b.tokens(c), t)
}

func (b *Board) PopTokenFromCell(c Cell, index int) (Token, error) {
	list := b.tokens(c)
	if index < 0 || index >= len(list) {
		return Token{}, ErrTokenNotInPit.WithData("cell", c.Key()).WithData("index", index)
	}
	t := list[index]
	next := make([]Token, 0, len(list)-1)
	next = append(next, list[:index]...)
	next = append(next, list[index+1:]...)
	b.cellTokens[c.Key()] = next
	return t, nil
}

func (b *Board) RemoveTokenFromCell(c Cell, tokenID string) (Token, error) {
	for i, t := range b.tokens(c) {
		if t.ID() == tokenID {
			return b.PopTokenFromCell(c, i)
		}
	}
	return Token{}, ErrTokenNotInPit.WithData("cell", c.Key()).WithData("token", tokenID)
}

func (b *Board) KnownCellCount() int {
	return len(b.knownCells)
}

func (b *Board) GeneratedCellCount() int {
	return len(b.cellTokens)
}

// eachToken 遍历所有已生成格子的代币，用于守恒校验。
func (b *Board) eachToken(fn func(key string, t Token)) {
	for key, list := range b.cellTokens {
		for _, t := range list {
			fn(key, t)
		}
	}
}
