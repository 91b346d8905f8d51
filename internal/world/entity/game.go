package entity

import (
	"encoding/json"
	"time"

	"GeoPits/internal/world/entity/domain"
)

type GameID int64

// Game 是一局游戏的聚合根：一个棋盘 + 一个玩家。
// 所有修改都在 GameActor 里串行执行，这里不加锁。
type Game struct {
	id       GameID
	settings Settings
	board    *Board
	player   *Player
	dirty    bool
}

// NewGame 新开一局，玩家在起始点；新局标脏，第一次 flush 就会落库。
func NewGame(id GameID, s Settings) *Game {
	s = s.normalized()
	return &Game{
		id:       id,
		settings: s,
		board:    NewBoard(s),
		player:   NewPlayer(s.Start),
		dirty:    true,
	}
}

// RestoreGame 从 momento 恢复，恢复出来的局是干净的。
func RestoreGame(id GameID, s Settings, raw []byte) (*Game, error) {
	g := NewGame(id, s)
	if err := g.LoadMomento(raw); err != nil {
		return nil, err
	}
	g.dirty = false
	return g, nil
}

func (g *Game) ID() GameID {
	return g.id
}

func (g *Game) Board() *Board {
	return g.board
}

func (g *Game) Player() *Player {
	return g.player
}

// Move 模拟方向键：走到相邻格的中心。走出地球范围时返回 ErrInvalidLocation。
func (g *Game) Move(dir domain.Direction) error {
	if err := g.player.Step(dir, g.board.TileWidth()); err != nil {
		return err
	}
	g.board.CellForPoint(g.player.Position())
	g.dirty = true
	return nil
}

// Locate 设备定位上报。
func (g *Game) Locate(pos LatLng) error {
	if err := g.player.MoveTo(pos); err != nil {
		return err
	}
	g.board.CellForPoint(pos)
	g.dirty = true
	return nil
}

// Reset 玩家回到原点 (0,0)，棋盘和背包不变。
func (g *Game) Reset() {
	_ = g.player.MoveTo(Origin)
	g.dirty = true
}

// Wipe 等价于清空本地存储：棋盘、背包全部丢弃，玩家回到起始点。
// 因为生成是确定性的，之后看到的世界和第一次完全一样。
func (g *Game) Wipe() {
	g.board = NewBoard(g.settings)
	g.player = NewPlayer(g.settings.Start)
	g.dirty = true
}

// Pits 玩家视野内的矿坑以及当前的代币。第一次看到的矿坑会在这里生成。
func (g *Game) Pits() []PitView {
	before := g.board.GeneratedCellCount()
	cells := g.board.PitsNearPoint(g.player.Position())
	out := make([]PitView, 0, len(cells))
	for _, c := range cells {
		out = append(out, PitView{
			Cell:   c,
			Bounds: g.board.CellBounds(c),
			Tokens: g.board.CellTokens(c),
		})
	}
	if g.board.GeneratedCellCount() != before {
		g.dirty = true
	}
	return out
}

// Pit 单个矿坑，校验规则同 Collect/Deposit。
func (g *Game) Pit(c Cell) (PitView, error) {
	if err := g.checkPit(c); err != nil {
		return PitView{}, err
	}
	if !g.board.Generated(c) {
		g.dirty = true
	}
	return PitView{Cell: c, Bounds: g.board.CellBounds(c), Tokens: g.board.CellTokens(c)}, nil
}

func (g *Game) checkPit(c Cell) error {
	if !g.board.IsPit(c) {
		return ErrPitNotFound.WithData("cell", c.Key())
	}
	if !g.board.InNeighborhood(g.player.Position(), c) {
		return ErrPitOutOfRange.WithData("cell", c.Key())
	}
	return nil
}

// Collect 把矿坑里的指定代币放进背包。
func (g *Game) Collect(c Cell, tokenID string) (Token, error) {
	if err := g.checkPit(c); err != nil {
		return Token{}, err
	}
	t, err := g.board.RemoveTokenFromCell(c, tokenID)
	if err != nil {
		return Token{}, err
	}
	g.player.Push(t)
	g.dirty = true
	return t, nil
}

// Deposit 把背包里最后一个代币放进矿坑。
func (g *Game) Deposit(c Cell) (Token, error) {
	if err := g.checkPit(c); err != nil {
		return Token{}, err
	}
	t, err := g.player.Pop()
	if err != nil {
		return Token{}, err
	}
	g.board.AddTokenToCell(c, t)
	g.dirty = true
	return t, nil
}

func (g *Game) View() GameView {
	pos := g.player.Position()
	return GameView{
		GameID:         g.id,
		Position:       pos,
		Cell:           g.board.CellForPoint(pos),
		Status:         g.player.Status(),
		Inventory:      g.player.Tokens(),
		GeneratedCells: g.board.GeneratedCellCount(),
	}
}

func (g *Game) Momento() GameMomento {
	return GameMomento{
		Version: MomentoVersion,
		Board:   g.board.ToMomento(),
		Player:  g.player.toMomento(),
	}
}

func (g *Game) MarshalMomento() ([]byte, error) {
	return json.Marshal(g.Momento())
}

// LoadMomento 导入存档，整体替换棋盘和玩家；任何校验失败都不改当前状态。
func (g *Game) LoadMomento(raw []byte) error {
	m, err := ParseGameMomento(raw)
	if err != nil {
		return err
	}
	board := NewBoard(g.settings)
	if err := board.FromMomento(m.Board); err != nil {
		return err
	}
	player, err := playerFromMomento(m.Player)
	if err != nil {
		return err
	}
	if err := checkConservation(board, player); err != nil {
		return err
	}
	g.board = board
	g.player = player
	g.dirty = true
	return nil
}

// checkConservation 代币守恒：背包里的代币也必须来自已生成的格子，
// 任何代币不能出现两次，已生成格子产出的代币一个都不能少。
func checkConservation(b *Board, p *Player) error {
	seen := make(map[Token]string)
	b.eachToken(func(key string, t Token) {
		seen[t] = key
	})
	for _, t := range p.tokens {
		if err := b.checkTokenOrigin(b.cellTokens, t); err != nil {
			return err
		}
		if where, dup := seen[t]; dup {
			return ErrMomentoInvalid.WithData("reason", "duplicate token").
				WithData("token", t.ID()).WithData("where", where)
		}
		seen[t] = "inventory"
	}
	for key := range b.cellTokens {
		c := b.knownCells[key]
		for serial := 0; serial < b.tokenCount(key); serial++ {
			t := domain.NewToken(c, serial)
			if _, ok := seen[t]; !ok {
				return ErrMomentoInvalid.WithData("reason", "token missing").WithData("token", t.ID())
			}
		}
	}
	return nil
}

func (g *Game) Dirty() bool {
	return g != nil && g.dirty
}

func (g *Game) ClearDirty() {
	if g != nil {
		g.dirty = false
	}
}

// BuildPersistSnapshot 干净时返回 nil；序列化失败时保持脏标记，下一轮再试。
func (g *Game) BuildPersistSnapshot(version uint64) (*GamePersistSnapshot, error) {
	if !g.Dirty() {
		return nil, nil
	}
	raw, err := g.MarshalMomento()
	if err != nil {
		return nil, err
	}
	g.dirty = false
	return &GamePersistSnapshot{
		Version: version,
		GameID:  g.id,
		Momento: raw,
		SavedAt: time.Now(),
	}, nil
}
