package entity

import (
	"math"
	"strings"

	"GeoPits/internal/world/entity/domain"
)

// Player 位置 + 背包。背包后进先出，deposit 总是放出最后拿到的代币。
type Player struct {
	position LatLng
	tokens   []Token
}

func NewPlayer(position LatLng) *Player {
	return &Player{position: position}
}

func (p *Player) Position() LatLng {
	return p.position
}

// MoveTo 对应设备定位上报。
func (p *Player) MoveTo(pos LatLng) error {
	if err := pos.Validate(); err != nil {
		return err
	}
	p.position = pos
	return nil
}

// Step 朝某个方向走一格，落在相邻格的中心，反复走不会因为浮点误差跨格。
// 走出地球范围时返回 ErrInvalidLocation，位置不变。
func (p *Player) Step(dir domain.Direction, tileWidth float64) error {
	di, dj := dir.Delta()
	if (di == 0 && dj == 0) || tileWidth <= 0 {
		return domain.ErrInvalidDirection.WithData("direction", string(dir))
	}
	i := math.Floor(p.position.Lat/tileWidth) + float64(di)
	j := math.Floor(p.position.Lng/tileWidth) + float64(dj)
	return p.MoveTo(LatLng{Lat: (i + 0.5) * tileWidth, Lng: (j + 0.5) * tileWidth})
}

func (p *Player) Tokens() []Token {
	out := make([]Token, len(p.tokens))
	copy(out, p.tokens)
	return out
}

func (p *Player) TokenCount() int {
	return len(p.tokens)
}

func (p *Player) Push(t Token) {
	p.tokens = append(p.tokens, t)
}

func (p *Player) Pop() (Token, error) {
	n := len(p.tokens)
	if n == 0 {
		return Token{}, ErrInventoryEmpty
	}
	t := p.tokens[n-1]
	p.tokens = p.tokens[:n-1]
	return t, nil
}

// Status 状态栏文案。
func (p *Player) Status() string {
	if len(p.tokens) == 0 {
		return "No Tokens Yet"
	}
	var b strings.Builder
	b.WriteString("Collected Tokens: ")
	for _, t := range p.tokens {
		b.WriteString("[")
		b.WriteString(t.ID())
		b.WriteString("] ")
	}
	return b.String()
}

func (p *Player) toMomento() PlayerMomento {
	return PlayerMomento{Lat: p.position.Lat, Lng: p.position.Lng, Tokens: p.Tokens()}
}

func playerFromMomento(m PlayerMomento) (*Player, error) {
	pos := domain.LatLng{Lat: m.Lat, Lng: m.Lng}
	if err := pos.Validate(); err != nil {
		return nil, ErrMomentoInvalid.WithData("reason", "bad player position").WithCause(err)
	}
	p := NewPlayer(pos)
	for _, t := range m.Tokens {
		if t.IsZero() {
			return nil, ErrMomentoInvalid.WithData("reason", "empty token")
		}
		p.Push(t)
	}
	return p, nil
}
