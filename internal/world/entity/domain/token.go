package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Token 只有一个 id："i:j#serial"，i/j 是诞生的格子。不可变。
type Token struct {
	id string
}

func NewToken(origin Cell, serial int) Token {
	return Token{id: fmt.Sprintf("%d:%d#%d", origin.I, origin.J, serial)}
}

// TokenFromID 用于从 momento 恢复。
func TokenFromID(id string) Token {
	return Token{id: id}
}

// ParseTokenID 解析 "i:j#serial"，只接受 NewToken 产出的规范形式。
func ParseTokenID(id string) (Cell, int, error) {
	pos, serialText, ok := strings.Cut(id, "#")
	if !ok {
		return Cell{}, 0, ErrInvalidTokenID.WithData("token", id)
	}
	is, js, ok := strings.Cut(pos, ":")
	if !ok {
		return Cell{}, 0, ErrInvalidTokenID.WithData("token", id)
	}
	i, err1 := strconv.Atoi(is)
	j, err2 := strconv.Atoi(js)
	serial, err3 := strconv.Atoi(serialText)
	if err1 != nil || err2 != nil || err3 != nil || serial < 0 {
		return Cell{}, 0, ErrInvalidTokenID.WithData("token", id)
	}
	c := Cell{I: i, J: j}
	// "01:2#0"、"+1:2#0" 和 "1:2#0" 是同一个代币，不允许两种写法并存
	if NewToken(c, serial).id != id {
		return Cell{}, 0, ErrInvalidTokenID.WithData("token", id)
	}
	return c, serial, nil
}

// Origin 返回代币诞生的格子和序号。
func (t Token) Origin() (Cell, int, error) {
	return ParseTokenID(t.id)
}

func (t Token) ID() string {
	return t.id
}

func (t Token) String() string {
	return t.id
}

func (t Token) IsZero() bool {
	return t.id == ""
}

func (t Token) MarshalText() ([]byte, error) {
	return []byte(t.id), nil
}

func (t *Token) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		return errors.New("empty token id")
	}
	t.id = string(b)
	return nil
}
