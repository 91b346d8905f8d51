package domain

import (
	"strconv"
	"strings"
)

// Cell 是无限网格上的一格，i 对应纬度方向，j 对应经度方向。
type Cell struct {
	I int `json:"i"`
	J int `json:"j"`
}

// Key 规范化的 "i,j"。
func (c Cell) Key() string {
	return strconv.Itoa(c.I) + "," + strconv.Itoa(c.J)
}

func (c Cell) Offset(di, dj int) Cell {
	return Cell{I: c.I + di, J: c.J + dj}
}

func ParseCellKey(key string) (Cell, error) {
	is, js, ok := strings.Cut(key, ",")
	if !ok {
		return Cell{}, ErrInvalidCellKey.WithData("key", key)
	}
	i, err := strconv.Atoi(is)
	if err != nil {
		return Cell{}, ErrInvalidCellKey.WithData("key", key)
	}
	j, err := strconv.Atoi(js)
	if err != nil {
		return Cell{}, ErrInvalidCellKey.WithData("key", key)
	}
	return Cell{I: i, J: j}, nil
}
