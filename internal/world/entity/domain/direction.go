package domain

import "strings"

type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case North, South, East, West:
		return d, nil
	default:
		return "", ErrInvalidDirection.WithData("direction", s)
	}
}

// Delta 返回 (di, dj)：北 +i，东 +j。
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 1, 0
	case South:
		return -1, 0
	case East:
		return 0, 1
	case West:
		return 0, -1
	}
	return 0, 0
}
