package types

import (
	"fmt"
	"strings"
)

// Direction is one of the four cardinal directions. The zero value is None
// and is never a legal move.
type Direction uint8

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

// Directions lists the valid directions in a fixed order.
var Directions = [4]Direction{Up, Down, Left, Right}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Delta converts a Direction into a unit displacement.
func (d Direction) Delta() Cell {
	switch d {
	case Up:
		return Cell{X: 0, Y: -1}
	case Down:
		return Cell{X: 0, Y: 1}
	case Left:
		return Cell{X: -1, Y: 0}
	case Right:
		return Cell{X: 1, Y: 0}
	default:
		return Cell{}
	}
}

// Opposite returns the reverse direction. None maps to None.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

// TurnLeft returns the direction after a counter-clockwise quarter turn.
func (d Direction) TurnLeft() Direction {
	switch d {
	case Up:
		return Left
	case Right:
		return Up
	case Down:
		return Right
	case Left:
		return Down
	default:
		return d
	}
}

// TurnRight returns the direction after a clockwise quarter turn.
func (d Direction) TurnRight() Direction {
	switch d {
	case Up:
		return Right
	case Right:
		return Down
	case Down:
		return Left
	case Left:
		return Up
	default:
		return d
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// ParseDirection maps one of "up", "down", "left" or "right" to its
// Direction. Any other input returns None and false.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	default:
		return None, false
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("marshal direction: invalid value %d", uint8(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, ok := ParseDirection(strings.TrimSpace(string(text)))
	if !ok {
		return fmt.Errorf("unmarshal direction: unknown symbol %q", text)
	}
	*d = parsed
	return nil
}
