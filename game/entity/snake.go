package entity

import "snake-core/game/types"

// Snake is an ordered body, head first and tail last. A Snake value is never
// modified in place: Advance always returns a fresh backing array.
type Snake []types.Cell

// NewSnake lays out length cells ending at head and extending away from dir,
// so the first move in dir is always legal.
func NewSnake(head types.Cell, dir types.Direction, length int) Snake {
	back := dir.Opposite().Delta()
	body := make(Snake, 0, length)
	pos := head
	for i := 0; i < length; i++ {
		body = append(body, pos)
		pos = pos.Add(back)
	}
	return body
}

// Head returns the first cell.
func (s Snake) Head() types.Cell {
	return s[0]
}

// Tail returns the last cell.
func (s Snake) Tail() types.Cell {
	return s[len(s)-1]
}

// WithoutTail returns the body minus its last cell. The result aliases s and
// must only be read.
func (s Snake) WithoutTail() Snake {
	if len(s) == 0 {
		return s
	}
	return s[:len(s)-1]
}

// Contains reports whether c is one of the body cells.
func (s Snake) Contains(c types.Cell) bool {
	for _, part := range s {
		if part == c {
			return true
		}
	}
	return false
}

// Advance prepends newHead. Unless grow is set the tail is dropped so the
// length stays the same.
func (s Snake) Advance(newHead types.Cell, grow bool) Snake {
	n := len(s)
	if grow {
		n++
	}
	next := make(Snake, 0, n)
	next = append(next, newHead)
	next = append(next, s[:n-1]...)
	return next
}

// Clone returns a copy with its own backing array.
func (s Snake) Clone() Snake {
	if s == nil {
		return nil
	}
	out := make(Snake, len(s))
	copy(out, s)
	return out
}
