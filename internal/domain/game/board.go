package game

import (
	"fmt"

	errs "goban/internal/errors"
)

// Board is the stone model of the game. Rows and columns are one-based, as players
// talk about go boards.
type Board struct {
	size  int
	moves [][]*Move
}

func NewBoard(size int) *Board {
	b := &Board{size: size, moves: make([][]*Move, size)}
	for i := range b.moves {
		b.moves[i] = make([]*Move, size)
	}
	return b
}

func (b *Board) Size() int {
	return b.size
}

// AddStone records move at its location. The location must be empty; placing onto
// an occupied point is a caller bug and panics with ErrStoneOccupied.
func (b *Board) AddStone(move *Move) *Move {
	if b.moves[move.Row-1][move.Column-1] != nil {
		panic(fmt.Errorf("%w: %d, %d", errs.ErrStoneOccupied, move.Row, move.Column))
	}
	b.moves[move.Row-1][move.Column-1] = move
	return move
}

// RemoveStone clears the point at move's row and column. There is no check that
// move is the stone stored there.
func (b *Board) RemoveStone(move *Move) {
	b.moves[move.Row-1][move.Column-1] = nil
}

func (b *Board) RemoveStoneAt(row, col int) {
	if m := b.MoveAt(row, col); m != nil {
		b.RemoveStone(m)
	}
}

// GotoStart removes all stones.
func (b *Board) GotoStart() {
	for row := range b.moves {
		for col := range b.moves[row] {
			b.moves[row][col] = nil
		}
	}
}

// MoveAt returns the move at row, col, or nil if the point is empty.
// Row and col must be valid indexes.
func (b *Board) MoveAt(row, col int) *Move {
	return b.moves[row-1][col-1]
}

func (b *Board) ColorAt(row, col int) Color {
	if m := b.moves[row-1][col-1]; m != nil {
		return m.Color
	}
	return NoColor
}

func (b *Board) InBounds(row, col int) bool {
	return row >= 1 && row <= b.size && col >= 1 && col <= b.size
}

func (b *Board) HasStone(row, col int) bool {
	return b.MoveAt(row, col) != nil
}

// The directional queries below treat anything off the board as empty, so the
// edges never have a stone beyond them.

func (b *Board) HasStoneLeft(row, col int) bool {
	return col-1 >= 1 && b.HasStone(row, col-1)
}

func (b *Board) HasStoneColorLeft(row, col int, color Color) bool {
	return b.HasStoneLeft(row, col) && b.MoveAt(row, col-1).Color == color
}

func (b *Board) HasStoneRight(row, col int) bool {
	return col+1 <= b.size && b.HasStone(row, col+1)
}

func (b *Board) HasStoneColorRight(row, col int, color Color) bool {
	return b.HasStoneRight(row, col) && b.MoveAt(row, col+1).Color == color
}

func (b *Board) HasStoneUp(row, col int) bool {
	return row-1 >= 1 && b.HasStone(row-1, col)
}

func (b *Board) HasStoneColorUp(row, col int, color Color) bool {
	return b.HasStoneUp(row, col) && b.MoveAt(row-1, col).Color == color
}

func (b *Board) HasStoneDown(row, col int) bool {
	return row+1 <= b.size && b.HasStone(row+1, col)
}

func (b *Board) HasStoneColorDown(row, col int, color Color) bool {
	return b.HasStoneDown(row, col) && b.MoveAt(row+1, col).Color == color
}

// Stones returns every stone on the board in row-major order.
func (b *Board) Stones() []*Move {
	var stones []*Move
	for _, row := range b.moves {
		for _, m := range row {
			if m != nil {
				stones = append(stones, m)
			}
		}
	}
	return stones
}
