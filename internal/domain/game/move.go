package game

import (
	"fmt"
	"slices"

	"goban/internal/domain/sgf"
	errs "goban/internal/errors"
)

// Move is a node of the game tree: one stone or pass plus the markup and comments
// recorded at that point.
type Move struct {
	Row    int
	Column int
	Color  Color
	Number int

	// Previous is the move that led here. The tree is owned from the root down
	// through Next and Branches.
	Previous *Move
	// Next is the continuation shown when stepping forward. Once a second
	// continuation exists it is also one of Branches.
	Next *Move
	// Branches holds every continuation, and is nil until there is more than one.
	Branches []*Move

	// DeadStones are the stones this move captured. The capture logic that fills
	// it lives outside the board model.
	DeadStones []*Move
	Adornments []*Adornment
	Comments   string

	// ParsedNode keeps the node read from a .sgf file so properties the model does
	// not understand are written back out unchanged.
	ParsedNode *sgf.Node

	// Rendered is false for nodes read from a file whose branches or markup have
	// not been shown yet.
	Rendered bool
}

// NewMove returns an unlinked move. A row and column of sgf.NoIndex make a pass.
func NewMove(row, col int, color Color) *Move {
	return &Move{
		Row:        row,
		Column:     col,
		Color:      color,
		DeadStones: []*Move{},
		Adornments: []*Adornment{},
		Rendered:   true,
	}
}

func NewPass(color Color) *Move {
	return NewMove(sgf.NoIndex, sgf.NoIndex, color)
}

func (m *Move) IsPass() bool {
	return m.Row == sgf.NoIndex && m.Column == sgf.NoIndex
}

func (m *Move) Coords() (row, col int) {
	return m.Row, m.Column
}

func (m *Move) String() string {
	if m.IsPass() {
		return fmt.Sprintf("%d %s pass", m.Number, m.Color)
	}
	return fmt.Sprintf("%d %s %d,%d", m.Number, m.Color, m.Row, m.Column)
}

func (m *Move) AddAdornment(a *Adornment) *Adornment {
	m.Adornments = append(m.Adornments, a)
	return a
}

// RemoveAdornment removes the first occurrence of a, if any.
func (m *Move) RemoveAdornment(a *Adornment) {
	if i := slices.Index(m.Adornments, a); i >= 0 {
		m.Adornments = slices.Delete(m.Adornments, i, i+1)
	}
}

// AddContinuation links next after m and makes it the Next move. The second
// continuation turns the single Next link into a Branches list holding both.
func (m *Move) AddContinuation(next *Move) *Move {
	next.Previous = m
	switch {
	case m.Next == nil:
	case m.Branches == nil:
		m.Branches = []*Move{m.Next, next}
	default:
		m.Branches = append(m.Branches, next)
	}
	m.Next = next
	return next
}

// Continuations returns every move that follows m, in the order they were added.
func (m *Move) Continuations() []*Move {
	if m.Branches != nil {
		return m.Branches
	}
	if m.Next != nil {
		return []*Move{m.Next}
	}
	return nil
}

func (m *Move) HasBranches() bool {
	return len(m.Branches) > 1
}

// ContinuationAt returns the continuation of m at row, col, or nil.
func (m *Move) ContinuationAt(row, col int) *Move {
	for _, next := range m.Continuations() {
		if next.Row == row && next.Column == col {
			return next
		}
	}
	return nil
}

// BranchIndex returns the position of next among m's continuations, or -1.
func (m *Move) BranchIndex(next *Move) int {
	return slices.Index(m.Continuations(), next)
}

// SelectBranch makes continuation i the Next move.
func (m *Move) SelectBranch(i int) error {
	continuations := m.Continuations()
	if i < 0 || i >= len(continuations) {
		return fmt.Errorf("%w: %d of %d", errs.ErrBranchOutOfRange, i, len(continuations))
	}
	m.Next = continuations[i]
	return nil
}
