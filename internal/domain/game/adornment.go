package game

import (
	"fmt"
	"strings"

	errs "goban/internal/errors"
)

type AdornmentKind int

const (
	Triangle AdornmentKind = iota
	Square
	Letter
	CurrentMove
)

func (k AdornmentKind) String() string {
	switch k {
	case Triangle:
		return "triangle"
	case Square:
		return "square"
	case Letter:
		return "letter"
	case CurrentMove:
		return "current"
	}
	return fmt.Sprintf("AdornmentKind(%d)", int(k))
}

// ParseAdornmentKind accepts the markup kinds a user can place. The current move
// adornment is managed by CurrentMoveToken and cannot be parsed.
func ParseAdornmentKind(s string) (AdornmentKind, error) {
	switch strings.ToLower(s) {
	case "triangle", "tr":
		return Triangle, nil
	case "square", "sq":
		return Square, nil
	case "letter", "lb":
		return Letter, nil
	}
	return 0, fmt.Errorf("%w: %q", errs.ErrBadAdornment, s)
}

// Adornment is markup on a stone or board point.
type Adornment struct {
	Kind   AdornmentKind
	Row    int
	Column int
	Move   *Move
	// Letter is only used by Letter adornments.
	Letter string
	// Cookie belongs to the UI layer, which uses it to find what it drew for the
	// adornment.
	Cookie any
}

func NewAdornment(kind AdornmentKind, row, col int, move *Move, letter string) *Adornment {
	return &Adornment{Kind: kind, Row: row, Column: col, Move: move, Letter: letter}
}

func (a *Adornment) Coords() (row, col int) {
	return a.Row, a.Column
}

func (a *Adornment) IsPass() bool {
	return false
}

// CurrentMoveToken guards the single current move adornment of a game. At most one
// move holds it; Acquire while held and Release while free are caller bugs and panic.
type CurrentMoveToken struct {
	adornment *Adornment
}

func NewCurrentMoveToken() *CurrentMoveToken {
	return &CurrentMoveToken{adornment: NewAdornment(CurrentMove, 1, 1, nil, "")}
}

// Acquire attaches the current move adornment to move.
func (t *CurrentMoveToken) Acquire(move *Move, cookie any) {
	if held := t.adornment.Move; held != nil {
		panic(fmt.Errorf("%w: at %d, %d", errs.ErrCurrentMoveHeld, held.Row, held.Column))
	}
	t.adornment.Move = move
	t.adornment.Row, t.adornment.Column = move.Row, move.Column
	t.adornment.Cookie = cookie
	move.AddAdornment(t.adornment)
}

// Release detaches the current move adornment so another move can acquire it.
func (t *CurrentMoveToken) Release() {
	move := t.adornment.Move
	if move == nil {
		panic(errs.ErrCurrentMoveFree)
	}
	move.RemoveAdornment(t.adornment)
	t.adornment.Move = nil
	t.adornment.Cookie = nil
}

func (t *CurrentMoveToken) Held() bool {
	return t.adornment.Move != nil
}

// Holder returns the move holding the adornment, or nil.
func (t *CurrentMoveToken) Holder() *Move {
	return t.adornment.Move
}

func (t *CurrentMoveToken) Adornment() *Adornment {
	return t.adornment
}
