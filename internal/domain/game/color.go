package game

import (
	"fmt"
	"strings"

	errs "goban/internal/errors"
)

// Color identifies a stone. The board only compares colors, so any two distinct
// non-empty values work; Black and White double as the sgf move property names.
type Color string

const (
	NoColor Color = ""
	Black   Color = "B"
	White   Color = "W"
)

// ParseColor accepts "b", "w", "black" and "white" in any case.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(s) {
	case "b", "black":
		return Black, nil
	case "w", "white":
		return White, nil
	}
	return NoColor, fmt.Errorf("%w: %q", errs.ErrBadColor, s)
}

func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return NoColor
}
