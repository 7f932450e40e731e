package sgf

import (
	"fmt"
	"strings"
	"unicode/utf8"

	errs "goban/internal/errors"
)

// NoIndex is the row and column of a pass move.
const NoIndex = -100

// MaxBoardSize is the largest edge length the letter alphabet can address.
const MaxBoardSize = 19

// letters maps one-based model indexes to sgf letters: letters[0] is 'a' for index 1.
const letters = "abcdefghijklmnopqrs"

// Point is anything with a model location that can be written as sgf coordinates.
// Moves and adornments both satisfy it.
type Point interface {
	Coords() (row, col int)
	IsPass() bool
}

// Encode returns the letter pair for p, or "" for a pass. If flipped, the point is
// mirrored through the board center of a 19x19 board, which is how opponent-view
// files are written.
func Encode(p Point, flipped bool) string {
	row, col := p.Coords()
	return EncodeCoords(row, col, p.IsPass(), flipped)
}

func EncodeCoords(row, col int, isPass, flipped bool) string {
	return EncodeSized(row, col, MaxBoardSize, isPass, flipped)
}

// EncodeSized is EncodeCoords for a board of the given edge length, mirroring as
// (size + 1 - index). Row and col must be valid one-based indexes.
func EncodeSized(row, col, size int, isPass, flipped bool) string {
	if isPass {
		return ""
	}
	if flipped {
		row, col = size+1-row, size+1-col
	}
	return string([]byte{letters[col-1], letters[row-1]})
}

// Decode returns the model row, col for sgf coordinates. "" is a pass and decodes to
// (NoIndex, NoIndex). A letter outside a..s decodes to -1.
func Decode(coords string) (row, col int) {
	if coords == "" {
		return NoIndex, NoIndex
	}
	if len(coords) < 2 {
		return -1, -1
	}
	coords = strings.ToLower(coords)
	return letterIndex(coords[1]), letterIndex(coords[0])
}

// ParseCoords is the strict form of Decode for coordinates read from untrusted input.
func ParseCoords(coords string) (row, col int, err error) {
	if coords == "" {
		return NoIndex, NoIndex, nil
	}
	if len(coords) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", errs.ErrBadCoordinates, coords)
	}
	row, col = Decode(coords)
	if row < 1 || col < 1 {
		return 0, 0, fmt.Errorf("%w: %q", errs.ErrBadCoordinates, coords)
	}
	return row, col, nil
}

// Flip mirrors sgf coordinates through the center of a 19x19 board.
func Flip(coords string) string {
	return FlipSized(coords, MaxBoardSize)
}

func FlipSized(coords string, size int) string {
	row, col := Decode(coords)
	if row == NoIndex {
		return ""
	}
	return EncodeSized(row, col, size, false, true)
}

// DecodeLabeled parses label data of the form "<col><row>:<label>".
func DecodeLabeled(data string) (row, col int, label rune) {
	if len(data) < 4 {
		row, col = Decode(data)
		return row, col, 0
	}
	row, col = Decode(data[:2])
	label, _ = utf8.DecodeRuneInString(data[3:])
	return row, col, label
}

func letterIndex(c byte) int {
	i := strings.IndexByte(letters, c)
	if i < 0 {
		return -1
	}
	return i + 1
}
