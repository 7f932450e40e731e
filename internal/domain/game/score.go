package game

// directions is the fixed search order of the score flood fill: down, right, up, left.
// The first stone reached in this order decides a probe, so changing it changes scores.
var directions = [4][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

type fillFrame struct {
	row, col int
	next     int // index into directions of the next neighbour to try
}

// Score probes every point and tallies, per color, how many probes reached a stone
// of that color first. A probe on a stone counts for that stone. This is a
// structural count, not rule accurate area or territory scoring.
//
// Origins run over 0..size on both axes; row or column 0 is off the board, so those
// probes find no stone and add nothing. Each probe gets its own visited matrix,
// making the whole pass O(size^4).
func (b *Board) Score() map[Color]int {
	score := make(map[Color]int)
	visited := make([][]bool, b.size)
	for i := range visited {
		visited[i] = make([]bool, b.size)
	}
	for row := 0; row <= b.size; row++ {
		for col := 0; col <= b.size; col++ {
			for i := range visited {
				clear(visited[i])
			}
			color := b.locateColor(row, col, visited)
			if color == NoColor {
				continue
			}
			score[color]++
		}
	}
	return score
}

// locateColor walks depth first from row, col and returns the color of the first
// stone it reaches, or NoColor if the reachable region holds no stones. The walk
// marks every point it enters in visited and never enters a point twice.
func (b *Board) locateColor(row, col int, visited [][]bool) Color {
	enter := func(r, c int) (Color, bool) {
		if !b.InBounds(r, c) || visited[r-1][c-1] {
			return NoColor, false
		}
		visited[r-1][c-1] = true
		return b.ColorAt(r, c), true
	}

	color, entered := enter(row, col)
	if !entered || color != NoColor {
		return color
	}
	stack := []fillFrame{{row: row, col: col}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(directions) {
			stack = stack[:len(stack)-1]
			continue
		}
		d := directions[top.next]
		top.next++
		r, c := top.row+d[0], top.col+d[1]
		color, entered = enter(r, c)
		if !entered {
			continue
		}
		if color != NoColor {
			return color
		}
		stack = append(stack, fillFrame{row: r, col: c})
	}
	return NoColor
}
