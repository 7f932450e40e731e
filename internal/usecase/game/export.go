package game

import (
	"strconv"

	"goban/internal/domain/game"
	"goban/internal/domain/sgf"
)

// modelledProperties are written from the move tree and never copied from a
// move's parsed node.
var modelledProperties = map[string]bool{
	"B": true, "W": true, "C": true, "TR": true, "SQ": true, "LB": true,
	"FF": true, "GM": true, "SZ": true, "KM": true,
}

// ExportSGF builds the sgf tree of the whole game. With flipped set every
// coordinate is mirrored through the board center, giving the opponent's view.
func (s *Session) ExportSGF(flipped bool) *sgf.SGF {
	e := exporter{size: s.board.Size(), flipped: flipped}

	root := e.node(s.start)
	root.Properties["FF"] = []string{"4"}
	root.Properties["GM"] = []string{"1"}
	root.Properties["SZ"] = []string{strconv.Itoa(s.board.Size())}
	root.Properties["KM"] = []string{strconv.FormatFloat(s.komi, 'f', 1, 64)}

	tree := &sgf.GameTree{Nodes: []sgf.Node{*root}}
	e.extend(tree, s.start)
	return &sgf.SGF{Root: tree}
}

func (s *Session) ExportSGFString(flipped bool) string {
	return sgf.Serialize(s.ExportSGF(flipped))
}

type exporter struct {
	size    int
	flipped bool
}

// extend appends the single-continuation run after m to tree, then one child
// tree per branch.
func (e exporter) extend(tree *sgf.GameTree, m *game.Move) {
	for {
		next := m.Continuations()
		switch len(next) {
		case 0:
			return
		case 1:
			m = next[0]
			tree.Nodes = append(tree.Nodes, *e.node(m))
			continue
		}
		for _, branch := range next {
			child := &sgf.GameTree{Nodes: []sgf.Node{*e.node(branch)}}
			e.extend(child, branch)
			tree.Children = append(tree.Children, child)
		}
		return
	}
}

func (e exporter) node(m *game.Move) *sgf.Node {
	n := sgf.NewNode()
	if m.ParsedNode != nil {
		for key, values := range m.ParsedNode.Properties {
			if !modelledProperties[key] {
				n.Properties[key] = append([]string(nil), values...)
			}
		}
	}
	if m.Color != game.NoColor {
		n.Add(string(m.Color), e.encode(m))
	}
	if m.Comments != "" {
		n.Add("C", m.Comments)
	}
	for _, a := range m.Adornments {
		switch a.Kind {
		case game.Triangle:
			n.Add("TR", e.encode(a))
		case game.Square:
			n.Add("SQ", e.encode(a))
		case game.Letter:
			n.Add("LB", e.encode(a)+":"+a.Letter)
		}
	}
	return n
}

func (e exporter) encode(p sgf.Point) string {
	row, col := p.Coords()
	return sgf.EncodeSized(row, col, e.size, p.IsPass(), e.flipped)
}
