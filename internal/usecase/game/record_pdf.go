package game

import (
	"fmt"
	"io"
	"sort"

	"github.com/jung-kurt/gofpdf"

	"goban/internal/domain/game"
	"goban/internal/domain/sgf"
)

const (
	diagramLeft  = 25.0
	diagramTop   = 35.0
	diagramWidth = 150.0
)

// WritePDF prints the current position and the main line record to w.
func (s *Session) WritePDF(w io.Writer, title string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()
	pdf.SetFont("Courier", "B", 14)
	pdf.Cell(0, 10, title)
	pdf.Ln(8)
	pdf.SetFont("Courier", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Size %d  Komi %.1f  Move %d  Score %s",
		s.board.Size(), s.komi, s.current.Number, formatScore(s.Score())))

	s.drawDiagram(pdf)

	pdf.AddPage()
	pdf.SetFont("Courier", "B", 12)
	pdf.Cell(0, 8, "Record")
	pdf.Ln(10)
	pdf.SetFont("Courier", "", 10)
	size := s.board.Size()
	for _, m := range s.MainLine() {
		coords := sgf.EncodeSized(m.Row, m.Column, size, m.IsPass(), false)
		if coords == "" {
			coords = "pass"
		}
		line := fmt.Sprintf("%3d. %s %s", m.Number, m.Color, coords)
		if m.Comments != "" {
			line += "  " + m.Comments
		}
		pdf.MultiCell(0, 4.5, line, "", "L", false)
	}

	return pdf.Output(w)
}

func (s *Session) drawDiagram(pdf *gofpdf.Fpdf) {
	size := s.board.Size()
	cell := diagramWidth / float64(size)
	last := float64(size-1) * cell

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	for i := 0; i < size; i++ {
		offset := float64(i) * cell
		pdf.Line(diagramLeft, diagramTop+offset, diagramLeft+last, diagramTop+offset)
		pdf.Line(diagramLeft+offset, diagramTop, diagramLeft+offset, diagramTop+last)
	}

	for _, m := range s.board.Stones() {
		x := diagramLeft + float64(m.Column-1)*cell
		y := diagramTop + float64(m.Row-1)*cell
		if m.Color == game.Black {
			pdf.SetFillColor(0, 0, 0)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.Circle(x, y, cell*0.45, "FD")
	}
}

func formatScore(score map[game.Color]int) string {
	if len(score) == 0 {
		return "-"
	}
	colors := make([]string, 0, len(score))
	for c := range score {
		colors = append(colors, string(c))
	}
	sort.Strings(colors)
	out := ""
	for i, c := range colors {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s:%d", c, score[game.Color(c)])
	}
	return out
}
