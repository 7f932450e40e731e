package game

import (
	"fmt"

	"go.uber.org/zap"

	"goban/internal/domain/game"
	"goban/internal/domain/sgf"
	errs "goban/internal/errors"
)

// Session is one game being edited: the board, the move tree and the current
// position in it. A Session is not safe for concurrent use.
type Session struct {
	log   *zap.SugaredLogger
	board *game.Board
	komi  float64

	// start is the game start node. It is never a stone; its continuations are
	// the first moves and its ParsedNode holds the game info properties.
	start   *game.Move
	current *game.Move
	token   *game.CurrentMoveToken
}

func NewSession(size int, komi float64, log *zap.SugaredLogger) *Session {
	start := game.NewPass(game.NoColor)
	return &Session{
		log:     log,
		board:   game.NewBoard(size),
		komi:    komi,
		start:   start,
		current: start,
		token:   game.NewCurrentMoveToken(),
	}
}

func (s *Session) Board() *game.Board {
	return s.board
}

func (s *Session) Start() *game.Move {
	return s.start
}

func (s *Session) Current() *game.Move {
	return s.current
}

func (s *Session) AtStart() bool {
	return s.current == s.start
}

// CurrentMoveAdornment returns the adornment marking the current move, or nil
// when the session is at the start.
func (s *Session) CurrentMoveAdornment() *game.Adornment {
	if !s.token.Held() {
		return nil
	}
	return s.token.Adornment()
}

// MakeMove plays color at row, col after the current move. Playing where the
// current move already has a continuation of the same color follows that branch
// instead of adding a duplicate. Use sgf.NoIndex for both coordinates to pass.
func (s *Session) MakeMove(row, col int, color game.Color) (*game.Move, error) {
	if color != game.Black && color != game.White {
		return nil, fmt.Errorf("%w: %q", errs.ErrBadColor, color)
	}
	isPass := row == sgf.NoIndex && col == sgf.NoIndex
	if !isPass {
		if !s.board.InBounds(row, col) {
			return nil, fmt.Errorf("%w: %d, %d", errs.ErrOffBoard, row, col)
		}
		if s.board.HasStone(row, col) {
			return nil, fmt.Errorf("%w: %d, %d", errs.ErrPointOccupied, row, col)
		}
	}

	if existing := s.current.ContinuationAt(row, col); existing != nil && existing.Color == color {
		if err := s.current.SelectBranch(s.current.BranchIndex(existing)); err != nil {
			return nil, err
		}
		s.log.Debugf("following existing move %s", existing)
		return existing, s.Forward()
	}

	move := game.NewMove(row, col, color)
	move.Number = s.current.Number + 1
	s.current.AddContinuation(move)
	s.replay(move)
	s.log.Debugf("played move %s", move)
	return move, nil
}

// PlayCapturing is MakeMove followed by CaptureStones, applied as a unit: when any
// point is rejected the session is left as it was. Following an existing
// continuation keeps the captures recorded on it, so captured may only name
// stones that continuation already took.
func (s *Session) PlayCapturing(row, col int, color game.Color, captured ...[2]int) (*game.Move, error) {
	if err := s.checkOnBoard(captured); err != nil {
		return nil, err
	}
	if existing := s.current.ContinuationAt(row, col); existing != nil && existing.Color == color {
		for _, p := range captured {
			if !tookStoneAt(existing, p) {
				return nil, fmt.Errorf("%w: %d, %d", errs.ErrCaptureConflict, p[0], p[1])
			}
		}
		return s.MakeMove(row, col, color)
	}

	move, err := s.MakeMove(row, col, color)
	if err != nil {
		return nil, err
	}
	return move, s.CaptureStones(captured...)
}

// CaptureStones records the stones at points as captured by the current move and
// takes them off the board. Which stones die is decided by the caller. Moves
// after the current one were recorded against the board as it is, so a move
// with continuations takes no new captures.
func (s *Session) CaptureStones(points ...[2]int) error {
	if s.AtStart() {
		return errs.ErrNoPreviousMove
	}
	if err := s.checkOnBoard(points); err != nil {
		return err
	}
	if len(points) > 0 && len(s.current.Continuations()) > 0 {
		return fmt.Errorf("%w: move %s", errs.ErrCaptureConflict, s.current)
	}
	for _, p := range points {
		dead := s.board.MoveAt(p[0], p[1])
		if dead == nil || dead == s.current {
			continue
		}
		s.current.DeadStones = append(s.current.DeadStones, dead)
		s.board.RemoveStone(dead)
	}
	return nil
}

func (s *Session) checkOnBoard(points [][2]int) error {
	for _, p := range points {
		if !s.board.InBounds(p[0], p[1]) {
			return fmt.Errorf("%w: %d, %d", errs.ErrOffBoard, p[0], p[1])
		}
	}
	return nil
}

func tookStoneAt(m *game.Move, p [2]int) bool {
	for _, dead := range m.DeadStones {
		if dead.Row == p[0] && dead.Column == p[1] {
			return true
		}
	}
	return false
}

// Back unwinds the current move, putting back any stones it captured.
func (s *Session) Back() error {
	if s.AtStart() {
		return errs.ErrNoPreviousMove
	}
	move := s.current
	if !move.IsPass() {
		s.board.RemoveStone(move)
	}
	for _, dead := range move.DeadStones {
		s.board.AddStone(dead)
	}
	s.setCurrent(move.Previous)
	return nil
}

// Forward replays the Next move of the current move.
func (s *Session) Forward() error {
	next := s.current.Next
	if next == nil {
		return errs.ErrNoNextMove
	}
	s.replay(next)
	return nil
}

func (s *Session) GotoStart() {
	s.board.GotoStart()
	s.setCurrent(s.start)
}

func (s *Session) GotoEnd() {
	for s.Forward() == nil {
	}
}

// SelectBranch picks which continuation of the current move Forward follows.
func (s *Session) SelectBranch(i int) error {
	return s.current.SelectBranch(i)
}

// MainLine returns the moves reached by following Next from the start.
func (s *Session) MainLine() []*game.Move {
	var line []*game.Move
	for m := s.start.Next; m != nil; m = m.Next {
		line = append(line, m)
	}
	return line
}

func (s *Session) Score() map[game.Color]int {
	return s.board.Score()
}

func (s *Session) SetComment(text string) {
	s.current.Comments = text
}

// AddAdornment puts markup on the current move, or on the initial board when
// the session is at the start.
func (s *Session) AddAdornment(kind game.AdornmentKind, row, col int, letter string) (*game.Adornment, error) {
	if kind == game.CurrentMove {
		return nil, fmt.Errorf("%w: %s", errs.ErrBadAdornment, kind)
	}
	if !s.board.InBounds(row, col) {
		return nil, fmt.Errorf("%w: %d, %d", errs.ErrOffBoard, row, col)
	}
	var owner *game.Move
	if !s.AtStart() {
		owner = s.current
	}
	return s.current.AddAdornment(game.NewAdornment(kind, row, col, owner, letter)), nil
}

// RemoveAdornmentsAt removes the markup at row, col from the current move. The
// current move adornment is left alone.
func (s *Session) RemoveAdornmentsAt(row, col int) int {
	removed := 0
	for _, a := range append([]*game.Adornment(nil), s.current.Adornments...) {
		if a.Kind != game.CurrentMove && a.Row == row && a.Column == col {
			s.current.RemoveAdornment(a)
			removed++
		}
	}
	return removed
}

// replay puts move on the board after the current move and makes it current.
func (s *Session) replay(move *game.Move) {
	if !move.IsPass() {
		s.board.AddStone(move)
	}
	for _, dead := range move.DeadStones {
		s.board.RemoveStone(dead)
	}
	move.Rendered = true
	s.setCurrent(move)
}

func (s *Session) setCurrent(move *game.Move) {
	if s.token.Held() {
		s.token.Release()
	}
	s.current = move
	if move != s.start {
		s.token.Acquire(move, nil)
	}
}
