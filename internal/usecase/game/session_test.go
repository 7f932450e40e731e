package game

import (
	"errors"
	"slices"
	"testing"

	"go.uber.org/zap"

	"goban/internal/domain/game"
	"goban/internal/domain/sgf"
	errs "goban/internal/errors"
)

func newTestSession(size int) *Session {
	return NewSession(size, 6.5, zap.NewNop().Sugar())
}

func mustPlay(t *testing.T, s *Session, row, col int, color game.Color) *game.Move {
	t.Helper()
	m, err := s.MakeMove(row, col, color)
	if err != nil {
		t.Fatalf("MakeMove(%d, %d, %s): %v", row, col, color, err)
	}
	return m
}

func TestMakeMoveExtendsMainLine(t *testing.T) {
	s := newTestSession(9)
	first := mustPlay(t, s, 3, 3, game.Black)
	second := mustPlay(t, s, 7, 7, game.White)

	if first.Number != 1 || second.Number != 2 {
		t.Fatalf("unexpected numbers %d, %d", first.Number, second.Number)
	}
	if second.Previous != first || first.Next != second || first.Previous != s.Start() {
		t.Fatalf("moves not linked into the tree")
	}
	if s.Board().MoveAt(3, 3) != first || s.Board().MoveAt(7, 7) != second {
		t.Fatalf("stones not placed on the board")
	}
	if s.Current() != second {
		t.Fatalf("expected second move to be current")
	}
	if !slices.Contains(second.Adornments, s.CurrentMoveAdornment()) {
		t.Fatalf("expected current move adornment on second move")
	}
	if slices.Contains(first.Adornments, s.CurrentMoveAdornment()) {
		t.Fatalf("expected current move adornment to leave the first move")
	}
	if got := s.MainLine(); len(got) != 2 || got[0] != first || got[1] != second {
		t.Fatalf("unexpected main line %v", got)
	}
}

func TestMakeMoveRejectsBadInput(t *testing.T) {
	s := newTestSession(9)
	mustPlay(t, s, 3, 3, game.Black)

	if _, err := s.MakeMove(3, 3, game.White); !errors.Is(err, errs.ErrPointOccupied) {
		t.Fatalf("expected ErrPointOccupied, got %v", err)
	}
	if _, err := s.MakeMove(10, 1, game.White); !errors.Is(err, errs.ErrOffBoard) {
		t.Fatalf("expected ErrOffBoard, got %v", err)
	}
	if _, err := s.MakeMove(4, 4, game.NoColor); !errors.Is(err, errs.ErrBadColor) {
		t.Fatalf("expected ErrBadColor, got %v", err)
	}
}

func TestBackAndForwardRestoreBoard(t *testing.T) {
	s := newTestSession(9)
	first := mustPlay(t, s, 3, 3, game.Black)
	second := mustPlay(t, s, 7, 7, game.White)

	if err := s.Back(); err != nil {
		t.Fatal(err)
	}
	if s.Current() != first || s.Board().HasStone(7, 7) {
		t.Fatalf("expected second move undone")
	}
	if err := s.Back(); err != nil {
		t.Fatal(err)
	}
	if !s.AtStart() || s.CurrentMoveAdornment() != nil {
		t.Fatalf("expected to be at the start with no current move adornment")
	}
	if err := s.Back(); !errors.Is(err, errs.ErrNoPreviousMove) {
		t.Fatalf("expected ErrNoPreviousMove, got %v", err)
	}

	s.GotoEnd()
	if s.Current() != second || s.Board().MoveAt(3, 3) != first {
		t.Fatalf("expected GotoEnd to replay both moves")
	}
	if err := s.Forward(); !errors.Is(err, errs.ErrNoNextMove) {
		t.Fatalf("expected ErrNoNextMove, got %v", err)
	}

	s.GotoStart()
	if len(s.Board().Stones()) != 0 || !s.AtStart() {
		t.Fatalf("expected GotoStart to clear the board")
	}
}

func TestBranches(t *testing.T) {
	s := newTestSession(9)
	first := mustPlay(t, s, 3, 3, game.Black)
	mainReply := mustPlay(t, s, 7, 7, game.White)
	if err := s.Back(); err != nil {
		t.Fatal(err)
	}
	variation := mustPlay(t, s, 7, 3, game.White)

	if len(first.Branches) != 2 || first.Branches[0] != mainReply || first.Branches[1] != variation {
		t.Fatalf("unexpected branches %v", first.Branches)
	}
	if first.Next != variation {
		t.Fatalf("expected the new variation to be Next")
	}

	if err := s.Back(); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectBranch(0); err != nil {
		t.Fatal(err)
	}
	if err := s.Forward(); err != nil {
		t.Fatal(err)
	}
	if s.Current() != mainReply || s.Board().HasStone(7, 3) {
		t.Fatalf("expected selected branch to be replayed")
	}
	if err := s.Back(); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectBranch(5); !errors.Is(err, errs.ErrBranchOutOfRange) {
		t.Fatalf("expected ErrBranchOutOfRange, got %v", err)
	}
}

func TestReplayingExistingMoveFollowsIt(t *testing.T) {
	s := newTestSession(9)
	first := mustPlay(t, s, 3, 3, game.Black)
	reply := mustPlay(t, s, 7, 7, game.White)
	s.GotoStart()

	if got := mustPlay(t, s, 3, 3, game.Black); got != first {
		t.Fatalf("expected existing first move to be followed")
	}
	if got := mustPlay(t, s, 7, 7, game.White); got != reply {
		t.Fatalf("expected existing reply to be followed")
	}
	if first.Branches != nil || s.Start().Branches != nil {
		t.Fatalf("expected no branches from replaying the same moves")
	}
}

func TestCaptureStones(t *testing.T) {
	s := newTestSession(5)
	mustPlay(t, s, 1, 2, game.Black)
	white := mustPlay(t, s, 1, 1, game.White)
	capture := mustPlay(t, s, 2, 1, game.Black)

	if err := s.CaptureStones([2]int{1, 1}); err != nil {
		t.Fatal(err)
	}
	if s.Board().HasStone(1, 1) || len(capture.DeadStones) != 1 || capture.DeadStones[0] != white {
		t.Fatalf("expected white stone captured")
	}
	if err := s.CaptureStones([2]int{0, 1}); !errors.Is(err, errs.ErrOffBoard) {
		t.Fatalf("expected ErrOffBoard, got %v", err)
	}

	if err := s.Back(); err != nil {
		t.Fatal(err)
	}
	if s.Board().MoveAt(1, 1) != white {
		t.Fatalf("expected captured stone restored on Back")
	}
	if err := s.Forward(); err != nil {
		t.Fatal(err)
	}
	if s.Board().HasStone(1, 1) {
		t.Fatalf("expected captured stone removed again on Forward")
	}
}

func TestPass(t *testing.T) {
	s := newTestSession(9)
	mustPlay(t, s, 3, 3, game.Black)
	pass := mustPlay(t, s, sgf.NoIndex, sgf.NoIndex, game.White)
	if !pass.IsPass() || pass.Number != 2 {
		t.Fatalf("expected pass numbered 2, got %v", pass)
	}
	if len(s.Board().Stones()) != 1 {
		t.Fatalf("expected a pass to leave the board alone")
	}
	if err := s.Back(); err != nil {
		t.Fatal(err)
	}
	if len(s.Board().Stones()) != 1 {
		t.Fatalf("expected undoing a pass to leave the board alone")
	}
}

func TestAdornments(t *testing.T) {
	s := newTestSession(9)
	if _, err := s.AddAdornment(game.Triangle, 1, 1, ""); err != nil {
		t.Fatal(err)
	}
	if len(s.Start().Adornments) != 1 {
		t.Fatalf("expected markup on the start node")
	}

	m := mustPlay(t, s, 3, 3, game.Black)
	a, err := s.AddAdornment(game.Letter, 2, 2, "A")
	if err != nil {
		t.Fatal(err)
	}
	if a.Move != m || len(m.Adornments) != 2 {
		t.Fatalf("expected letter and current move adornments on the move, got %v", m.Adornments)
	}
	if _, err := s.AddAdornment(game.CurrentMove, 2, 2, ""); !errors.Is(err, errs.ErrBadAdornment) {
		t.Fatalf("expected ErrBadAdornment, got %v", err)
	}
	if _, err := s.AddAdornment(game.Square, 0, 2, ""); !errors.Is(err, errs.ErrOffBoard) {
		t.Fatalf("expected ErrOffBoard, got %v", err)
	}
	if n := s.RemoveAdornmentsAt(2, 2); n != 1 {
		t.Fatalf("expected one adornment removed, got %d", n)
	}
	if n := s.RemoveAdornmentsAt(3, 3); n != 0 {
		t.Fatalf("expected current move adornment to stay, removed %d", n)
	}
}

func TestPlayCapturingLeavesSessionOnRejectedCapture(t *testing.T) {
	s := newTestSession(9)
	first := mustPlay(t, s, 3, 3, game.Black)

	if _, err := s.PlayCapturing(4, 4, game.White, [2]int{3, 3}, [2]int{19, 19}); !errors.Is(err, errs.ErrOffBoard) {
		t.Fatalf("expected ErrOffBoard, got %v", err)
	}
	if s.Current() != first || first.Next != nil || s.Board().HasStone(4, 4) || s.Board().MoveAt(3, 3) != first {
		t.Fatalf("expected rejected move to leave the session unchanged")
	}

	m, err := s.PlayCapturing(4, 4, game.White, [2]int{3, 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(m.DeadStones) != 1 || m.DeadStones[0] != first || s.Board().HasStone(3, 3) {
		t.Fatalf("expected the black stone captured")
	}
}

func TestPlayCapturingKeepsRecordedCaptures(t *testing.T) {
	s := newTestSession(5)
	mustPlay(t, s, 1, 1, game.Black)
	mustPlay(t, s, 3, 3, game.White)
	ko := mustPlay(t, s, 5, 5, game.Black)
	capture, err := s.PlayCapturing(2, 2, game.White, [2]int{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := s.Back(); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := s.PlayCapturing(5, 5, game.Black, [2]int{1, 1}); !errors.Is(err, errs.ErrCaptureConflict) {
		t.Fatalf("expected ErrCaptureConflict, got %v", err)
	}
	if len(ko.DeadStones) != 0 || !s.Board().HasStone(1, 1) {
		t.Fatalf("expected no capture recorded on the existing move")
	}
	if got, err := s.PlayCapturing(5, 5, game.Black); err != nil || got != ko {
		t.Fatalf("expected existing move followed, got %v, %v", got, err)
	}
	if got, err := s.PlayCapturing(2, 2, game.White, [2]int{1, 1}); err != nil || got != capture {
		t.Fatalf("expected recorded capture to be accepted, got %v, %v", got, err)
	}

	for i := 0; i < 4; i++ {
		if err := s.Back(); err != nil {
			t.Fatal(err)
		}
	}
	if !s.AtStart() || len(s.Board().Stones()) != 0 {
		t.Fatalf("expected an empty board at the start, got %v", s.Board().Stones())
	}
}

func TestCaptureStonesRefusesMoveWithContinuations(t *testing.T) {
	s := newTestSession(5)
	mustPlay(t, s, 1, 1, game.Black)
	mustPlay(t, s, 3, 3, game.White)
	mustPlay(t, s, 5, 5, game.Black)
	if err := s.Back(); err != nil {
		t.Fatal(err)
	}

	if err := s.CaptureStones([2]int{1, 1}); !errors.Is(err, errs.ErrCaptureConflict) {
		t.Fatalf("expected ErrCaptureConflict, got %v", err)
	}
	if !s.Board().HasStone(1, 1) {
		t.Fatalf("expected the stone to stay on the board")
	}
	if err := s.CaptureStones(); err != nil {
		t.Fatalf("expected no captures to be accepted, got %v", err)
	}
}
