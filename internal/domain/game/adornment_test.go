package game

import (
	"slices"
	"testing"

	errs "goban/internal/errors"
)

func TestCurrentMoveTokenAcquireRelease(t *testing.T) {
	token := NewCurrentMoveToken()
	m := NewMove(3, 3, Black)

	token.Acquire(m, "cookie")
	if !token.Held() || token.Holder() != m {
		t.Fatalf("expected token held by move")
	}
	if !slices.Contains(m.Adornments, token.Adornment()) {
		t.Fatalf("expected current move adornment on move")
	}
	if token.Adornment().Cookie != "cookie" || token.Adornment().Kind != CurrentMove {
		t.Fatalf("unexpected adornment %+v", token.Adornment())
	}

	token.Release()
	if token.Held() || token.Holder() != nil || token.Adornment().Cookie != nil {
		t.Fatalf("expected token to be free after release")
	}
	if slices.Contains(m.Adornments, token.Adornment()) {
		t.Fatalf("expected adornment detached from move")
	}

	other := NewMove(4, 4, White)
	token.Acquire(other, nil)
	if token.Holder() != other {
		t.Fatalf("expected token to move to another stone")
	}
}

func TestCurrentMoveTokenDoubleAcquirePanics(t *testing.T) {
	token := NewCurrentMoveToken()
	token.Acquire(NewMove(1, 1, Black), nil)
	expectPanic(t, errs.ErrCurrentMoveHeld, func() {
		token.Acquire(NewMove(2, 2, White), nil)
	})
}

func TestCurrentMoveTokenDoubleReleasePanics(t *testing.T) {
	token := NewCurrentMoveToken()
	expectPanic(t, errs.ErrCurrentMoveFree, token.Release)

	token.Acquire(NewMove(1, 1, Black), nil)
	token.Release()
	expectPanic(t, errs.ErrCurrentMoveFree, token.Release)
}
