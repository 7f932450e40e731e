package errors

import "errors"

var (
	ErrStoneOccupied    = errors.New("board already has a stone at location")
	ErrCurrentMoveHeld  = errors.New("current move adornment is already held")
	ErrCurrentMoveFree  = errors.New("current move adornment is not held")
	ErrBadCoordinates   = errors.New("malformed sgf coordinates")
	ErrPointOccupied    = errors.New("point is occupied")
	ErrOffBoard         = errors.New("point is off the board")
	ErrNoPreviousMove   = errors.New("no previous move")
	ErrNoNextMove       = errors.New("no next move")
	ErrBranchOutOfRange = errors.New("branch index out of range")
	ErrCaptureConflict  = errors.New("captures conflict with the moves recorded after this one")
	ErrBadColor         = errors.New("unknown stone color")
	ErrBadAdornment     = errors.New("unknown adornment kind")
	ErrGameNotFound     = errors.New("game not found")
	ErrBadBoardSize     = errors.New("board size must be between 1 and 19")
	ErrInternal         = errors.New("internal error")
)
