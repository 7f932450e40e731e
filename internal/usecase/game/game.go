package game

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"goban/internal/domain/game"
	"goban/internal/domain/sgf"
	errs "goban/internal/errors"
)

type GameStore interface {
	GenerateGameKey() string
	SaveSGFToRedis(ctx context.Context, key string, sgfText string) error
	LoadSGFFromRedis(ctx context.Context, key string) (string, error)
	PutRecordToMongo(ctx context.Context, record game.Record) error
	GetRecordByKey(ctx context.Context, key string) (game.Record, error)
}

type activeGame struct {
	session   *Session
	createdAt time.Time
}

// GameUseCase keeps the sessions being edited. Sessions are single threaded, so
// every call into one holds mu.
type GameUseCase struct {
	store GameStore
	log   *zap.SugaredLogger

	mu    sync.Mutex
	games map[string]*activeGame
}

func NewGameUseCase(store GameStore, log *zap.SugaredLogger) *GameUseCase {
	return &GameUseCase{store: store, log: log, games: make(map[string]*activeGame)}
}

func (g *GameUseCase) CreateGame(ctx context.Context, req game.CreateGameRequest) (string, error) {
	if req.BoardSize < 1 || req.BoardSize > sgf.MaxBoardSize {
		return "", fmt.Errorf("%w: %d", errs.ErrBadBoardSize, req.BoardSize)
	}
	key := g.store.GenerateGameKey()
	session := NewSession(req.BoardSize, req.Komi, g.log.With("game", key))

	g.mu.Lock()
	g.games[key] = &activeGame{session: session, createdAt: time.Now()}
	sgfText := session.ExportSGFString(false)
	g.mu.Unlock()

	if err := g.store.SaveSGFToRedis(ctx, key, sgfText); err != nil {
		return "", fmt.Errorf("save new game %s: %w", key, err)
	}
	g.log.Infof("game created with key %s, size %d", key, req.BoardSize)
	return key, nil
}

func (g *GameUseCase) PlayMove(ctx context.Context, key string, req game.MoveRequest) (game.GameStateResponse, error) {
	color, err := game.ParseColor(req.Color)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	row, col, err := sgf.ParseCoords(req.Coordinates)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	captured := make([][2]int, 0, len(req.Captured))
	for _, c := range req.Captured {
		r, cl, err := sgf.ParseCoords(c)
		if err != nil || r == sgf.NoIndex {
			return game.GameStateResponse{}, fmt.Errorf("%w: captured %q", errs.ErrBadCoordinates, c)
		}
		captured = append(captured, [2]int{r, cl})
	}

	return g.edit(ctx, key, func(s *Session) error {
		_, err := s.PlayCapturing(row, col, color, captured...)
		return err
	})
}

func (g *GameUseCase) Back(ctx context.Context, key string) (game.GameStateResponse, error) {
	return g.edit(ctx, key, func(s *Session) error { return s.Back() })
}

func (g *GameUseCase) Forward(ctx context.Context, key string) (game.GameStateResponse, error) {
	return g.edit(ctx, key, func(s *Session) error { return s.Forward() })
}

func (g *GameUseCase) GotoStart(ctx context.Context, key string) (game.GameStateResponse, error) {
	return g.edit(ctx, key, func(s *Session) error {
		s.GotoStart()
		return nil
	})
}

func (g *GameUseCase) GotoEnd(ctx context.Context, key string) (game.GameStateResponse, error) {
	return g.edit(ctx, key, func(s *Session) error {
		s.GotoEnd()
		return nil
	})
}

func (g *GameUseCase) SelectBranch(ctx context.Context, key string, branch int) (game.GameStateResponse, error) {
	return g.edit(ctx, key, func(s *Session) error { return s.SelectBranch(branch) })
}

func (g *GameUseCase) Comment(ctx context.Context, key string, req game.CommentRequest) (game.GameStateResponse, error) {
	return g.edit(ctx, key, func(s *Session) error {
		s.SetComment(req.Text)
		return nil
	})
}

func (g *GameUseCase) Adorn(ctx context.Context, key string, req game.AdornmentRequest) (game.GameStateResponse, error) {
	kind, err := game.ParseAdornmentKind(req.Kind)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	row, col, err := sgf.ParseCoords(req.Coordinates)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	return g.edit(ctx, key, func(s *Session) error {
		_, err := s.AddAdornment(kind, row, col, req.Letter)
		return err
	})
}

// RemoveAdornments clears the markup at coordinates on the current move.
func (g *GameUseCase) RemoveAdornments(ctx context.Context, key string, coordinates string) (game.GameStateResponse, error) {
	row, col, err := sgf.ParseCoords(coordinates)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	if row == sgf.NoIndex {
		return game.GameStateResponse{}, fmt.Errorf("%w: empty coordinates", errs.ErrBadCoordinates)
	}
	return g.edit(ctx, key, func(s *Session) error {
		if !s.board.InBounds(row, col) {
			return fmt.Errorf("%w: %d, %d", errs.ErrOffBoard, row, col)
		}
		s.RemoveAdornmentsAt(row, col)
		return nil
	})
}

func (g *GameUseCase) State(key string) (game.GameStateResponse, error) {
	var state game.GameStateResponse
	err := g.withSession(key, func(s *Session) error {
		state = stateOf(key, s)
		return nil
	})
	return state, err
}

// ExportSGF returns the game as sgf text, mirrored if flipped. The unmirrored text
// is also cached in Redis.
func (g *GameUseCase) ExportSGF(ctx context.Context, key string, flipped bool) (string, error) {
	var text, stored string
	err := g.withSession(key, func(s *Session) error {
		text = s.ExportSGFString(flipped)
		stored = text
		if flipped {
			stored = s.ExportSGFString(false)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if err := g.store.SaveSGFToRedis(ctx, key, stored); err != nil {
		return "", fmt.Errorf("save sgf of %s: %w", key, err)
	}
	return text, nil
}

// LoadSGF returns the last sgf text saved for key.
func (g *GameUseCase) LoadSGF(ctx context.Context, key string) (string, error) {
	return g.store.LoadSGFFromRedis(ctx, key)
}

// Archive stores a record of the game in Mongo.
func (g *GameUseCase) Archive(ctx context.Context, key string) (game.Record, error) {
	var record game.Record
	err := g.withSession(key, func(s *Session) error {
		record = game.Record{
			GameKey:   key,
			BoardSize: s.board.Size(),
			Komi:      s.komi,
			CreatedAt: g.games[key].createdAt,
			MoveCount: len(s.MainLine()),
			Score:     scoreView(s.Score()),
			SGF:       s.ExportSGFString(false),
		}
		return nil
	})
	if err != nil {
		return game.Record{}, err
	}
	if err := g.store.PutRecordToMongo(ctx, record); err != nil {
		return game.Record{}, fmt.Errorf("archive %s: %w", key, err)
	}
	g.log.Infof("game %s archived with %d moves", key, record.MoveCount)
	return record, nil
}

func (g *GameUseCase) GetArchived(ctx context.Context, key string) (game.Record, error) {
	return g.store.GetRecordByKey(ctx, key)
}

func (g *GameUseCase) WritePDF(key string, w io.Writer) error {
	return g.withSession(key, func(s *Session) error {
		return s.WritePDF(w, "Game "+key)
	})
}

// edit applies fn to the session and saves the resulting sgf to Redis.
func (g *GameUseCase) edit(ctx context.Context, key string, fn func(s *Session) error) (game.GameStateResponse, error) {
	var state game.GameStateResponse
	err := g.withSession(key, func(s *Session) error {
		if err := fn(s); err != nil {
			return err
		}
		state = stateOf(key, s)
		return nil
	})
	if err != nil {
		return game.GameStateResponse{}, err
	}
	if err := g.store.SaveSGFToRedis(ctx, key, state.SGF); err != nil {
		g.log.Errorf("failed to save sgf of %s: %v", key, err)
		return game.GameStateResponse{}, fmt.Errorf("save sgf of %s: %w", key, err)
	}
	return state, nil
}

// withSession runs fn on the session of key with mu held.
func (g *GameUseCase) withSession(key string, fn func(s *Session) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	active, ok := g.games[key]
	if !ok {
		return fmt.Errorf("%w: %s", errs.ErrGameNotFound, key)
	}
	return fn(active.session)
}

func stateOf(key string, s *Session) game.GameStateResponse {
	m := s.Current()
	view := game.MoveView{
		Number:   m.Number,
		Color:    string(m.Color),
		IsPass:   m.IsPass() && !s.AtStart(),
		Comments: m.Comments,
		Branches: len(m.Continuations()),
	}
	if !s.AtStart() {
		view.Coordinates = sgf.EncodeSized(m.Row, m.Column, s.board.Size(), m.IsPass(), false)
	}
	return game.GameStateResponse{
		GameKey: key,
		Move:    view,
		Score:   scoreView(s.Score()),
		SGF:     s.ExportSGFString(false),
	}
}

func scoreView(score map[game.Color]int) map[string]int {
	out := make(map[string]int, len(score))
	for c, n := range score {
		out[string(c)] = n
	}
	return out
}
