package game

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"goban/internal/bootstrap"
	"goban/internal/domain/game"
	errs "goban/internal/errors"
	"goban/internal/httpresponse"
	gameuc "goban/internal/usecase/game"
	"goban/internal/utils"
)

type GameHandler struct {
	cfg    bootstrap.Config
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewGameHandler(cfg bootstrap.Config, log *zap.SugaredLogger, store gameuc.GameStore) *GameHandler {
	return &GameHandler{
		cfg:    cfg,
		log:    log,
		gameUC: gameuc.NewGameUseCase(store, log),
	}
}

func (g *GameHandler) Routes(r chi.Router) {
	r.Post("/games", g.HandleNewGame)
	r.Route("/games/{key}", func(r chi.Router) {
		r.Get("/", g.HandleState)
		r.Post("/moves", g.HandleMove)
		r.Post("/back", g.navigate(g.gameUC.Back))
		r.Post("/forward", g.navigate(g.gameUC.Forward))
		r.Post("/start", g.navigate(g.gameUC.GotoStart))
		r.Post("/end", g.navigate(g.gameUC.GotoEnd))
		r.Post("/branch", g.HandleSelectBranch)
		r.Post("/comment", g.HandleComment)
		r.Post("/adornments", g.HandleAdornment)
		r.Delete("/adornments", g.HandleRemoveAdornments)
		r.Get("/sgf", g.HandleExportSGF)
		r.Get("/sgf/cached", g.HandleCachedSGF)
		r.Post("/archive", g.HandleArchive)
		r.Get("/pdf", g.HandlePDF)
		r.Get("/ws", g.HandleLiveEdit)
	})
	r.Get("/archive/{key}", g.HandleGetArchived)
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var body struct {
		BoardSize int      `json:"board_size"`
		Komi      *float64 `json:"komi"`
	}
	if err := utils.DecodeJSONRequest(r, &body); err != nil {
		g.log.Error("JSON decode error: ", err)
		httpresponse.WriteError(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}
	req := game.CreateGameRequest{BoardSize: body.BoardSize, Komi: g.cfg.Komi}
	if req.BoardSize == 0 {
		req.BoardSize = g.cfg.BoardSize
	}
	if body.Komi != nil {
		req.Komi = *body.Komi
	}

	key, err := g.gameUC.CreateGame(r.Context(), req)
	if err != nil {
		g.writeError(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, game.GameCreateResponse{GameKey: key})
}

func (g *GameHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	state, err := g.gameUC.State(chi.URLParam(r, "key"))
	g.writeState(w, state, err)
}

func (g *GameHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	var req game.MoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("JSON decode error: ", err)
		httpresponse.WriteError(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}
	state, err := g.gameUC.PlayMove(r.Context(), chi.URLParam(r, "key"), req)
	g.writeState(w, state, err)
}

func (g *GameHandler) navigate(step func(ctx context.Context, key string) (game.GameStateResponse, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := step(r.Context(), chi.URLParam(r, "key"))
		g.writeState(w, state, err)
	}
}

func (g *GameHandler) HandleSelectBranch(w http.ResponseWriter, r *http.Request) {
	index, err := utils.QueryInt(r, "index")
	if err != nil {
		httpresponse.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := g.gameUC.SelectBranch(r.Context(), chi.URLParam(r, "key"), index)
	g.writeState(w, state, err)
}

func (g *GameHandler) HandleComment(w http.ResponseWriter, r *http.Request) {
	var req game.CommentRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteError(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}
	state, err := g.gameUC.Comment(r.Context(), chi.URLParam(r, "key"), req)
	g.writeState(w, state, err)
}

func (g *GameHandler) HandleAdornment(w http.ResponseWriter, r *http.Request) {
	var req game.AdornmentRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteError(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}
	state, err := g.gameUC.Adorn(r.Context(), chi.URLParam(r, "key"), req)
	g.writeState(w, state, err)
}

func (g *GameHandler) HandleRemoveAdornments(w http.ResponseWriter, r *http.Request) {
	state, err := g.gameUC.RemoveAdornments(r.Context(), chi.URLParam(r, "key"), r.URL.Query().Get("coordinates"))
	g.writeState(w, state, err)
}

func (g *GameHandler) HandleExportSGF(w http.ResponseWriter, r *http.Request) {
	flipped, err := utils.QueryBool(r, "flipped")
	if err != nil {
		httpresponse.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	text, err := g.gameUC.ExportSGF(r.Context(), chi.URLParam(r, "key"), flipped)
	if err != nil {
		g.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/x-go-sgf")
	_, _ = w.Write([]byte(text))
}

// HandleCachedSGF serves the sgf text last saved for the game, which outlives the
// in-memory session.
func (g *GameHandler) HandleCachedSGF(w http.ResponseWriter, r *http.Request) {
	text, err := g.gameUC.LoadSGF(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		g.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/x-go-sgf")
	_, _ = w.Write([]byte(text))
}

func (g *GameHandler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	record, err := g.gameUC.Archive(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, record)
}

func (g *GameHandler) HandleGetArchived(w http.ResponseWriter, r *http.Request) {
	record, err := g.gameUC.GetArchived(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, record)
}

func (g *GameHandler) HandlePDF(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/pdf")
	if err := g.gameUC.WritePDF(chi.URLParam(r, "key"), w); err != nil {
		w.Header().Del("Content-Type")
		g.writeError(w, err)
	}
}

// HandleLiveEdit reads moves from a websocket and answers each with the new game
// state, or {"error": ...} when the move is rejected.
func (g *GameHandler) HandleLiveEdit(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if _, err := g.gameUC.State(key); err != nil {
		g.writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("upgrade error: ", err)
		return
	}
	defer conn.Close()

	for {
		var move game.MoveRequest
		if err = conn.ReadJSON(&move); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.log.Error("read error: ", err)
			}
			return
		}

		g.log.Debugw("received move", "game", key, "move", move)

		state, err := g.gameUC.PlayMove(r.Context(), key, move)
		if err != nil {
			if writeErr := conn.WriteJSON(map[string]string{"error": err.Error()}); writeErr != nil {
				g.log.Error("write error: ", writeErr)
				return
			}
			continue
		}
		if err = conn.WriteJSON(state); err != nil {
			g.log.Error("write error: ", err)
			return
		}
	}
}

func (g *GameHandler) writeState(w http.ResponseWriter, state game.GameStateResponse, err error) {
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrGameNotFound):
		httpresponse.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrPointOccupied), errors.Is(err, errs.ErrCaptureConflict):
		httpresponse.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrBadCoordinates),
		errors.Is(err, errs.ErrBadColor),
		errors.Is(err, errs.ErrBadAdornment),
		errors.Is(err, errs.ErrBadBoardSize),
		errors.Is(err, errs.ErrOffBoard),
		errors.Is(err, errs.ErrNoPreviousMove),
		errors.Is(err, errs.ErrNoNextMove),
		errors.Is(err, errs.ErrBranchOutOfRange):
		httpresponse.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		g.log.Error(err)
		httpresponse.WriteError(w, http.StatusInternalServerError, errs.ErrInternal.Error())
	}
}
