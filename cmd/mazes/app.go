package main

import (
	"context"
	"errors"
	"hash/maphash"
	"net/http"
	"strconv"

	"github.com/gorilla/schema"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/maze-server/internal/config"
	"github.com/vancomm/maze-server/internal/maze"
	"github.com/vancomm/maze-server/internal/middleware"
	"github.com/vancomm/maze-server/internal/repository"
)

var (
	dec = schema.NewDecoder()

	errTooLarge = errors.New("request exceeds configured limits")
	errForeign  = errors.New("maze belongs to another player")
)

func init() {
	dec.IgnoreUnknownKeys(true)
}

// store is the part of [repository.Queries] the handlers use.
type store interface {
	CreatePlayer(context.Context, repository.CreatePlayerParams) (*repository.Player, error)
	FetchPlayer(ctx context.Context, username string) (*repository.Player, error)
	CreateMazeSession(context.Context, *maze.State, repository.CreateMazeSessionParams) (*repository.MazeSession, error)
	FetchMazeSession(ctx context.Context, mazeSessionId int64) (*repository.MazeSession, error)
	UpdateMazeSession(ctx context.Context, mazeSessionId int64, params repository.UpdateMazeSessionParams) (*repository.MazeSession, error)
	ListMazeSessions(ctx context.Context, opts ...repository.ListOption) ([]repository.MazeSummary, error)
}

type application struct {
	cfg      *config.Config
	store    store
	cookies  *config.Cookies
	upgrader *websocket.Upgrader
}

func newSeed() uint64 {
	return new(maphash.Hash).Sum64()
}

func requestLog(r *http.Request) *logrus.Entry {
	if entry, ok := middleware.LogEntry(r); ok {
		return entry
	}
	return logrus.NewEntry(log)
}

func playerClaims(r *http.Request) (*config.PlayerClaims, bool) {
	return middleware.PlayerClaims(r)
}

func playerId(r *http.Request) *int64 {
	if claims, ok := playerClaims(r); ok {
		return &claims.PlayerId
	}
	return nil
}

func (app *application) fetchSession(w http.ResponseWriter, r *http.Request) (*repository.MazeSession, bool) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, false
	}
	session, err := app.store.FetchMazeSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, false
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		requestLog(r).Error(err)
		return nil, false
	}
	return session, true
}

// fetchOwnSession is fetchSession for requests that modify the maze.
func (app *application) fetchOwnSession(w http.ResponseWriter, r *http.Request) (*repository.MazeSession, bool) {
	session, ok := app.fetchSession(w, r)
	if !ok {
		return nil, false
	}
	if session.Foreign(playerId(r)) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(errForeign.Error()))
		return nil, false
	}
	return session, true
}

// saveState writes state back to the session row.
func (app *application) saveState(ctx context.Context, session *repository.MazeSession, state *maze.State) (*repository.MazeSession, error) {
	params, err := repository.StateParams(state)
	if err != nil {
		return nil, err
	}
	return app.store.UpdateMazeSession(ctx, session.MazeSessionId, params)
}

func statusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, maze.ErrWallsExhausted):
		return http.StatusConflict
	case errors.Is(err, maze.ErrPathNotFound):
		return http.StatusNotFound
	case errors.Is(err, errForeign):
		return http.StatusForbidden
	case errors.Is(err, maze.ErrInvalidDimension),
		errors.Is(err, maze.ErrIndexOutOfBounds),
		errors.Is(err, maze.ErrInvalidCount),
		errors.Is(err, errTooLarge),
		errors.Is(err, errCommand):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError replies with the status matching err. Unexpected errors are
// logged and their text withheld.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusOf(err)
	w.WriteHeader(code)
	if code == http.StatusInternalServerError {
		requestLog(r).Error(err)
		return
	}
	w.Write([]byte(err.Error()))
}
