package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/maze-server/internal/maze"
	"github.com/vancomm/maze-server/internal/repository"
)

type NewMazeParams struct {
	Length int     `schema:"length,required"`
	Height int     `schema:"height,required"`
	Seed   *uint64 `schema:"seed"`
	Root   *int    `schema:"root"`
}

type AerateParams struct {
	N       int  `schema:"n,required"`
	Uniform bool `schema:"uniform"`
}

type SolveParams struct {
	Start  *int `schema:"start"`
	Finish *int `schema:"finish"`
	Route  bool `schema:"route"`
}

type TextParams struct {
	Style string `schema:"style"`
}

type ListParams struct {
	Length *int `schema:"length"`
	Height *int `schema:"height"`
	Limit  *int `schema:"limit"`
}

type Solution struct {
	Trace []int  `json:"trace,omitempty"`
	Route []int  `json:"route,omitempty"`
	Text  string `json:"text"`
}

func (app *application) checkSize(length, height int) error {
	limits := app.cfg.Maze
	if length > limits.MaxLength || height > limits.MaxHeight {
		return fmt.Errorf(
			"%w: maze must be at most %dx%d", errTooLarge, limits.MaxLength, limits.MaxHeight,
		)
	}
	return nil
}

func (app *application) handleNewMaze(w http.ResponseWriter, r *http.Request) {
	var params NewMazeParams
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := app.checkSize(params.Length, params.Height); err != nil {
		writeError(w, r, err)
		return
	}
	seed := newSeed()
	if params.Seed != nil {
		seed = *params.Seed
	}
	var opts []maze.GenerateOption
	if params.Root != nil {
		opts = append(opts, maze.FromRoot(*params.Root))
	}
	state, err := maze.New(params.Length, params.Height, seed, opts...)
	if err != nil {
		writeError(w, r, err)
		return
	}

	createParams := repository.CreateMazeSessionParams{PlayerId: playerId(r)}
	if claims, ok := playerClaims(r); ok {
		requestLog(r).Debug("creating maze for player ", claims.Username)
	} else {
		requestLog(r).Debug("creating anonymous maze")
	}
	row, err := app.store.CreateMazeSession(r.Context(), state, createParams)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		requestLog(r).Error(err)
		return
	}
	if _, err := sendJSON(w, MazeSession{row, state}); err != nil {
		requestLog(r).Error(err)
	}
}

func (app *application) handleGetMaze(w http.ResponseWriter, r *http.Request) {
	row, ok := app.fetchSession(w, r)
	if !ok {
		return
	}
	session, err := loadSession(row)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := sendJSON(w, session); err != nil {
		requestLog(r).Error(err)
	}
}

func (app *application) handleGetMazeText(w http.ResponseWriter, r *http.Request) {
	var params TextParams
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	style := maze.Pipes
	switch params.Style {
	case "", "pipes":
	case "ascii":
		style = maze.ASCII
	default:
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("style must be pipes or ascii"))
		return
	}
	row, ok := app.fetchSession(w, r)
	if !ok {
		return
	}
	state, err := row.Maze()
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, maze.DrawStyle(&state.Grid, nil, style))
}

func (app *application) handleAerate(w http.ResponseWriter, r *http.Request) {
	var params AerateParams
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if params.N > app.cfg.Maze.MaxAerations {
		writeError(w, r, fmt.Errorf(
			"%w: at most %d walls per request", errTooLarge, app.cfg.Maze.MaxAerations,
		))
		return
	}
	row, ok := app.fetchOwnSession(w, r)
	if !ok {
		return
	}
	session, err := loadSession(row)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var opts []maze.AerateOption
	if params.Uniform {
		opts = append(opts, maze.UniformWalls())
	}
	opened, aerr := session.State.Aerate(params.N, opts...)
	requestLog(r).WithFields(logrus.Fields{
		"session_id": row.MazeSessionId, "n": params.N, "opened": opened,
	}).Debug("aerated")
	if aerr != nil && !errors.Is(aerr, maze.ErrWallsExhausted) {
		writeError(w, r, aerr)
		return
	}
	if opened > 0 {
		if session.MazeSession, err = app.saveState(r.Context(), row, session.State); err != nil {
			writeError(w, r, err)
			return
		}
	}
	// an exhausted grid still reports what was opened
	if _, err := sendJSONStatus(w, statusOf(aerr), session); err != nil {
		requestLog(r).Error(err)
	}
}

func (app *application) handleSolve(w http.ResponseWriter, r *http.Request) {
	var params SolveParams
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	row, ok := app.fetchSession(w, r)
	if !ok {
		return
	}
	state, err := row.Maze()
	if err != nil {
		writeError(w, r, err)
		return
	}

	var opts []maze.SolveOption
	if params.Start != nil {
		opts = append(opts, maze.From(*params.Start))
	}
	if params.Finish != nil {
		opts = append(opts, maze.To(*params.Finish))
	}

	var solution Solution
	if params.Route {
		solution.Route, err = maze.ShortestPath(&state.Grid, opts...)
		solution.Text = maze.Draw(&state.Grid, solution.Route)
	} else {
		solution.Trace, err = maze.Solve(&state.Grid, opts...)
		solution.Text = maze.Draw(&state.Grid, solution.Trace)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := sendJSON(w, solution); err != nil {
		requestLog(r).Error(err)
	}
}

func (app *application) handleBatch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	row, ok := app.fetchOwnSession(w, r)
	if !ok {
		return
	}
	session, err := loadSession(row)
	if err != nil {
		writeError(w, r, err)
		return
	}

	replies, changed, berr := executeBatch(session.State, string(body), app.cfg.Maze.MaxAerations)
	if changed {
		if session.MazeSession, err = app.saveState(r.Context(), row, session.State); err != nil {
			writeError(w, r, err)
			return
		}
	}
	result := batchResult{Session: session, Replies: replies}
	if _, err := sendJSONStatus(w, statusOf(berr), result); err != nil {
		requestLog(r).Error(err)
	}
}

func (app *application) listMazes(w http.ResponseWriter, r *http.Request, opts ...repository.ListOption) {
	var params ListParams
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if params.Length != nil {
		opts = append(opts, repository.WithLength(*params.Length))
	}
	if params.Height != nil {
		opts = append(opts, repository.WithHeight(*params.Height))
	}
	if params.Limit != nil {
		opts = append(opts, repository.WithLimit(*params.Limit))
	}
	if _, err := repository.NewFilters(opts...); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}
	mazes, err := app.store.ListMazeSessions(r.Context(), opts...)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		requestLog(r).Error(err)
		return
	}
	if mazes == nil {
		mazes = []repository.MazeSummary{}
	}
	if _, err := sendJSON(w, mazes); err != nil {
		requestLog(r).Error(err)
	}
}

func (app *application) handleListMazes(w http.ResponseWriter, r *http.Request) {
	app.listMazes(w, r)
}

func (app *application) handleListOwnMazes(w http.ResponseWriter, r *http.Request) {
	claims, ok := playerClaims(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	app.listMazes(w, r, repository.WithPlayer(claims.PlayerId))
}
