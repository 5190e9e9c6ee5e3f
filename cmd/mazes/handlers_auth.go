package main

import (
	"errors"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/vancomm/maze-server/internal/repository"
)

type PlayerInfo struct {
	Username string `json:"username"`
	PlayerId int64  `json:"player_id"`
}

type Status struct {
	LoggedIn bool        `json:"logged_in"`
	Player   *PlayerInfo `json:"player,omitempty"`
}

type Credentials struct {
	Username string `schema:"username,required"`
	Password string `schema:"password,required"`
}

func parseCredentials(w http.ResponseWriter, r *http.Request) (*Credentials, bool) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, false
	}
	var creds Credentials
	if err := dec.Decode(&creds, r.PostForm); err != nil || creds.Username == "" || creds.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("body must contain url-encoded username and password"))
		return nil, false
	}
	return &creds, true
}

func (app *application) login(w http.ResponseWriter, r *http.Request, player *repository.Player) {
	claims := app.cookies.NewPlayerClaims(player.PlayerId, player.Username)
	if err := app.cookies.Refresh(w, claims); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		requestLog(r).Error("unable to sign jwt token: ", err)
		return
	}
	if _, err := sendJSON(w, PlayerInfo{player.Username, player.PlayerId}); err != nil {
		requestLog(r).Error(err)
	}
}

// This endpoint may be called for the side effect in [authMiddleware] that
// clears expired auth cookies
func (app *application) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := &Status{LoggedIn: false}
	if claims, ok := playerClaims(r); ok {
		status.LoggedIn = true
		status.Player = &PlayerInfo{claims.Username, claims.PlayerId}
		requestLog(r).Debug("refresh cookies")
		if err := app.cookies.Refresh(w, app.cookies.NewPlayerClaims(claims.PlayerId, claims.Username)); err != nil {
			requestLog(r).Error("unable to sign jwt token: ", err)
		}
	}
	if _, err := sendJSON(w, status); err != nil {
		requestLog(r).Error(err)
	}
}

func (app *application) handleRegister(w http.ResponseWriter, r *http.Request) {
	creds, ok := parseCredentials(w, r)
	if !ok {
		return
	}
	passwordBytes := []byte(creds.Password)
	if len(passwordBytes) > 72 {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("password must not exceed 72 bytes"))
		return
	}
	hash, err := bcrypt.GenerateFromPassword(passwordBytes, bcrypt.DefaultCost)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		requestLog(r).Error(err)
		return
	}
	player, err := app.store.CreatePlayer(r.Context(), repository.CreatePlayerParams{
		Username:     creds.Username,
		PasswordHash: hash,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("username taken"))
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		requestLog(r).Error("unable to insert player: ", err)
		return
	}
	app.login(w, r, player)
}

func (app *application) handleLogin(w http.ResponseWriter, r *http.Request) {
	creds, ok := parseCredentials(w, r)
	if !ok {
		return
	}
	player, err := app.store.FetchPlayer(r.Context(), creds.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("username unknown"))
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		requestLog(r).Error(err)
		return
	}
	if err := bcrypt.CompareHashAndPassword(
		player.PasswordHash, []byte(creds.Password),
	); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	app.login(w, r, player)
}

func (app *application) handleLogout(w http.ResponseWriter, r *http.Request) {
	app.cookies.Clear(w)
}
