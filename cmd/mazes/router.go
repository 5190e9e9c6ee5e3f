package main

import (
	"net/http"

	"github.com/vancomm/maze-server/internal/middleware"
)

func (app *application) buildHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/register", app.handleRegister)
	mux.HandleFunc("POST /v1/login", app.handleLogin)
	mux.HandleFunc("POST /v1/logout", app.handleLogout)

	mux.HandleFunc("GET /v1/status", app.handleStatus)
	mux.HandleFunc("GET /v1/mazes", app.handleListMazes)
	mux.HandleFunc("GET /v1/mymazes", app.handleListOwnMazes)

	mux.HandleFunc("POST /v1/maze", app.handleNewMaze)
	mux.HandleFunc("GET /v1/maze/{id}", app.handleGetMaze)
	mux.HandleFunc("GET /v1/maze/{id}/text", app.handleGetMazeText)
	mux.HandleFunc("POST /v1/maze/{id}/aerate", app.handleAerate)
	mux.HandleFunc("GET /v1/maze/{id}/solve", app.handleSolve)
	mux.HandleFunc("POST /v1/maze/{id}/batch", app.handleBatch)

	mux.HandleFunc("/v1/maze/{id}/connect", app.handleConnectWs)

	// logging goes last so the request id is in place for the others
	handler := middleware.Wrap(mux,
		middleware.Cors(),
		middleware.Auth(app.cookies),
		middleware.Logging(log),
	)

	return handler
}
