package config

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// NewUpgrader accepts any origin in development; in production the
// upgrader's default same-origin check applies.
func NewUpgrader(cfg Config) *websocket.Upgrader {
	upgrader := &websocket.Upgrader{}
	if cfg.Development() {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}
	return upgrader
}
