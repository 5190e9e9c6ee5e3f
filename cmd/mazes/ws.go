package main

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// handleConnectWs accepts the batch commands over a websocket. Every text
// message is one batch; the reply is the same as for POST .../batch.
func (app *application) handleConnectWs(w http.ResponseWriter, r *http.Request) {
	row, ok := app.fetchOwnSession(w, r)
	if !ok {
		return
	}
	session, err := loadSession(row)
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := app.upgrader.Upgrade(w, r, nil)
	if err != nil {
		requestLog(r).Error("upgrade: ", err)
		return
	}
	defer c.Close()

	logger := requestLog(r).WithField("session_id", row.MazeSessionId)
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("read: ", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		logger.Debug("\t> ", string(message))

		replies, changed, berr := executeBatch(session.State, string(message), app.cfg.Maze.MaxAerations)
		if berr != nil {
			logger.WithFields(logrus.Fields{"error": berr}).Debug("command failed")
		}
		if changed {
			updated, err := app.saveState(r.Context(), row, session.State)
			if err != nil {
				logger.Error(err)
				c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(
					websocket.CloseInternalServerErr, "unable to save maze",
				))
				return
			}
			session.MazeSession = updated
		}
		if err := c.WriteJSON(batchResult{Session: session, Replies: replies}); err != nil {
			logger.Error("write: ", err)
			break
		}
		logger.Debug("\t< <session data>")
	}
}
