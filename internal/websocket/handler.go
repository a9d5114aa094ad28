package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/lukev/catan_server/internal/game"
	"github.com/lukev/catan_server/internal/lobby"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServerDeps contains references to other subsystems used by websocket clients.
type ServerDeps struct {
	Lobby *lobby.Manager
	Games *game.Manager
}

// ServeWs handles websocket requests from the peer, upgrading the HTTP
// connection and registering the new client with the hub.
func ServeWs(hub *Hub, deps ServerDeps, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	clientID := newPlayerID()

	client := &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
		id:   clientID,
		deps: deps,
	}
	client.hub.register <- client

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	go client.readPump()
}
