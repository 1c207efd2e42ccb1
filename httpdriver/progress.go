package httpdriver

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{}

// progressInterval is how often handleProgress pushes a node-expansion
// count to the connected client.
const progressInterval = 100 * time.Millisecond

// ProgressUpdate is one message pushed over the /progress websocket.
type ProgressUpdate struct {
	NodesExpanded uint64 `json:"nodes_expanded"`
}

// handleProgress upgrades the connection and pushes ProgressUpdate
// messages at progressInterval until the client disconnects, mirroring
// tabular/server/server.go's publishEleUpdates loop at the scope this
// package needs: one counter, one client, no ping/pong housekeeping.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("httpdriver: websocket upgrade:", err)
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	for range ticker.C {
		update := ProgressUpdate{NodesExpanded: s.readProgress()}
		if err := conn.WriteJSON(update); err != nil {
			return
		}
	}
}
