package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/saffronjam/nativedb/internal/browse"
	"github.com/saffronjam/nativedb/internal/common"
)

type lookupResult struct {
	Query     string        `json:"query"`
	Found     bool          `json:"found"`
	Namespace string        `json:"namespace,omitempty"`
	Native    *common.Entry `json:"native,omitempty"`
}

// lookupConn is one lookup socket. Writes come from debouncer callbacks, so
// they are serialized.
type lookupConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *lookupConn) writeJSON(payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// handleLookup answers hash queries typed into a search box. Every text
// frame is a query; only the last one of a burst is answered.
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "missing game", http.StatusBadRequest)
		return
	}
	cat, ok := s.load(w, r, gameID)
	if !ok {
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("upgrade failed for lookup %s: %v", gameID, err)
		return
	}
	lc := &lookupConn{conn: conn}
	debouncer := NewDebouncer(s.cfg.LookupDebounce)
	defer func() {
		debouncer.Stop()
		conn.Close()
	}()

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Printf("lookup %s: read failed: %v", gameID, err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		query := strings.TrimSpace(string(payload))
		debouncer.Trigger(func() {
			result := lookupResult{Query: query}
			if match, found := browse.FindByHash(cat, query); found {
				entry := match.Entry
				result.Found = true
				result.Namespace = match.Namespace
				result.Native = &entry
			}
			if err := lc.writeJSON(result); err != nil {
				s.logger.Printf("lookup %s: write failed: %v", gameID, err)
			}
		})
	}
}
