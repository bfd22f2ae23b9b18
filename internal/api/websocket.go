package api

import (
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/marcos010894/innobyte-labels/internal/batch"
)

// WSMessage is a WebSocket message
type WSMessage struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data"`
}

// WSClient represents a connected WebSocket client
type WSClient struct {
	conn *websocket.Conn
	send chan WSMessage
}

var (
	wsClients   = make(map[*WSClient]bool)
	wsClientsMu sync.Mutex
)

func (s *Server) setupJobEvents() {
	s.queue.OnJobUpdate(func(job *batch.Job) {
		broadcast(WSMessage{
			Event: "job_update",
			Data: map[string]interface{}{
				"id":           job.ID,
				"status":       job.Status,
				"error":        job.Error,
				"filename":     job.Filename,
				"productCount": job.ProductCount,
			},
		})
	})
}

// handleWebSocket upgrades the connection and streams job updates
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := &WSClient{
		conn: conn,
		send: make(chan WSMessage, 16),
	}

	wsClientsMu.Lock()
	wsClients[client] = true
	wsClientsMu.Unlock()

	go client.writePump()
	client.readPump()
}

func broadcast(msg WSMessage) {
	wsClientsMu.Lock()
	defer wsClientsMu.Unlock()

	for client := range wsClients {
		select {
		case client.send <- msg:
		default:
			// Slow client, drop it
			close(client.send)
			delete(wsClients, client)
		}
	}
}

func (c *WSClient) readPump() {
	defer func() {
		wsClientsMu.Lock()
		if _, ok := wsClients[c]; ok {
			close(c.send)
			delete(wsClients, c)
		}
		wsClientsMu.Unlock()
		c.conn.Close()
	}()

	for {
		// Clients only listen; reads just detect disconnect
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *WSClient) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
