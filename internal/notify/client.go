package notify

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 512
)

// Client подписчик, подключенный по WebSocket
type Client struct {
	ID   string
	Send chan []byte

	conn      *websocket.Conn
	closeOnce sync.Once
}

func newClient(id string, conn *websocket.Conn, buffer int) *Client {
	return &Client{
		ID:   id,
		Send: make(chan []byte, buffer),
		conn: conn,
	}
}

// close закрывает канал отправки; writePump после этого закрывает соединение
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

// writePump отправляет сообщения клиенту и поддерживает соединение ping-сообщениями
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// readPump читает входящие сообщения (они игнорируются) до закрытия соединения
func (c *Client) readPump() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
