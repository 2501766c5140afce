package subscribe

import (
	"github.com/gorilla/websocket"
)

type Hub interface {
	Serve(conn *websocket.Conn, id string, groups ...string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
