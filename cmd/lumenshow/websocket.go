package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/dougsko/lumenshow/pkg/clock"
	"github.com/dougsko/lumenshow/pkg/fixture"
	"github.com/dougsko/lumenshow/pkg/logging"
)

var streamUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// streamFrame is one tick's worth of state pushed to connected clients.
type streamFrame struct {
	Clock    clock.Snapshot  `json:"clock"`
	Fixtures []fixture.Input `json:"fixtures"`
}

// handleStreamWebSocket upgrades the connection and pushes one streamFrame
// every 1/44 s (the engine's tick rate, on the handler's own ticker) until
// the client disconnects.
func (d *ShowDaemon) handleStreamWebSocket(c *gin.Context) {
	conn, err := streamUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error("websocket", err.Error())
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(time.Second / 44)
	defer ticker.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-d.ctx.Done():
			return
		case <-ticker.C:
			frame := streamFrame{
				Clock:    d.coreEngine.ClockSnapshot(),
				Fixtures: d.coreEngine.Snapshot(),
			}
			payload, err := json.Marshal(frame)
			if err != nil {
				logging.Error("websocket", err.Error())
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}
	}
}
