package controllers

import (
	"net/http"
	"time"

	"github.com/kthiza/protein-tracking-app/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// pingInterval keeps idle sockets alive through proxies that cut quiet
// connections.
const pingInterval = 25 * time.Second

type RealtimeController struct {
	RT *services.RealtimeHub
}

func NewRealtimeController(rt *services.RealtimeHub) *RealtimeController {
	return &RealtimeController{RT: rt}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind ALB/CloudFront if needed
}

// AlertsWS upgrades the request and keeps the socket registered until the
// client goes away. Alerts flow outward through the hub; the read loop only
// drains the connection to notice the close.
func (rc *RealtimeController) AlertsWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{UserID: c.GetUint("userID"), Conn: conn}
	rc.RT.Register(cl)
	defer rc.RT.Unregister(cl)

	stop := make(chan struct{})
	defer close(stop)
	go keepalive(cl, stop)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// keepalive pings until the socket errors or the handler returns. Pings go
// through the client's write lock, never straight to the connection.
func keepalive(cl *services.WSClient, stop <-chan struct{}) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			if err := cl.Ping(); err != nil {
				return
			}
		}
	}
}
