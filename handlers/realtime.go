package handlers

import (
	"github.com/gin-gonic/gin"

	"expertbook/realtime"
)

// WSHandler upgrades GET /ws connections and attaches them to the hub.
func WSHandler(hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		realtime.ServeWS(hub, c.Writer, c.Request)
	}
}
