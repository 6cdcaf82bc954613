package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PingMessage is the fixed liveness reply.
const PingMessage = "This is hill-top-reservation service !!!"

// Ping tells load balancers the process is up. It ignores the request entirely.
func Ping(c *gin.Context) {
	c.String(http.StatusOK, PingMessage)
}

func RegisterRoutes(r gin.IRoutes) {
	r.GET("/", Ping)
	r.HEAD("/", Ping)
}
