package v1

import (
	"net/http"

	"relay-server/services/control-api/internal/config"
	"relay-server/services/control-api/internal/interfaces/httpserver/routes/v1/conversation"
	"relay-server/services/control-api/internal/interfaces/httpserver/routes/v1/preset"

	"github.com/gin-gonic/gin"
)

type V1Route struct {
	conversation *conversation.ConversationRoute
	preset       *preset.PresetRoute
}

func NewV1Route(
	conversation *conversation.ConversationRoute,
	preset *preset.PresetRoute,
) *V1Route {
	return &V1Route{
		conversation,
		preset,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)

	v1Route.conversation.RegisterRouter(v1Router)
	v1Route.preset.RegisterRouter(v1Router)
}

// GetVersion reports the running build version
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": config.Version})
}
