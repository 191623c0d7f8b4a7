package preset

import (
	"relay-server/services/control-api/internal/interfaces/httpserver/handlers/presethandler"

	"github.com/gin-gonic/gin"
)

// PresetRoute handles routing for preset endpoints
type PresetRoute struct {
	handler *presethandler.PresetHandler
}

// NewPresetRoute creates a new preset route
func NewPresetRoute(handler *presethandler.PresetHandler) *PresetRoute {
	return &PresetRoute{handler: handler}
}

// RegisterRouter registers preset routes under /presets
func (r *PresetRoute) RegisterRouter(router gin.IRouter) {
	presetsGroup := router.Group("/presets")
	{
		presetsGroup.GET("", r.handler.List)
		presetsGroup.POST("", r.handler.Create)
		presetsGroup.GET("/:id", r.handler.Get)
		presetsGroup.PATCH("/:id", r.handler.Update)
		presetsGroup.DELETE("/:id", r.handler.Delete)
		presetsGroup.POST("/:id/render", r.handler.Render)
	}
}
