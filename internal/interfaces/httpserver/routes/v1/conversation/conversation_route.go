package conversation

import (
	"relay-server/services/control-api/internal/interfaces/httpserver/handlers/conversationhandler"

	"github.com/gin-gonic/gin"
)

// ConversationRoute handles routing for conversation endpoints
type ConversationRoute struct {
	handler *conversationhandler.ConversationHandler
}

// NewConversationRoute creates a new conversation route
func NewConversationRoute(handler *conversationhandler.ConversationHandler) *ConversationRoute {
	return &ConversationRoute{handler: handler}
}

// RegisterRouter registers conversation routes under /conversations
func (r *ConversationRoute) RegisterRouter(router gin.IRouter) {
	conversationsGroup := router.Group("/conversations")
	{
		conversationsGroup.GET("", r.handler.List)
		conversationsGroup.POST("", r.handler.Create)
		conversationsGroup.GET("/:id", r.handler.Get)
		conversationsGroup.PATCH("/:id", r.handler.Rename)
		conversationsGroup.DELETE("/:id", r.handler.Delete)
		conversationsGroup.POST("/:id/messages", r.handler.AddMessage)
	}
}
