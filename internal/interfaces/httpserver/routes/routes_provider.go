package routes

import (
	"relay-server/services/control-api/internal/interfaces/httpserver/handlers/conversationhandler"
	"relay-server/services/control-api/internal/interfaces/httpserver/handlers/presethandler"
	v1 "relay-server/services/control-api/internal/interfaces/httpserver/routes/v1"
	"relay-server/services/control-api/internal/interfaces/httpserver/routes/v1/conversation"
	"relay-server/services/control-api/internal/interfaces/httpserver/routes/v1/preset"

	"github.com/google/wire"
)

var RouteProvider = wire.NewSet(
	// Handlers
	conversationhandler.NewConversationHandler,
	presethandler.NewPresetHandler,

	// Routes
	v1.NewV1Route,
	conversation.NewConversationRoute,
	preset.NewPresetRoute,
)
