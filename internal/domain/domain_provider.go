package domain

import (
	"relay-server/services/control-api/internal/domain/conversation"
	"relay-server/services/control-api/internal/domain/preset"

	"github.com/google/wire"
)

// DomainProvider provides all use cases
var DomainProvider = wire.NewSet(
	conversation.NewCreateConversationUseCase,
	conversation.NewAddMessageUseCase,
	conversation.NewGetConversationUseCase,
	conversation.NewListConversationsUseCase,
	conversation.NewRenameConversationUseCase,
	conversation.NewDeleteConversationUseCase,

	preset.NewCreatePresetUseCase,
	preset.NewGetPresetUseCase,
	preset.NewListPresetsUseCase,
	preset.NewUpdatePresetUseCase,
	preset.NewDeletePresetUseCase,
)
