package conversation

import (
	"context"

	"relay-server/services/control-api/internal/utils/platformerrors"
)

// ConversationDetail bundles a conversation with its messages in creation
// order.
type ConversationDetail struct {
	Conversation *Conversation `json:"conversation"`
	Messages     []*Message    `json:"messages"`
}

// GetConversationUseCase loads a conversation and its messages for the
// owning user. Callers that do not own the conversation get an authorization
// error and no message data.
type GetConversationUseCase struct {
	conversations ConversationRepository
	messages      MessageRepository
}

func NewGetConversationUseCase(conversations ConversationRepository, messages MessageRepository) *GetConversationUseCase {
	return &GetConversationUseCase{
		conversations: conversations,
		messages:      messages,
	}
}

func (uc *GetConversationUseCase) Execute(ctx context.Context, cmd GetConversationCommand) (*ConversationDetail, error) {
	if err := cmd.Validate(ctx); err != nil {
		return nil, err
	}

	conv, err := uc.conversations.FindByID(ctx, cmd.ConversationID)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
				"Conversation not found", err, "b1e4c7a0-2d86-4f39-a5c1-6e0d8b3f9247")
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation")
	}

	if !conv.IsOwnedBy(cmd.UserID) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden,
			"Unauthorized", nil, "d8f2a61c-9b07-4e54-8c3a-1f5b0d7e4296")
	}

	messages, err := uc.messages.FindByConversationID(ctx, conv.ID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load messages")
	}

	return &ConversationDetail{
		Conversation: conv,
		Messages:     messages,
	}, nil
}
