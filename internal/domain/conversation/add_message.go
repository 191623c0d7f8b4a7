package conversation

import (
	"context"

	"relay-server/services/control-api/internal/utils/platformerrors"
)

// AddMessageUseCase appends one immutable turn to an existing conversation.
type AddMessageUseCase struct {
	conversations ConversationRepository
	messages      MessageRepository
}

func NewAddMessageUseCase(conversations ConversationRepository, messages MessageRepository) *AddMessageUseCase {
	return &AddMessageUseCase{
		conversations: conversations,
		messages:      messages,
	}
}

func (uc *AddMessageUseCase) Execute(ctx context.Context, cmd AddMessageCommand) (*Message, error) {
	if err := cmd.Validate(ctx); err != nil {
		return nil, err
	}

	conv, err := uc.conversations.FindByID(ctx, cmd.ConversationID)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
				"Conversation not found", err, "2f6b9d13-8a50-4c7e-b2d4-9e1a3c5f70b8")
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation")
	}

	msg, err := NewMessage(ctx, conv.ID, MessageRole(cmd.Role), cmd.Content, cmd.Tokens, cmd.Credits)
	if err != nil {
		return nil, err
	}

	if err := uc.messages.Create(ctx, msg); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create message")
	}

	return msg, nil
}
