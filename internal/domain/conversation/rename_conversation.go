package conversation

import (
	"context"

	"relay-server/services/control-api/internal/utils/platformerrors"
)

// RenameConversationUseCase updates a conversation's title in place for the
// owning user.
type RenameConversationUseCase struct {
	conversations ConversationRepository
}

func NewRenameConversationUseCase(conversations ConversationRepository) *RenameConversationUseCase {
	return &RenameConversationUseCase{conversations: conversations}
}

func (uc *RenameConversationUseCase) Execute(ctx context.Context, cmd RenameConversationCommand) (*Conversation, error) {
	if err := cmd.Validate(ctx); err != nil {
		return nil, err
	}

	conv, err := uc.conversations.FindByID(ctx, cmd.ConversationID)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
				"Conversation not found", err, "e5a08c3d-4f72-4b16-9d8e-2c6b1a9f0534")
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation")
	}

	if !conv.IsOwnedBy(cmd.UserID) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden,
			"Unauthorized", nil, "f7c1d9b2-0e58-4a63-b4f0-8d3e5a2c7169")
	}

	if err := conv.UpdateTitle(ctx, cmd.Title); err != nil {
		return nil, err
	}

	if err := uc.conversations.Save(ctx, conv); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update conversation")
	}

	return conv, nil
}
