package conversation

import (
	"context"

	"relay-server/services/control-api/internal/utils/platformerrors"
)

// DeleteConversationUseCase physically deletes a conversation and all of its
// messages for the owning user.
//
// The two repository calls run sequentially without an enclosing
// transaction: if the process dies between them, the messages are gone and
// an empty conversation remains. The scheduled reconciliation job
// (internal/infrastructure/crontab) sweeps those up.
type DeleteConversationUseCase struct {
	conversations ConversationRepository
	messages      MessageRepository
}

func NewDeleteConversationUseCase(conversations ConversationRepository, messages MessageRepository) *DeleteConversationUseCase {
	return &DeleteConversationUseCase{
		conversations: conversations,
		messages:      messages,
	}
}

func (uc *DeleteConversationUseCase) Execute(ctx context.Context, cmd DeleteConversationCommand) error {
	if err := cmd.Validate(ctx); err != nil {
		return err
	}

	conv, err := uc.conversations.FindByID(ctx, cmd.ConversationID)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
				"Conversation not found", err, "a4b8e2d6-1c90-4f37-85ab-3e7d0c5f9162")
		}
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation")
	}

	if !conv.IsOwnedBy(cmd.UserID) {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden,
			"Unauthorized", nil, "c9d3f5a8-7e24-4b01-96cd-5a1f8e2b3047")
	}

	// Messages first so a failure never leaves messages pointing at a
	// deleted conversation.
	if err := uc.messages.DeleteByConversationID(ctx, conv.ID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete messages")
	}

	if err := uc.conversations.Delete(ctx, conv.ID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete conversation")
	}

	return nil
}
