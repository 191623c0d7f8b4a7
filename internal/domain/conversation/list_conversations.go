package conversation

import (
	"context"

	"relay-server/services/control-api/internal/domain/query"
	"relay-server/services/control-api/internal/utils/platformerrors"
)

// ListConversationsUseCase returns a filtered, paginated page of
// conversations.
type ListConversationsUseCase struct {
	conversations ConversationRepository
}

func NewListConversationsUseCase(conversations ConversationRepository) *ListConversationsUseCase {
	return &ListConversationsUseCase{conversations: conversations}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, cmd ListConversationsCommand) (query.Page[*Conversation], error) {
	if err := cmd.Validate(ctx); err != nil {
		return query.Page[*Conversation]{}, err
	}

	page, err := uc.conversations.FindPage(ctx, cmd.Filter(), cmd.Pagination())
	if err != nil {
		return query.Page[*Conversation]{}, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list conversations")
	}

	return page, nil
}
