package conversation

import (
	"context"

	"relay-server/services/control-api/internal/domain/user"
	"relay-server/services/control-api/internal/domain/workspace"
	"relay-server/services/control-api/internal/utils/platformerrors"
)

// CreateConversationUseCase opens a new chat session after verifying that
// the owning workspace and user exist.
type CreateConversationUseCase struct {
	conversations ConversationRepository
	workspaces    workspace.Repository
	users         user.Repository
}

func NewCreateConversationUseCase(
	conversations ConversationRepository,
	workspaces workspace.Repository,
	users user.Repository,
) *CreateConversationUseCase {
	return &CreateConversationUseCase{
		conversations: conversations,
		workspaces:    workspaces,
		users:         users,
	}
}

func (uc *CreateConversationUseCase) Execute(ctx context.Context, cmd CreateConversationCommand) (*Conversation, error) {
	if err := cmd.Validate(ctx); err != nil {
		return nil, err
	}

	exists, err := uc.workspaces.Exists(ctx, cmd.WorkspaceID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check workspace")
	}
	if !exists {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"Workspace not found", nil, "5e0c8a27-1f4b-4d93-b6a0-382d7c9e51f6")
	}

	exists, err = uc.users.Exists(ctx, cmd.UserID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check user")
	}
	if !exists {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"User not found", nil, "7a9d2f40-6c18-4e5b-9d73-0b4e8a1c62d5")
	}

	conv, err := NewConversation(ctx, cmd.WorkspaceID, cmd.UserID, cmd.Title, cmd.Model, cmd.Provider, cmd.Metadata)
	if err != nil {
		return nil, err
	}

	if err := uc.conversations.Save(ctx, conv); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create conversation")
	}

	return conv, nil
}
