package conversation

import (
	"context"

	"relay-server/services/control-api/internal/domain/command"
	"relay-server/services/control-api/internal/domain/query"
)

// Command shapes for the conversation use cases. Each command is a flat
// record validated independently of the use case that consumes it; unknown
// input fields never reach these structs because binding is positional.

// CreateConversationCommand is the input for CreateConversationUseCase.
type CreateConversationCommand struct {
	WorkspaceID string `validate:"required,entityid=ws"`
	UserID      string `validate:"required,entityid=user"`
	Title       string `validate:"required,notblank"`
	Model       string `validate:"required,notblank"`
	Provider    string `validate:"required,notblank"`
	// Metadata is stored as supplied; keys and values are opaque to the
	// service.
	Metadata map[string]any
}

func (c CreateConversationCommand) Validate(ctx context.Context) error {
	return command.Struct(ctx, c)
}

// AddMessageCommand is the input for AddMessageUseCase.
type AddMessageCommand struct {
	ConversationID string `validate:"required,entityid=conv"`
	Role           string `validate:"required,oneof=user assistant system"`
	Content        string `validate:"required,notblank"`
	Tokens         int    `validate:"gte=0"`
	Credits        int    `validate:"gte=0"`
}

func (c AddMessageCommand) Validate(ctx context.Context) error {
	return command.Struct(ctx, c)
}

// GetConversationCommand is the input for GetConversationUseCase.
type GetConversationCommand struct {
	ConversationID string `validate:"required,entityid=conv"`
	UserID         string `validate:"required,entityid=user"`
}

func (c GetConversationCommand) Validate(ctx context.Context) error {
	return command.Struct(ctx, c)
}

// ListConversationsCommand is the input for ListConversationsUseCase. Nil
// filter fields are ignored.
type ListConversationsCommand struct {
	WorkspaceID *string `validate:"omitempty,entityid=ws"`
	UserID      *string `validate:"omitempty,entityid=user"`
	Limit       int     `validate:"gte=0"`
	Offset      int     `validate:"gte=0"`
}

func (c ListConversationsCommand) Validate(ctx context.Context) error {
	return command.Struct(ctx, c)
}

// Filter resolves the command into a repository filter.
func (c ListConversationsCommand) Filter() ConversationFilter {
	return ConversationFilter{
		WorkspaceID: c.WorkspaceID,
		UserID:      c.UserID,
	}
}

// Pagination resolves limit/offset defaults once, at command-consumption
// time.
func (c ListConversationsCommand) Pagination() *query.Pagination {
	return query.NewPagination(c.Limit, c.Offset)
}

// RenameConversationCommand is the input for RenameConversationUseCase.
type RenameConversationCommand struct {
	ConversationID string `validate:"required,entityid=conv"`
	UserID         string `validate:"required,entityid=user"`
	Title          string `validate:"required,notblank"`
}

func (c RenameConversationCommand) Validate(ctx context.Context) error {
	return command.Struct(ctx, c)
}

// DeleteConversationCommand is the input for DeleteConversationUseCase.
type DeleteConversationCommand struct {
	ConversationID string `validate:"required,entityid=conv"`
	UserID         string `validate:"required,entityid=user"`
}

func (c DeleteConversationCommand) Validate(ctx context.Context) error {
	return command.Struct(ctx, c)
}
