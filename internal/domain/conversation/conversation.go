// Package conversation holds the chat-session aggregate: conversations,
// their messages, the repository contracts they are persisted through, and
// the use cases that orchestrate them.
package conversation

import (
	"context"
	"strings"
	"time"

	"relay-server/services/control-api/internal/domain/query"
	"relay-server/services/control-api/internal/utils/idgen"
	"relay-server/services/control-api/internal/utils/platformerrors"
)

// ===============================================
// Conversation Structure
// ===============================================

// Conversation represents one chat session owned by a user inside a
// workspace. Title, model, and provider are never empty on a persisted
// conversation. Metadata carries opaque client key-values and is never
// interpreted by the service.
type Conversation struct {
	ID          string         `json:"id"`
	WorkspaceID string         `json:"workspace_id"`
	UserID      string         `json:"user_id"`
	Title       string         `json:"title"`
	Model       string         `json:"model"`
	Provider    string         `json:"provider"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewConversation creates a conversation with a freshly generated ID,
// validating creation invariants. Reconstruction of already-persisted rows
// goes through dbschema mapping and performs no validation.
func NewConversation(ctx context.Context, workspaceID, userID, title, model, provider string, metadata map[string]any) (*Conversation, error) {
	title = strings.TrimSpace(title)
	model = strings.TrimSpace(model)
	provider = strings.TrimSpace(provider)
	if title == "" || model == "" || provider == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"title, model, and provider must be non-empty", nil, "6f1d2a84-9c31-4a0e-b7d2-5e8f0c3a19b4")
	}

	id, err := idgen.GenerateSecureID(idgen.PrefixConversation, idgen.DefaultLength)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to generate conversation ID", err, "8b4c7e20-3d5a-4f16-9a8c-1d2e6b0f4a73")
	}

	now := time.Now()
	return &Conversation{
		ID:          id,
		WorkspaceID: workspaceID,
		UserID:      userID,
		Title:       title,
		Model:       model,
		Provider:    provider,
		Metadata:    metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsOwnedBy is the sole authorization predicate consulted by dependent use
// cases.
func (c *Conversation) IsOwnedBy(userID string) bool {
	return c.UserID == userID
}

// UpdateTitle mutates the title in place. The title may change over the
// conversation's lifetime but never to empty.
func (c *Conversation) UpdateTitle(ctx context.Context, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"title must be non-empty", nil, "c2a95f07-6b3e-4d81-8f50-94d7e1b62c38")
	}
	c.Title = title
	c.UpdatedAt = time.Now()
	return nil
}

// ===============================================
// Conversation Repository
// ===============================================

// ConversationFilter selects conversations by optional criteria. Nil fields
// are ignored.
type ConversationFilter struct {
	WorkspaceID *string
	UserID      *string
	// UpdatedBefore is used by the reconciliation job to scope its scan to
	// conversations that have been idle past the cutoff.
	UpdatedBefore *time.Time
}

// ConversationRepository abstracts persistence for conversations. "Not
// found" is reported as a NOT_FOUND platform error, never as a nil pair.
type ConversationRepository interface {
	Save(ctx context.Context, conv *Conversation) error
	FindByID(ctx context.Context, id string) (*Conversation, error)
	FindByWorkspaceID(ctx context.Context, workspaceID string) ([]*Conversation, error)
	FindByUserID(ctx context.Context, userID string) ([]*Conversation, error)
	FindByFilter(ctx context.Context, filter ConversationFilter, pagination *query.Pagination) ([]*Conversation, error)
	Count(ctx context.Context, filter ConversationFilter) (int64, error)
	FindPage(ctx context.Context, filter ConversationFilter, pagination *query.Pagination) (query.Page[*Conversation], error)
	Delete(ctx context.Context, id string) error
}
