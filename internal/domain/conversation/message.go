package conversation

import (
	"context"
	"strings"
	"time"

	"relay-server/services/control-api/internal/utils/idgen"
	"relay-server/services/control-api/internal/utils/platformerrors"
)

// ===============================================
// Message Types
// ===============================================

// MessageRole is the closed set of turn roles.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
)

// ValidRole reports whether role is one of the enumerated message roles.
func ValidRole(role MessageRole) bool {
	switch role {
	case MessageRoleUser, MessageRoleAssistant, MessageRoleSystem:
		return true
	}
	return false
}

// Message is one turn in a conversation. Messages are immutable after
// creation: they are only ever created and deleted, individually or by the
// cascading conversation delete.
type Message struct {
	ID             string      `json:"id"`
	ConversationID string      `json:"conversation_id"`
	Role           MessageRole `json:"role"`
	Content        string      `json:"content"`
	Tokens         int         `json:"tokens"`
	Credits        int         `json:"credits"`
	CreatedAt      time.Time   `json:"created_at"`
}

// NewMessage creates a message with a freshly generated ID, validating
// creation invariants.
func NewMessage(ctx context.Context, conversationID string, role MessageRole, content string, tokens, credits int) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"content must be non-empty", nil, "4d8a1c96-2e7f-4b30-a5d1-8c6e9f024b17")
	}
	if !ValidRole(role) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"role must be one of user, assistant, system", nil, "9e2b5d70-8a4c-4f1e-b3a6-0d7c2e815f49")
	}
	if tokens < 0 || credits < 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"tokens and credits must be non-negative", nil, "1a6f3e82-5d90-4c27-8b4e-7f2a0d9c63b5")
	}

	id, err := idgen.GenerateSecureID(idgen.PrefixMessage, idgen.DefaultLength)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to generate message ID", err, "3c7d9b14-6e2a-4058-9f3b-d5a8c1e7042f")
	}

	return &Message{
		ID:             id,
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		Tokens:         tokens,
		Credits:        credits,
		CreatedAt:      time.Now(),
	}, nil
}

// ===============================================
// Message Repository
// ===============================================

// MessageRepository abstracts persistence for messages.
// FindByConversationID returns messages in creation order.
type MessageRepository interface {
	Create(ctx context.Context, msg *Message) error
	Save(ctx context.Context, msg *Message) error
	FindByID(ctx context.Context, id string) (*Message, error)
	FindByConversationID(ctx context.Context, conversationID string) ([]*Message, error)
	CountByConversationID(ctx context.Context, conversationID string) (int64, error)
	DeleteByConversationID(ctx context.Context, conversationID string) error
	Delete(ctx context.Context, id string) error
}
