package dbschema

import (
	"time"

	"relay-server/services/control-api/internal/domain/conversation"
	"relay-server/services/control-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Message{})
}

// Message represents the database schema for conversation messages
type Message struct {
	ID             string       `gorm:"column:id;size:50;primaryKey"`
	ConversationID string       `gorm:"column:conversation_id;size:50;index:idx_messages_conversation;not null"`
	Conversation   Conversation `gorm:"foreignKey:ConversationID"`
	Role           string       `gorm:"column:role;size:20;not null"`
	Content        string       `gorm:"column:content;type:text;not null"`
	Tokens         int          `gorm:"column:tokens;not null;default:0"`
	Credits        int          `gorm:"column:credits;not null;default:0"`
	CreatedAt      time.Time    `gorm:"column:created_at;index;not null;default:now()"`
}

// TableName specifies the table name for Message
func (Message) TableName() string {
	return "control_api.messages"
}

// NewSchemaMessage creates a database schema from a domain message
func NewSchemaMessage(m *conversation.Message) *Message {
	return &Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Role:           string(m.Role),
		Content:        m.Content,
		Tokens:         m.Tokens,
		Credits:        m.Credits,
		CreatedAt:      m.CreatedAt,
	}
}

// EtoD converts database schema to domain message (Entity to Domain)
func (m *Message) EtoD() *conversation.Message {
	return &conversation.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Role:           conversation.MessageRole(m.Role),
		Content:        m.Content,
		Tokens:         m.Tokens,
		Credits:        m.Credits,
		CreatedAt:      m.CreatedAt,
	}
}
