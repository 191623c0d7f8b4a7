package dbschema

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"relay-server/services/control-api/internal/domain/conversation"
	"relay-server/services/control-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Conversation{})
}

// Conversation represents the database schema for conversations
type Conversation struct {
	ID          string         `gorm:"column:id;size:50;primaryKey"`
	WorkspaceID string         `gorm:"column:workspace_id;size:50;index:idx_conversations_workspace;not null"`
	Workspace   Workspace      `gorm:"foreignKey:WorkspaceID"`
	UserID      string         `gorm:"column:user_id;size:50;index:idx_conversations_user;not null"`
	User        User           `gorm:"foreignKey:UserID"`
	Title       string         `gorm:"column:title;size:256;not null"`
	Model       string         `gorm:"column:model;size:255;not null"`
	Provider    string         `gorm:"column:provider;size:255;not null"`
	Metadata    datatypes.JSON `gorm:"column:metadata;type:jsonb"`
	CreatedAt   time.Time      `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;index;not null;default:now()"`
}

// TableName specifies the table name for Conversation
func (Conversation) TableName() string {
	return "control_api.conversations"
}

// NewSchemaConversation creates a database schema from a domain conversation
func NewSchemaConversation(c *conversation.Conversation) (*Conversation, error) {
	var metadataJSON datatypes.JSON
	if len(c.Metadata) > 0 {
		data, err := json.Marshal(c.Metadata)
		if err != nil {
			return nil, err
		}
		metadataJSON = datatypes.JSON(data)
	}

	return &Conversation{
		ID:          c.ID,
		WorkspaceID: c.WorkspaceID,
		UserID:      c.UserID,
		Title:       c.Title,
		Model:       c.Model,
		Provider:    c.Provider,
		Metadata:    metadataJSON,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}, nil
}

// EtoD converts database schema to domain conversation (Entity to Domain)
func (c *Conversation) EtoD() (*conversation.Conversation, error) {
	var metadata map[string]any
	if len(c.Metadata) > 0 {
		if err := json.Unmarshal(c.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	return &conversation.Conversation{
		ID:          c.ID,
		WorkspaceID: c.WorkspaceID,
		UserID:      c.UserID,
		Title:       c.Title,
		Model:       c.Model,
		Provider:    c.Provider,
		Metadata:    metadata,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}, nil
}
