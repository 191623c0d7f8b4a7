package messagerepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"relay-server/services/control-api/internal/domain/conversation"
	"relay-server/services/control-api/internal/infrastructure/database/dbschema"
	"relay-server/services/control-api/internal/infrastructure/database/pgerrors"
	"relay-server/services/control-api/internal/infrastructure/database/transaction"
	"relay-server/services/control-api/internal/utils/platformerrors"
)

// MessageGormRepository implements MessageRepository using GORM
type MessageGormRepository struct {
	db *transaction.Database
}

var _ conversation.MessageRepository = (*MessageGormRepository)(nil)

// NewMessageGormRepository creates a new GORM-based message repository
func NewMessageGormRepository(db *transaction.Database) conversation.MessageRepository {
	return &MessageGormRepository{db: db}
}

// Create inserts a new message
func (r *MessageGormRepository) Create(ctx context.Context, msg *conversation.Message) error {
	schema := dbschema.NewSchemaMessage(msg)
	tx := r.db.GetTx(ctx)
	if err := tx.Create(schema).Error; err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConstraint, "message references a missing conversation", err, "3a7c1e58-9d40-4b26-8f3a-6e2b5d907c14")
		}
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to create message", err, "5e9f3b72-0a64-4c18-9d5e-8b1c7a042f36")
	}
	return nil
}

// Save creates or updates a message
func (r *MessageGormRepository) Save(ctx context.Context, msg *conversation.Message) error {
	schema := dbschema.NewSchemaMessage(msg)
	tx := r.db.GetTx(ctx)
	if err := tx.Save(schema).Error; err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConstraint, "message references a missing conversation", err, "70d2b8e4-5c91-4a36-b0d7-9f4e1c683a25")
		}
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to save message", err, "92f4d0a6-7e13-4b58-a2f9-1d6c8e305b47")
	}
	return nil
}

// FindByID finds a message by its ID
func (r *MessageGormRepository) FindByID(ctx context.Context, id string) (*conversation.Message, error) {
	var schema dbschema.Message
	tx := r.db.GetTx(ctx)
	if err := tx.Where("id = ?", id).First(&schema).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "message not found", err, "b4a6f218-3d85-4c07-9e4b-5a0d2f719c63")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to find message", err, "d6c8a430-5f27-4e19-b6d1-7c2e9f841a05")
	}
	return schema.EtoD(), nil
}

// FindByConversationID returns a conversation's messages in creation order
func (r *MessageGormRepository) FindByConversationID(ctx context.Context, conversationID string) ([]*conversation.Message, error) {
	var schemas []dbschema.Message
	tx := r.db.GetTx(ctx)
	err := tx.Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&schemas).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to list messages", err, "f8e0c652-7a49-4d31-8f8d-9e4a1b063c27")
	}

	messages := make([]*conversation.Message, 0, len(schemas))
	for i := range schemas {
		messages = append(messages, schemas[i].EtoD())
	}
	return messages, nil
}

// CountByConversationID returns the number of messages in a conversation
func (r *MessageGormRepository) CountByConversationID(ctx context.Context, conversationID string) (int64, error) {
	var count int64
	tx := r.db.GetTx(ctx)
	err := tx.Model(&dbschema.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&count).Error
	if err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to count messages", err, "1a2c4e86-9b53-4f07-a1a9-0d6e8f235c49")
	}
	return count, nil
}

// DeleteByConversationID deletes all messages belonging to a conversation
func (r *MessageGormRepository) DeleteByConversationID(ctx context.Context, conversationID string) error {
	tx := r.db.GetTx(ctx)
	result := tx.Delete(&dbschema.Message{}, "conversation_id = ?", conversationID)
	if result.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to delete messages", result.Error, "3c4e6a08-1d75-4b29-b3c1-2f8a0d457e6b")
	}
	return nil
}

// Delete deletes a message by ID
func (r *MessageGormRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.GetTx(ctx)
	result := tx.Delete(&dbschema.Message{}, "id = ?", id)
	if result.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to delete message", result.Error, "5e6a8c20-3f97-4d41-95e3-4a0c2f679d8b")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "message not found", nil, "708c0e42-5b19-4f63-a705-6c2e4a891f0d")
	}
	return nil
}
