package conversationrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"relay-server/services/control-api/internal/domain/conversation"
	"relay-server/services/control-api/internal/domain/query"
	"relay-server/services/control-api/internal/infrastructure/database/dbschema"
	"relay-server/services/control-api/internal/infrastructure/database/pgerrors"
	"relay-server/services/control-api/internal/infrastructure/database/transaction"
	"relay-server/services/control-api/internal/utils/platformerrors"
)

// ConversationGormRepository implements ConversationRepository using GORM
type ConversationGormRepository struct {
	db *transaction.Database
}

var _ conversation.ConversationRepository = (*ConversationGormRepository)(nil)

// NewConversationGormRepository creates a new GORM-based conversation repository
func NewConversationGormRepository(db *transaction.Database) conversation.ConversationRepository {
	return &ConversationGormRepository{db: db}
}

// Save creates or updates a conversation
func (r *ConversationGormRepository) Save(ctx context.Context, conv *conversation.Conversation) error {
	schema, err := dbschema.NewSchemaConversation(conv)
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeValidation, "failed to convert conversation to schema", err, "4c7e9b52-1d80-4f36-a9c4-6e2b8d051a97")
	}

	tx := r.db.GetTx(ctx)
	if err := tx.Save(schema).Error; err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConstraint, "conversation references a missing row", err, "0a4d8c27-6f19-4e53-b2a8-7c5e1d903f64")
		}
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to save conversation", err, "2e8b5f40-9d13-4a76-8c0e-b6a2d1f5c793")
	}
	return nil
}

// FindByID finds a conversation by its ID
func (r *ConversationGormRepository) FindByID(ctx context.Context, id string) (*conversation.Conversation, error) {
	var schema dbschema.Conversation
	tx := r.db.GetTx(ctx)
	if err := tx.Where("id = ?", id).First(&schema).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "conversation not found", err, "5c9e2a71-4b08-4d36-9f5a-e1d7c3b80462")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to find conversation", err, "7f1a6d93-0c25-4e84-a7b1-3d9e5c204f86")
	}
	return schema.EtoD()
}

// FindByWorkspaceID finds all conversations in a workspace
func (r *ConversationGormRepository) FindByWorkspaceID(ctx context.Context, workspaceID string) ([]*conversation.Conversation, error) {
	workspaceFilter := conversation.ConversationFilter{WorkspaceID: &workspaceID}
	return r.FindByFilter(ctx, workspaceFilter, nil)
}

// FindByUserID finds all conversations owned by a user
func (r *ConversationGormRepository) FindByUserID(ctx context.Context, userID string) ([]*conversation.Conversation, error) {
	userFilter := conversation.ConversationFilter{UserID: &userID}
	return r.FindByFilter(ctx, userFilter, nil)
}

// FindByFilter finds conversations matching the given filter, most recently
// updated first
func (r *ConversationGormRepository) FindByFilter(ctx context.Context, filter conversation.ConversationFilter, p *query.Pagination) ([]*conversation.Conversation, error) {
	q := r.filterQuery(ctx, filter)

	if p != nil {
		if p.Limit != nil && *p.Limit > 0 {
			q = q.Limit(*p.Limit)
		}
		if p.Offset != nil && *p.Offset > 0 {
			q = q.Offset(*p.Offset)
		}
	}

	q = q.Order("updated_at DESC")

	var schemas []dbschema.Conversation
	if err := q.Find(&schemas).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to list conversations", err, "9b3c7e15-8a42-4f60-b9d3-5e0a2c817d49")
	}

	conversations := make([]*conversation.Conversation, 0, len(schemas))
	for i := range schemas {
		conv, err := schemas[i].EtoD()
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeInternal, "failed to convert schema to domain", err, "0d3f7a91-5c28-4b64-8e0d-2a9c5f817b43")
		}
		conversations = append(conversations, conv)
	}
	return conversations, nil
}

// Count returns the count of conversations matching the given filter
func (r *ConversationGormRepository) Count(ctx context.Context, filter conversation.ConversationFilter) (int64, error) {
	var count int64
	if err := r.filterQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to count conversations", err, "b5d0f283-1e67-4a94-8c2b-7f4e9a053d16")
	}
	return count, nil
}

// FindPage returns one page of conversations together with the total count
func (r *ConversationGormRepository) FindPage(ctx context.Context, filter conversation.ConversationFilter, p *query.Pagination) (query.Page[*conversation.Conversation], error) {
	total, err := r.Count(ctx, filter)
	if err != nil {
		return query.Page[*conversation.Conversation]{}, err
	}

	items, err := r.FindByFilter(ctx, filter, p)
	if err != nil {
		return query.Page[*conversation.Conversation]{}, err
	}

	return query.NewPage(items, total, p), nil
}

// Delete deletes a conversation by ID
func (r *ConversationGormRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.GetTx(ctx)
	result := tx.Delete(&dbschema.Conversation{}, "id = ?", id)
	if result.Error != nil {
		if pgerrors.IsForeignKeyViolation(result.Error) {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConstraint, "conversation still has dependent rows", result.Error, "d7f2a905-3c68-4b41-a5d9-8e1b6c204f37")
		}
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to delete conversation", result.Error, "f0b4c816-5d29-4e73-9a0f-2c7d8e415b60")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "conversation not found", nil, "18c6e4a2-7b95-4d08-b3e6-0f5a9d127c84")
	}
	return nil
}

func (r *ConversationGormRepository) filterQuery(ctx context.Context, filter conversation.ConversationFilter) *gorm.DB {
	tx := r.db.GetTx(ctx)
	q := tx.Model(&dbschema.Conversation{})
	if filter.WorkspaceID != nil {
		q = q.Where("workspace_id = ?", *filter.WorkspaceID)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.UpdatedBefore != nil {
		q = q.Where("updated_at < ?", *filter.UpdatedBefore)
	}
	return q
}
