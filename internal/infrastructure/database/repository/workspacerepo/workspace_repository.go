package workspacerepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"relay-server/services/control-api/internal/domain/workspace"
	"relay-server/services/control-api/internal/infrastructure/database/dbschema"
	"relay-server/services/control-api/internal/infrastructure/database/transaction"
	"relay-server/services/control-api/internal/utils/platformerrors"
)

// WorkspaceGormRepository implements workspace.Repository using GORM
type WorkspaceGormRepository struct {
	db *transaction.Database
}

var _ workspace.Repository = (*WorkspaceGormRepository)(nil)

// NewWorkspaceGormRepository creates a new GORM-based workspace repository
func NewWorkspaceGormRepository(db *transaction.Database) workspace.Repository {
	return &WorkspaceGormRepository{db: db}
}

// FindByID finds a workspace by its ID
func (r *WorkspaceGormRepository) FindByID(ctx context.Context, id string) (*workspace.Workspace, error) {
	var schema dbschema.Workspace
	tx := r.db.GetTx(ctx)
	if err := tx.Where("id = ?", id).First(&schema).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "workspace not found", err, "8e306874-0001-4123-9e30-a482c4f5b167")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to find workspace", err, "a0528896-0123-4345-ba05-c6a4e6f7d389")
	}
	return schema.EtoD(), nil
}

// Exists reports whether a workspace with the given ID exists
func (r *WorkspaceGormRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	tx := r.db.GetTx(ctx)
	err := tx.Model(&dbschema.Workspace{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to check workspace existence", err, "c274aab8-2345-4567-9c27-e8c6081905ab")
	}
	return count > 0, nil
}
