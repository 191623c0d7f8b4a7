package presetrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"relay-server/services/control-api/internal/domain/preset"
	"relay-server/services/control-api/internal/domain/query"
	"relay-server/services/control-api/internal/infrastructure/database/dbschema"
	"relay-server/services/control-api/internal/infrastructure/database/pgerrors"
	"relay-server/services/control-api/internal/infrastructure/database/transaction"
	"relay-server/services/control-api/internal/utils/platformerrors"
)

// PresetGormRepository implements PresetRepository using GORM
type PresetGormRepository struct {
	db *transaction.Database
}

var _ preset.PresetRepository = (*PresetGormRepository)(nil)

// NewPresetGormRepository creates a new GORM-based preset repository
func NewPresetGormRepository(db *transaction.Database) preset.PresetRepository {
	return &PresetGormRepository{db: db}
}

// Save creates or updates a preset
func (r *PresetGormRepository) Save(ctx context.Context, p *preset.Preset) error {
	schema, err := dbschema.NewSchemaPreset(p)
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeValidation, "failed to convert preset to schema", err, "2b4d6f18-0a93-4c57-b2b4-8e6a0c319d75")
	}

	tx := r.db.GetTx(ctx)
	if err := tx.Save(schema).Error; err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConstraint, "preset references a missing workspace", err, "4d6f8a30-2c15-4e79-94d6-0a8c2e531f97")
		}
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to save preset", err, "6f8a0c52-4e37-4091-b6f8-2c0e4a753b19")
	}
	return nil
}

// FindByID finds a preset by its ID
func (r *PresetGormRepository) FindByID(ctx context.Context, id string) (*preset.Preset, error) {
	var schema dbschema.Preset
	tx := r.db.GetTx(ctx)
	if err := tx.Where("id = ?", id).First(&schema).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "preset not found", err, "8a0c2e74-6091-4213-98a0-4e2c6a975d3b")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to find preset", err, "a0c2e496-8213-4435-ba0c-6e4a8c197f5d")
	}
	return schema.EtoD()
}

// FindByWorkspaceID finds all presets owned by a workspace
func (r *PresetGormRepository) FindByWorkspaceID(ctx context.Context, workspaceID string) ([]*preset.Preset, error) {
	workspaceFilter := preset.PresetFilter{WorkspaceID: &workspaceID}
	return r.FindByFilter(ctx, workspaceFilter, nil)
}

// FindByCategory finds presets in a category, scoped to a workspace when one
// is given
func (r *PresetGormRepository) FindByCategory(ctx context.Context, category string, workspaceID *string) ([]*preset.Preset, error) {
	categoryFilter := preset.PresetFilter{Category: &category, WorkspaceID: workspaceID}
	return r.FindByFilter(ctx, categoryFilter, nil)
}

// FindSystemPresets finds all system-owned presets
func (r *PresetGormRepository) FindSystemPresets(ctx context.Context) ([]*preset.Preset, error) {
	tx := r.db.GetTx(ctx)
	q := tx.Model(&dbschema.Preset{}).
		Where("workspace_id IS NULL").
		Order("usage_count DESC, created_at DESC")
	return r.collect(ctx, q)
}

// FindByFilter finds presets matching the given filter. When
// IncludeSystemPresets is set with a workspace, the result is the union of the
// workspace's presets and public system presets.
func (r *PresetGormRepository) FindByFilter(ctx context.Context, filter preset.PresetFilter, p *query.Pagination) ([]*preset.Preset, error) {
	tx := r.db.GetTx(ctx)
	q := tx.Model(&dbschema.Preset{})

	if filter.WorkspaceID != nil {
		if filter.IncludeSystemPresets {
			q = q.Where("workspace_id = ? OR (workspace_id IS NULL AND is_public = true)", *filter.WorkspaceID)
		} else {
			q = q.Where("workspace_id = ?", *filter.WorkspaceID)
		}
	} else if filter.IncludeSystemPresets {
		q = q.Where("workspace_id IS NULL")
	}
	if filter.Category != nil {
		q = q.Where("category = ?", *filter.Category)
	}
	if filter.IsPublic != nil {
		q = q.Where("is_public = ?", *filter.IsPublic)
	}

	if p != nil {
		if p.Limit != nil && *p.Limit > 0 {
			q = q.Limit(*p.Limit)
		}
		if p.Offset != nil && *p.Offset > 0 {
			q = q.Offset(*p.Offset)
		}
	}

	q = q.Order("usage_count DESC, created_at DESC")

	return r.collect(ctx, q)
}

// IncrementUsageCount atomically increments a preset's usage count in
// storage. The increment is a single UPDATE expression, never a
// read-modify-write, so concurrent retrievals cannot lose updates.
func (r *PresetGormRepository) IncrementUsageCount(ctx context.Context, id string) error {
	tx := r.db.GetTx(ctx)
	result := tx.Model(&dbschema.Preset{}).
		Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1))
	if result.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to increment usage count", result.Error, "c2e4a6b8-a435-4657-bc2e-8a6c0e3b9f71")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "preset not found", nil, "e4a6c8da-c657-4879-9e4a-0c8e2a5d1b93")
	}
	return nil
}

// Delete deletes a preset by ID
func (r *PresetGormRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.GetTx(ctx)
	result := tx.Delete(&dbschema.Preset{}, "id = ?", id)
	if result.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to delete preset", result.Error, "06b8e0fc-e879-4a9b-b06b-2e0a4c7f3db5")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "preset not found", nil, "28da021e-0a9b-4cbd-928d-4a2c6e9f5fd7")
	}
	return nil
}

func (r *PresetGormRepository) collect(ctx context.Context, q *gorm.DB) ([]*preset.Preset, error) {
	var schemas []dbschema.Preset
	if err := q.Find(&schemas).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to list presets", err, "4afc2430-2cbd-4edf-a4af-6c4e80b17ff9")
	}

	presets := make([]*preset.Preset, 0, len(schemas))
	for i := range schemas {
		p, err := schemas[i].EtoD()
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeInternal, "failed to convert schema to domain", err, "6c1e4652-4edf-4001-b6c1-8e60a2d39013")
		}
		presets = append(presets, p)
	}
	return presets, nil
}
