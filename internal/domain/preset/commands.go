package preset

import (
	"context"

	"relay-server/services/control-api/internal/domain/command"
	"relay-server/services/control-api/internal/domain/query"
)

// Command shapes for the preset use cases.

// CreatePresetCommand is the input for CreatePresetUseCase. A nil
// WorkspaceID creates a protected system preset.
type CreatePresetCommand struct {
	WorkspaceID *string `validate:"omitempty,entityid=ws"`
	Name        string  `validate:"required,notblank"`
	Description string  `validate:"required,notblank"`
	Category    string  `validate:"required,notblank"`
	Template    string  `validate:"required,notblank"`
	Model       string  `validate:"required,notblank"`
	Parameters  map[string]any
	IsPublic    bool
}

func (c CreatePresetCommand) Validate(ctx context.Context) error {
	return command.Struct(ctx, c)
}

// Scope resolves the ownership variant once, at command-consumption time.
func (c CreatePresetCommand) Scope() Scope {
	if c.WorkspaceID == nil {
		return SystemScope()
	}
	return WorkspaceScope(*c.WorkspaceID)
}

// GetPresetCommand is the input for GetPresetUseCase. CallerWorkspaceID, when
// present, restricts access to the caller's own presets and public system
// presets.
type GetPresetCommand struct {
	PresetID          string  `validate:"required,entityid=pre"`
	CallerWorkspaceID *string `validate:"omitempty,entityid=ws"`
}

func (c GetPresetCommand) Validate(ctx context.Context) error {
	return command.Struct(ctx, c)
}

// ListPresetsCommand is the input for ListPresetsUseCase.
type ListPresetsCommand struct {
	WorkspaceID          *string `validate:"omitempty,entityid=ws"`
	Category             *string `validate:"omitempty,notblank"`
	IsPublic             *bool
	IncludeSystemPresets bool
	Limit                int `validate:"gte=0"`
	Offset               int `validate:"gte=0"`
}

func (c ListPresetsCommand) Validate(ctx context.Context) error {
	return command.Struct(ctx, c)
}

// Filter resolves the command into a repository filter.
func (c ListPresetsCommand) Filter() PresetFilter {
	return PresetFilter{
		WorkspaceID:          c.WorkspaceID,
		Category:             c.Category,
		IsPublic:             c.IsPublic,
		IncludeSystemPresets: c.IncludeSystemPresets,
	}
}

// Pagination resolves limit/offset defaults once.
func (c ListPresetsCommand) Pagination() *query.Pagination {
	return query.NewPagination(c.Limit, c.Offset)
}

// UpdatePresetCommand is the input for UpdatePresetUseCase. Nil fields are
// left untouched.
type UpdatePresetCommand struct {
	PresetID    string  `validate:"required,entityid=pre"`
	Name        *string `validate:"omitempty,notblank"`
	Description *string `validate:"omitempty,notblank"`
	Category    *string `validate:"omitempty,notblank"`
	Template    *string `validate:"omitempty,notblank"`
	Model       *string `validate:"omitempty,notblank"`
	Parameters  map[string]any
	IsPublic    *bool
}

func (c UpdatePresetCommand) Validate(ctx context.Context) error {
	return command.Struct(ctx, c)
}

// Update resolves the command into a partial entity update.
func (c UpdatePresetCommand) Update() PresetUpdate {
	return PresetUpdate{
		Name:        c.Name,
		Description: c.Description,
		Category:    c.Category,
		Template:    c.Template,
		Model:       c.Model,
		Parameters:  c.Parameters,
		IsPublic:    c.IsPublic,
	}
}

// DeletePresetCommand is the input for DeletePresetUseCase. CallerWorkspaceID,
// when present, must match the preset's owning workspace.
type DeletePresetCommand struct {
	PresetID          string  `validate:"required,entityid=pre"`
	CallerWorkspaceID *string `validate:"omitempty,entityid=ws"`
}

func (c DeletePresetCommand) Validate(ctx context.Context) error {
	return command.Struct(ctx, c)
}
