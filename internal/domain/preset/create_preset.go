package preset

import (
	"context"

	"relay-server/services/control-api/internal/domain/workspace"
	"relay-server/services/control-api/internal/utils/platformerrors"
)

// CreatePresetUseCase creates a preset, system-owned when no workspace is
// given.
type CreatePresetUseCase struct {
	presets    PresetRepository
	workspaces workspace.Repository
}

func NewCreatePresetUseCase(presets PresetRepository, workspaces workspace.Repository) *CreatePresetUseCase {
	return &CreatePresetUseCase{
		presets:    presets,
		workspaces: workspaces,
	}
}

func (uc *CreatePresetUseCase) Execute(ctx context.Context, cmd CreatePresetCommand) (*Preset, error) {
	if err := cmd.Validate(ctx); err != nil {
		return nil, err
	}

	if cmd.WorkspaceID != nil {
		exists, err := uc.workspaces.Exists(ctx, *cmd.WorkspaceID)
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check workspace")
		}
		if !exists {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
				"Workspace not found", nil, "8f3a6d12-5c09-4e78-b1d4-7a2e9c0b5361")
		}
	}

	p, err := NewPreset(ctx, cmd.Scope(), cmd.Name, cmd.Description, cmd.Category, cmd.Template, cmd.Model, cmd.Parameters, cmd.IsPublic)
	if err != nil {
		return nil, err
	}

	if err := uc.presets.Save(ctx, p); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create preset")
	}

	return p, nil
}
