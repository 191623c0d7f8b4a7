package preset

import (
	"context"

	"relay-server/services/control-api/internal/utils/platformerrors"
)

// DeletePresetUseCase deletes a non-system preset, optionally checking that
// the caller's workspace owns it.
type DeletePresetUseCase struct {
	presets PresetRepository
}

func NewDeletePresetUseCase(presets PresetRepository) *DeletePresetUseCase {
	return &DeletePresetUseCase{presets: presets}
}

func (uc *DeletePresetUseCase) Execute(ctx context.Context, cmd DeletePresetCommand) error {
	if err := cmd.Validate(ctx); err != nil {
		return err
	}

	p, err := uc.presets.FindByID(ctx, cmd.PresetID)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
				"Preset not found", err, "b7e1c4d9-6f38-4a52-90ab-3c8e5d2f7061")
		}
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load preset")
	}

	if p.IsSystemPreset() {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeProtected,
			"System presets cannot be deleted", nil, "d0a8f2b5-3e61-4c94-b7d8-1f4a6e9c2385")
	}

	if cmd.CallerWorkspaceID != nil {
		owner, _ := p.Scope.WorkspaceID()
		if owner != *cmd.CallerWorkspaceID {
			return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden,
				"Access denied", nil, "f4c9a7e2-8b50-4d13-a6e5-0d2b7c8f1493")
		}
	}

	if err := uc.presets.Delete(ctx, p.ID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete preset")
	}

	return nil
}
