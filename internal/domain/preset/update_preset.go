package preset

import (
	"context"

	"relay-server/services/control-api/internal/utils/platformerrors"
)

// UpdatePresetUseCase applies partial field updates to a non-system preset.
type UpdatePresetUseCase struct {
	presets PresetRepository
}

func NewUpdatePresetUseCase(presets PresetRepository) *UpdatePresetUseCase {
	return &UpdatePresetUseCase{presets: presets}
}

func (uc *UpdatePresetUseCase) Execute(ctx context.Context, cmd UpdatePresetCommand) (*Preset, error) {
	if err := cmd.Validate(ctx); err != nil {
		return nil, err
	}

	p, err := uc.presets.FindByID(ctx, cmd.PresetID)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
				"Preset not found", err, "9a2d7e50-4b13-4c86-a0f9-5e8c1b6d3724")
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load preset")
	}

	if p.IsSystemPreset() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeProtected,
			"System presets cannot be modified", nil, "e3f6b8a1-0d27-4950-bc34-8a5d2e7f1c96")
	}

	if err := p.ApplyUpdate(ctx, cmd.Update()); err != nil {
		return nil, err
	}

	if err := uc.presets.Save(ctx, p); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update preset")
	}

	return p, nil
}
