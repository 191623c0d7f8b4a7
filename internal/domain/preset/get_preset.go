package preset

import (
	"context"

	"relay-server/services/control-api/internal/utils/platformerrors"
)

// GetPresetUseCase retrieves a preset and, as a side effect, increments its
// usage count exactly once. The increment is an atomic operation in the
// persistence layer so concurrent retrievals never lose updates.
type GetPresetUseCase struct {
	presets PresetRepository
}

func NewGetPresetUseCase(presets PresetRepository) *GetPresetUseCase {
	return &GetPresetUseCase{presets: presets}
}

func (uc *GetPresetUseCase) Execute(ctx context.Context, cmd GetPresetCommand) (*Preset, error) {
	if err := cmd.Validate(ctx); err != nil {
		return nil, err
	}

	p, err := uc.presets.FindByID(ctx, cmd.PresetID)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
				"Preset not found", err, "1d5c8b34-7a96-4f20-8e61-c0b3d9a24f57")
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load preset")
	}

	if cmd.CallerWorkspaceID != nil && !p.IsAccessibleBy(*cmd.CallerWorkspaceID) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden,
			"Access denied", nil, "6b0e4f91-2d85-4a37-9c16-e8d5a7c30b42")
	}

	if err := uc.presets.IncrementUsageCount(ctx, p.ID); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to increment usage count")
	}
	p.UsageCount++

	return p, nil
}
