package preset

import (
	"context"

	"relay-server/services/control-api/internal/utils/platformerrors"
)

// ListPresetsUseCase returns presets matching the filter. With
// IncludeSystemPresets and a workspace, the result is the union of that
// workspace's presets and public system presets, ordered by usage count
// descending then creation time descending, with no duplicate identifiers.
type ListPresetsUseCase struct {
	presets PresetRepository
}

func NewListPresetsUseCase(presets PresetRepository) *ListPresetsUseCase {
	return &ListPresetsUseCase{presets: presets}
}

func (uc *ListPresetsUseCase) Execute(ctx context.Context, cmd ListPresetsCommand) ([]*Preset, error) {
	if err := cmd.Validate(ctx); err != nil {
		return nil, err
	}

	presets, err := uc.presets.FindByFilter(ctx, cmd.Filter(), cmd.Pagination())
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list presets")
	}

	return presets, nil
}
