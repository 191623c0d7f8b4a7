package main

import (
	"context"
	"fmt"

	"relay-server/services/control-api/internal/domain/preset"
	"relay-server/services/control-api/internal/infrastructure/logger"
	"relay-server/services/control-api/internal/utils/platformerrors"
)

// DataInitializer seeds baseline system presets on first boot. Presets are
// only installed when the system set is empty, so operator edits made through
// other channels survive restarts.
type DataInitializer struct {
	presets preset.PresetRepository
}

type systemPresetSeed struct {
	name        string
	description string
	category    string
	template    string
	model       string
	parameters  map[string]any
}

var systemPresetSeeds = []systemPresetSeed{
	{
		name:        "Summarize",
		description: "Condense a document into a short summary",
		category:    "writing",
		template:    "Summarize the following text in at most {{.sentences}} sentences:\n\n{{.text}}",
		model:       "gpt-4o-mini",
		parameters:  map[string]any{"temperature": 0.3},
	},
	{
		name:        "Translate",
		description: "Translate text into a target language",
		category:    "writing",
		template:    "Translate the following text into {{.language}}:\n\n{{.text}}",
		model:       "gpt-4o-mini",
		parameters:  map[string]any{"temperature": 0.2},
	},
	{
		name:        "Code Review",
		description: "Review a code change and point out problems",
		category:    "engineering",
		template:    "Review the following diff and list correctness and style problems:\n\n{{.diff}}",
		model:       "gpt-4o",
		parameters:  map[string]any{"temperature": 0.1},
	},
}

func (d *DataInitializer) Install(ctx context.Context) error {
	log := logger.GetLogger()

	existing, err := d.presets.FindSystemPresets(ctx)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list system presets")
	}
	if len(existing) > 0 {
		return nil
	}

	for _, seed := range systemPresetSeeds {
		p, err := preset.NewPreset(ctx, preset.SystemScope(), seed.name, seed.description, seed.category, seed.template, seed.model, seed.parameters, true)
		if err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, fmt.Sprintf("failed to build system preset %q", seed.name))
		}
		if err := d.presets.Save(ctx, p); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, fmt.Sprintf("failed to install system preset %q", seed.name))
		}
	}

	log.Info().Int("count", len(systemPresetSeeds)).Msg("Installed baseline system presets")
	return nil
}
