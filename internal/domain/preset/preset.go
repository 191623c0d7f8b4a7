// Package preset holds reusable generation templates: workspace-owned
// presets and protected system presets, the repository contract, and the use
// cases that orchestrate them.
package preset

import (
	"context"
	"strings"
	"text/template"
	"time"

	"relay-server/services/control-api/internal/domain/query"
	"relay-server/services/control-api/internal/utils/idgen"
	"relay-server/services/control-api/internal/utils/platformerrors"
)

// ===============================================
// Preset Scope
// ===============================================

// Scope is the ownership variant of a preset: either owned by a workspace or
// system-owned. System presets are immutable and undeletable through the
// normal mutation use cases, so the distinction is a type-level tag rather
// than a nullable workspace reference checked ad hoc.
type Scope struct {
	workspaceID string
	system      bool
}

// SystemScope tags a preset as system-owned.
func SystemScope() Scope {
	return Scope{system: true}
}

// WorkspaceScope tags a preset as owned by the given workspace.
func WorkspaceScope(workspaceID string) Scope {
	return Scope{workspaceID: workspaceID}
}

// IsSystem reports whether the scope is system-owned.
func (s Scope) IsSystem() bool {
	return s.system
}

// WorkspaceID returns the owning workspace and true for workspace-scoped
// presets, or "" and false for system presets.
func (s Scope) WorkspaceID() (string, bool) {
	if s.system {
		return "", false
	}
	return s.workspaceID, true
}

// ===============================================
// Preset Structure
// ===============================================

// Preset is a reusable generation template. UsageCount only ever increases;
// the increment happens atomically in the persistence layer.
type Preset struct {
	ID          string
	Scope       Scope
	Name        string
	Description string
	Category    string
	Template    string
	Model       string
	Parameters  map[string]any
	IsPublic    bool
	UsageCount  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewPreset creates a preset with a freshly generated ID, validating
// creation invariants. A SystemScope produces a protected system preset.
func NewPreset(ctx context.Context, scope Scope, name, description, category, tmpl, model string, parameters map[string]any, isPublic bool) (*Preset, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	category = strings.TrimSpace(category)
	tmpl = strings.TrimSpace(tmpl)
	model = strings.TrimSpace(model)
	if name == "" || description == "" || category == "" || tmpl == "" || model == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"name, description, category, template, and model must be non-empty", nil, "3e9a7c51-0d84-4b26-af93-6c2e8d1b5f70")
	}

	if parameters == nil {
		parameters = make(map[string]any)
	}

	id, err := idgen.GenerateSecureID(idgen.PrefixPreset, idgen.DefaultLength)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to generate preset ID", err, "5b1f8d39-2a67-4e04-bc58-9d0a3e7f2416")
	}

	now := time.Now()
	return &Preset{
		ID:          id,
		Scope:       scope,
		Name:        name,
		Description: description,
		Category:    category,
		Template:    tmpl,
		Model:       model,
		Parameters:  parameters,
		IsPublic:    isPublic,
		UsageCount:  0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsSystemPreset reports whether this preset is protected from mutation and
// deletion.
func (p *Preset) IsSystemPreset() bool {
	return p.Scope.IsSystem()
}

// IsAccessibleBy reports whether a caller in the given workspace may read
// this preset: its own workspace's presets plus public system presets.
func (p *Preset) IsAccessibleBy(workspaceID string) bool {
	if owner, ok := p.Scope.WorkspaceID(); ok {
		return owner == workspaceID
	}
	return p.IsPublic
}

// ApplyUpdate applies partial field updates, validating that provided text
// fields stay non-empty. Protection of system presets is enforced by the
// use case before this is reached.
func (p *Preset) ApplyUpdate(ctx context.Context, upd PresetUpdate) error {
	check := func(field, value string) (string, error) {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
				field+" must be non-empty", nil, "7d4b2e90-5f18-4c63-8a27-1e9c0b6d3a54")
		}
		return trimmed, nil
	}

	if upd.Name != nil {
		v, err := check("name", *upd.Name)
		if err != nil {
			return err
		}
		p.Name = v
	}
	if upd.Description != nil {
		v, err := check("description", *upd.Description)
		if err != nil {
			return err
		}
		p.Description = v
	}
	if upd.Category != nil {
		v, err := check("category", *upd.Category)
		if err != nil {
			return err
		}
		p.Category = v
	}
	if upd.Template != nil {
		v, err := check("template", *upd.Template)
		if err != nil {
			return err
		}
		p.Template = v
	}
	if upd.Model != nil {
		v, err := check("model", *upd.Model)
		if err != nil {
			return err
		}
		p.Model = v
	}
	if upd.Parameters != nil {
		p.Parameters = upd.Parameters
	}
	if upd.IsPublic != nil {
		p.IsPublic = *upd.IsPublic
	}

	p.UpdatedAt = time.Now()
	return nil
}

// Render executes the preset's template against the given variables. With no
// variables the raw template is returned as-is.
func (p *Preset) Render(ctx context.Context, variables map[string]any) (string, error) {
	if len(variables) == 0 {
		return p.Template, nil
	}

	tmpl, err := template.New("preset").Parse(p.Template)
	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to parse template", err, "0c8e5a23-9b71-4d46-bf02-4a6d1e8c7395")
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, variables); err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to execute template", err, "2a7f9c06-4e53-4b18-8d60-b3c5e1f0a829")
	}

	return out.String(), nil
}

// PresetUpdate carries optional partial field updates. Nil fields are left
// untouched.
type PresetUpdate struct {
	Name        *string
	Description *string
	Category    *string
	Template    *string
	Model       *string
	Parameters  map[string]any
	IsPublic    *bool
}

// ===============================================
// Preset Repository
// ===============================================

// PresetFilter selects presets by optional criteria. When
// IncludeSystemPresets is set together with WorkspaceID, the result is the
// union of that workspace's presets and public system presets, without
// duplicates.
type PresetFilter struct {
	WorkspaceID          *string
	Category             *string
	IsPublic             *bool
	IncludeSystemPresets bool
}

// PresetRepository abstracts persistence for presets. IncrementUsageCount
// must be an atomic increment in storage, not read-modify-write, so
// concurrent retrievals never lose updates. Default list ordering is usage
// count descending, then creation time descending.
type PresetRepository interface {
	Save(ctx context.Context, p *Preset) error
	FindByID(ctx context.Context, id string) (*Preset, error)
	FindByWorkspaceID(ctx context.Context, workspaceID string) ([]*Preset, error)
	FindByCategory(ctx context.Context, category string, workspaceID *string) ([]*Preset, error)
	FindSystemPresets(ctx context.Context) ([]*Preset, error)
	FindByFilter(ctx context.Context, filter PresetFilter, pagination *query.Pagination) ([]*Preset, error)
	IncrementUsageCount(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
