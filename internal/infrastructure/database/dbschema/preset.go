package dbschema

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"relay-server/services/control-api/internal/domain/preset"
	"relay-server/services/control-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Preset{})
}

// Preset represents the database schema for presets. A NULL workspace_id
// marks a system preset; the domain scope variant maps onto that column.
type Preset struct {
	ID          string         `gorm:"column:id;size:50;primaryKey"`
	WorkspaceID *string        `gorm:"column:workspace_id;size:50;index:idx_presets_workspace"`
	Name        string         `gorm:"column:name;size:255;not null"`
	Description string         `gorm:"column:description;type:text;not null"`
	Category    string         `gorm:"column:category;size:100;not null;index"`
	Template    string         `gorm:"column:template;type:text;not null"`
	Model       string         `gorm:"column:model;size:255;not null"`
	Parameters  datatypes.JSON `gorm:"column:parameters;type:jsonb"`
	IsPublic    bool           `gorm:"column:is_public;not null;default:false;index"`
	UsageCount  int64          `gorm:"column:usage_count;not null;default:0"`
	CreatedAt   time.Time      `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for Preset
func (Preset) TableName() string {
	return "control_api.presets"
}

// NewSchemaPreset converts a domain preset to a database schema
func NewSchemaPreset(p *preset.Preset) (*Preset, error) {
	var parametersJSON datatypes.JSON
	if len(p.Parameters) > 0 {
		data, err := json.Marshal(p.Parameters)
		if err != nil {
			return nil, err
		}
		parametersJSON = datatypes.JSON(data)
	}

	var workspaceID *string
	if owner, ok := p.Scope.WorkspaceID(); ok {
		workspaceID = &owner
	}

	return &Preset{
		ID:          p.ID,
		WorkspaceID: workspaceID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Template:    p.Template,
		Model:       p.Model,
		Parameters:  parametersJSON,
		IsPublic:    p.IsPublic,
		UsageCount:  p.UsageCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

// EtoD converts database schema to domain preset (Entity to Domain)
func (p *Preset) EtoD() (*preset.Preset, error) {
	var parameters map[string]any
	if len(p.Parameters) > 0 {
		if err := json.Unmarshal(p.Parameters, &parameters); err != nil {
			return nil, err
		}
	}
	if parameters == nil {
		parameters = make(map[string]any)
	}

	scope := preset.SystemScope()
	if p.WorkspaceID != nil {
		scope = preset.WorkspaceScope(*p.WorkspaceID)
	}

	return &preset.Preset{
		ID:          p.ID,
		Scope:       scope,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Template:    p.Template,
		Model:       p.Model,
		Parameters:  parameters,
		IsPublic:    p.IsPublic,
		UsageCount:  p.UsageCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}
