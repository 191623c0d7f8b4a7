package dbschema

import (
	"time"

	"relay-server/services/control-api/internal/domain/workspace"
	"relay-server/services/control-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Workspace{})
}

// Workspace represents the database schema for workspaces
type Workspace struct {
	ID        string    `gorm:"column:id;size:50;primaryKey"`
	Name      string    `gorm:"column:name;size:255;not null"`
	Plan      string    `gorm:"column:plan;size:50;not null;default:'free'"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for Workspace
func (Workspace) TableName() string {
	return "control_api.workspaces"
}

// NewSchemaWorkspace creates a database schema from a domain workspace
func NewSchemaWorkspace(w *workspace.Workspace) *Workspace {
	return &Workspace{
		ID:        w.ID,
		Name:      w.Name,
		Plan:      w.Plan,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// EtoD converts database schema to domain workspace (Entity to Domain)
func (w *Workspace) EtoD() *workspace.Workspace {
	return &workspace.Workspace{
		ID:        w.ID,
		Name:      w.Name,
		Plan:      w.Plan,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
