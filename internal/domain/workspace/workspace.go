// Package workspace provides read-only access to the tenant aggregate.
// Workspaces are created and administered elsewhere; this core only checks
// that a referenced workspace exists before creating dependent entities.
package workspace

import (
	"context"
	"time"
)

// Workspace represents a tenant/organization that owns conversations,
// presets, and credits.
type Workspace struct {
	ID        string
	Name      string
	Plan      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository defines storage operations for workspaces. Only reads are
// exposed here; workspace lifecycle belongs to the external admin surface.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Workspace, error)
	Exists(ctx context.Context, id string) (bool, error)
}
