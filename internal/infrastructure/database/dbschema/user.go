package dbschema

import (
	"time"

	"relay-server/services/control-api/internal/domain/user"
	"relay-server/services/control-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{})
}

// User represents the database schema for users
type User struct {
	ID        string    `gorm:"column:id;size:50;primaryKey"`
	Email     *string   `gorm:"column:email;size:255;uniqueIndex"`
	Name      *string   `gorm:"column:name;size:255"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "control_api.users"
}

// NewSchemaUser creates a database schema from a domain user
func NewSchemaUser(u *user.User) *User {
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// EtoD converts database schema to domain user (Entity to Domain)
func (u *User) EtoD() *user.User {
	return &user.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
