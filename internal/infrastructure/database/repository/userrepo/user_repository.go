package userrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"relay-server/services/control-api/internal/domain/user"
	"relay-server/services/control-api/internal/infrastructure/database/dbschema"
	"relay-server/services/control-api/internal/infrastructure/database/transaction"
	"relay-server/services/control-api/internal/utils/platformerrors"
)

// UserGormRepository implements user.Repository using GORM
type UserGormRepository struct {
	db *transaction.Database
}

var _ user.Repository = (*UserGormRepository)(nil)

// NewUserGormRepository creates a new GORM-based user repository
func NewUserGormRepository(db *transaction.Database) user.Repository {
	return &UserGormRepository{db: db}
}

// FindByID finds a user by its ID
func (r *UserGormRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	var schema dbschema.User
	tx := r.db.GetTx(ctx)
	if err := tx.Where("id = ?", id).First(&schema).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "user not found", err, "e496ccda-4567-4789-be49-0ae82a3b27cd")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to find user", err, "06b8eefc-6789-49ab-906b-2c0a4c5d49ef")
	}
	return schema.EtoD(), nil
}

// Exists reports whether a user with the given ID exists
func (r *UserGormRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	tx := r.db.GetTx(ctx)
	err := tx.Model(&dbschema.User{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to check user existence", err, "28da101e-89ab-4bcd-b28d-4e2c6e7f6b01")
	}
	return count > 0, nil
}
