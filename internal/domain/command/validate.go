// Package command provides shared validation for use-case command values.
// Every command is validated here before its use case touches a repository.
package command

import (
	"context"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"relay-server/services/control-api/internal/utils/idgen"
	"relay-server/services/control-api/internal/utils/platformerrors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// Validator returns the shared validator instance with custom rules
// registered.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// entityid=<prefix> checks the opaque prefixed identifier format,
		// e.g. `validate:"entityid=conv"` accepts "conv_a3f8d2k9p1m4n7q2".
		_ = validate.RegisterValidation("entityid", func(fl validator.FieldLevel) bool {
			return idgen.ValidateIDFormat(fl.Field().String(), fl.Param())
		})

		// notblank rejects strings that are empty after trimming.
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// Struct validates cmd and converts any violation into a VALIDATION platform
// error so callers can distinguish command-shape failures from business-rule
// failures.
func Struct(ctx context.Context, cmd any) error {
	if err := Validator().Struct(cmd); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"invalid command", err, "0b3e6a91-7d2c-4f58-8e1a-c4b9d6f7230e")
	}
	return nil
}
