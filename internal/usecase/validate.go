package usecase

import (
	"fmt"

	"github.com/ErlanBelekov/shop-api/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// check runs the struct's validate tags and reports the first failing field
// under the given sentinel.
func check(in any, sentinel error) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		return fmt.Errorf("%w: %s failed on %q", sentinel, verrs[0].Field(), verrs[0].Tag())
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}

func parseID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidID
	}
	return nil
}
