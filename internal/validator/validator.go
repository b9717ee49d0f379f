package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validator checks struct tags on raw API payloads, ledger records and config.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	return &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ValidateStruct validates a struct based on its tags.
func (v *Validator) ValidateStruct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// ValidateEach validates every element and reports the index of the first
// one that fails.
func ValidateEach[T any](v *Validator, items []T) error {
	for i := range items {
		if err := v.validate.Struct(items[i]); err != nil {
			return fmt.Errorf("validation failed for item %d: %w", i, err)
		}
	}
	return nil
}
