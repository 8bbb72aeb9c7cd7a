package validator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"luxurystay/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate struct fields
func Validate(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

// Struct validates v and folds any failures into a domain.ErrValidation.
func Struct(v any) error {
	fields := Validate(v)
	if len(fields) == 0 {
		return nil
	}

	parts := make([]string, 0, len(fields))
	for field, tag := range fields {
		parts = append(parts, field+"="+tag)
	}
	sort.Strings(parts)
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(parts, ", "))
}
