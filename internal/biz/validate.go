package biz

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// validateStruct runs the struct tags on s and folds every failure into one
// ErrValidation, e.g. "validation failed: title is required".
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldName(fe)+" "+messageFor(fe))
	}
	sort.Strings(msgs)
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		name = fe.StructField()
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	default:
		return "is invalid"
	}
}
