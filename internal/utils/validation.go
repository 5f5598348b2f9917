package contextutils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validator returns the shared validator instance
func Validator() *validator.Validate {
	return validate
}

// ValidateStruct runs struct-tag validation and converts failures into
// an ErrValidationFailed AppError.
func ValidateStruct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return NewAppErrorWithCause(ErrorCodeValidationFailed, SeverityWarn, "Validation failed", err.Error(), err)
	}
	return nil
}

// IsLanguageCode checks for a bare ISO-639 style code such as "es" or "zh"
func IsLanguageCode(code string) bool {
	return validate.Var(code, "required,alpha,lowercase,min=2,max=3") == nil
}
