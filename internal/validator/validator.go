package validator

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with the platform's custom
// business rules registered.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()
	registerBusinessRules(validate)
	return &Validator{validate: validate}
}

// Validate checks a struct against its validate tags.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

func registerBusinessRules(validate *validator.Validate) {
	// Course titles must be meaningful, not single characters.
	_ = validate.RegisterValidation("course_title", func(fl validator.FieldLevel) bool {
		title := strings.TrimSpace(fl.Field().String())
		length := utf8.RuneCountInString(title)
		return length >= 3 && length <= 200
	})

	// Prices are bounded; negative or absurd values are rejected up
	// front rather than at the storage layer.
	_ = validate.RegisterValidation("price_range", func(fl validator.FieldLevel) bool {
		price := fl.Field().Float()
		return price >= 0 && price <= 10000
	})

	_ = validate.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
		return utf8.RuneCountInString(fl.Field().String()) >= 8
	})
}
