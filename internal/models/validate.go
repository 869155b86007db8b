package models

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate checks a document against its struct tags. Returns
// validator.ValidationErrors on failure, which the error boundary maps to 400.
func Validate(doc interface{}) error {
	return validate.Struct(doc)
}
