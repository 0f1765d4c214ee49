package validator

import "github.com/vyrlabs/vyr/internal/apperr"

type Validator interface {
	// Validate validates the fields of the struct and returns a map of errors.
	// returns nil if no errors are found
	Validate() map[string]string
}

func Validate(v Validator) *apperr.Error {
	if fields := v.Validate(); fields != nil {
		return apperr.Validation(fields)
	}
	return nil
}
