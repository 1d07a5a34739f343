// Package validate holds the shared request validator.
package validate

import "github.com/go-playground/validator/v10"

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates the exported fields of a request payload.
func Struct(s any) error {
	return v.Struct(s)
}
