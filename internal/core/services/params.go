package services

import (
	"fmt"
	"strings"

	"github.com/nulzo/media-relay/internal/core/domain"
)

// Param is one validated query parameter. Order follows the route's declared
// schema so target URL construction is reproducible.
type Param struct {
	Name  string
	Value string
}

// ValidateParams checks raw query parameters against a route's declared
// schema and produces the validated, defaulted parameter set.
//
// Errors are accumulated across every spec rather than short-circuited, so a
// single response can report every problem at once.
func ValidateParams(specs []domain.ParameterSpec, raw map[string]string) ([]Param, []string) {
	var params []Param
	var errs []string

	for _, spec := range specs {
		value, present := raw[spec.Name]

		switch {
		case present:
			if !spec.Allows(value) {
				errs = append(errs, fmt.Sprintf(
					"invalid value for parameter %s; allowed: %s",
					spec.Name, strings.Join(spec.AllowedValues, ", ")))
				continue
			}
			params = append(params, Param{Name: spec.Name, Value: value})
		case spec.Required:
			errs = append(errs, fmt.Sprintf("missing required parameter %s", spec.Name))
		case spec.DefaultValue != "":
			params = append(params, Param{Name: spec.Name, Value: spec.DefaultValue})
		}
		// optional, no default: absent from the output
	}

	return params, errs
}
