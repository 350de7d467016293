package services

import (
	"testing"

	"github.com/nulzo/media-relay/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidateParams_AcceptsAndDefaults(t *testing.T) {
	specs := []domain.ParameterSpec{
		{Name: "q", Required: true},
		{Name: "size", DefaultValue: "512"},
		{Name: "style"},
	}

	params, errs := ValidateParams(specs, map[string]string{"q": "cats"})
	assert.Empty(t, errs)
	assert.Equal(t, []Param{
		{Name: "q", Value: "cats"},
		{Name: "size", Value: "512"},
	}, params)
}

func TestValidateParams_AllowedValues(t *testing.T) {
	specs := []domain.ParameterSpec{
		{Name: "model", AllowedValues: []string{"flux", "turbo"}},
	}

	params, errs := ValidateParams(specs, map[string]string{"model": "flux"})
	assert.Empty(t, errs)
	assert.Equal(t, []Param{{Name: "model", Value: "flux"}}, params)

	_, errs = ValidateParams(specs, map[string]string{"model": "dalle"})
	assert.Equal(t, []string{"invalid value for parameter model; allowed: flux, turbo"}, errs)
}

func TestValidateParams_AccumulatesAllErrors(t *testing.T) {
	specs := []domain.ParameterSpec{
		{Name: "q", Required: true},
		{Name: "model", AllowedValues: []string{"flux"}},
		{Name: "lang", Required: true},
	}

	_, errs := ValidateParams(specs, map[string]string{"model": "bad"})
	assert.Len(t, errs, 3)
	assert.Contains(t, errs, "missing required parameter q")
	assert.Contains(t, errs, "missing required parameter lang")
}

func TestValidateParams_OptionalAbsent(t *testing.T) {
	specs := []domain.ParameterSpec{{Name: "style"}}

	params, errs := ValidateParams(specs, map[string]string{})
	assert.Empty(t, errs)
	assert.Empty(t, params)
}
