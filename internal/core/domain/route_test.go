package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsReservedKey(t *testing.T) {
	reserved := []string{"", "config", "admin", "health", "favicon", "favicon.ico", "some.file.js"}
	for _, key := range reserved {
		assert.True(t, IsReservedKey(key), "key %q should be reserved", key)
	}

	open := []string{"cat", "flux", "draw", "forward", "configs", "healthz"}
	for _, key := range open {
		assert.False(t, IsReservedKey(key), "key %q should be usable", key)
	}
}

func TestParameterSpecAllows(t *testing.T) {
	unconstrained := ParameterSpec{Name: "q"}
	assert.True(t, unconstrained.Allows("anything"))

	constrained := ParameterSpec{Name: "model", AllowedValues: []string{"flux", "turbo"}}
	assert.True(t, constrained.Allows("flux"))
	assert.False(t, constrained.Allows("dalle"))
}

func TestRouteDefinitionDefaults(t *testing.T) {
	var route RouteDefinition

	assert.Equal(t, ConstructionNone, route.Construction())
	assert.Equal(t, "", route.ImageField())
	assert.Equal(t, FallbackReturnJSON, route.Fallback())

	route.ProxySettings = &ProxySettings{ImageURLField: "data.url", FallbackAction: FallbackError}
	assert.Equal(t, "data.url", route.ImageField())
	assert.Equal(t, FallbackError, route.Fallback())
}

func TestRouteTableLookup(t *testing.T) {
	table := EmptyTable()
	_, ok := table.Lookup("missing")
	assert.False(t, ok)

	table.Routes["cat"] = RouteDefinition{BaseURL: "https://cat.example"}
	route, ok := table.Lookup("cat")
	assert.True(t, ok)
	assert.Equal(t, "https://cat.example", route.BaseURL)
}
