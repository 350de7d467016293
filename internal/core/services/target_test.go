package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildTargetURL_NoParams(t *testing.T) {
	assert.Equal(t, "https://api.example/v1", BuildTargetURL("https://api.example/v1", nil))
}

func TestBuildTargetURL_AppendsParams(t *testing.T) {
	target := BuildTargetURL("https://api.example/v1", []Param{
		{Name: "q", Value: "cats"},
		{Name: "size", Value: "512"},
	})
	assert.Equal(t, "https://api.example/v1?q=cats&size=512", target)
}

func TestBuildTargetURL_MergesOntoExistingQuery(t *testing.T) {
	target := BuildTargetURL("https://api.example/v1?key=abc", []Param{
		{Name: "q", Value: "cats"},
	})
	assert.Equal(t, "https://api.example/v1?key=abc&q=cats", target)
}

func TestBuildTargetURL_SameNameAppends(t *testing.T) {
	// a same-named parameter in the base URL is kept, both values appear
	target := BuildTargetURL("https://api.example/v1?q=base", []Param{
		{Name: "q", Value: "extra"},
	})
	assert.Equal(t, "https://api.example/v1?q=base&q=extra", target)
}

func TestBuildTargetURL_EncodesValues(t *testing.T) {
	target := BuildTargetURL("https://api.example/v1", []Param{
		{Name: "q", Value: "black cat"},
	})
	assert.Equal(t, "https://api.example/v1?q=black+cat", target)
}

func TestBuildTargetURL_MalformedBaseFallsBackToConcat(t *testing.T) {
	// a space in the host makes the URL unparseable
	target := BuildTargetURL("http://bad host/api", []Param{
		{Name: "q", Value: "cats"},
	})
	assert.Equal(t, "http://bad host/api?q=cats", target)

	target = BuildTargetURL("http://bad host/api?key=abc", []Param{
		{Name: "q", Value: "cats"},
	})
	assert.Equal(t, "http://bad host/api?key=abc&q=cats", target)
}
