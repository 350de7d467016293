package domain

import "strings"

// ResolutionMode controls how a route's response is produced once the
// target URL has been built.
type ResolutionMode string

const (
	ModeRedirect ResolutionMode = "redirect"
	ModeProxy    ResolutionMode = "proxy"
)

// SpecialConstruction selects an alternate URL-construction algorithm that
// bypasses the generic parameter-merge path.
type SpecialConstruction string

const (
	ConstructionNone         SpecialConstruction = "none"
	ConstructionForward      SpecialConstruction = "forward"
	ConstructionPollinations SpecialConstruction = "pollinations-style-draw"
	ConstructionDrawAlias    SpecialConstruction = "draw-alias-redirect"
)

// FallbackAction is the configured behavior when media-location extraction
// misses on a proxy route.
type FallbackAction string

const (
	FallbackReturnJSON FallbackAction = "returnJson"
	FallbackError      FallbackAction = "error"
)

// ParameterSpec declares one query parameter of a route.
type ParameterSpec struct {
	Name          string   `json:"name" yaml:"name" mapstructure:"name"`
	Required      bool     `json:"required" yaml:"required" mapstructure:"required"`
	DefaultValue  string   `json:"defaultValue,omitempty" yaml:"default_value" mapstructure:"default_value"`
	AllowedValues []string `json:"allowedValues,omitempty" yaml:"allowed_values" mapstructure:"allowed_values"`
	Description   string   `json:"description,omitempty" yaml:"description" mapstructure:"description"`
}

// Allows reports whether v is acceptable for this spec. An empty
// AllowedValues list accepts everything.
func (p ParameterSpec) Allows(v string) bool {
	if len(p.AllowedValues) == 0 {
		return true
	}
	for _, allowed := range p.AllowedValues {
		if v == allowed {
			return true
		}
	}
	return false
}

// ProxySettings tunes proxy-mode routes.
type ProxySettings struct {
	ImageURLField  string         `json:"imageUrlField,omitempty" yaml:"image_url_field" mapstructure:"image_url_field"`
	FallbackAction FallbackAction `json:"fallbackAction,omitempty" yaml:"fallback_action" mapstructure:"fallback_action"`
}

// Fallback returns the effective fallback action, defaulting to returnJson.
func (p *ProxySettings) Fallback() FallbackAction {
	if p == nil || p.FallbackAction == "" {
		return FallbackReturnJSON
	}
	return p.FallbackAction
}

// RouteDefinition is the configuration unit for one route.
type RouteDefinition struct {
	Group               string              `json:"group,omitempty" yaml:"group" mapstructure:"group"`
	Description         string              `json:"description,omitempty" yaml:"description" mapstructure:"description"`
	BaseURL             string              `json:"baseUrl" yaml:"base_url" mapstructure:"base_url"`
	ResolutionMode      ResolutionMode      `json:"resolutionMode" yaml:"resolution_mode" mapstructure:"resolution_mode"`
	SpecialConstruction SpecialConstruction `json:"specialConstruction,omitempty" yaml:"special_construction" mapstructure:"special_construction"`
	ModelName           string              `json:"modelName,omitempty" yaml:"model_name" mapstructure:"model_name"`
	ParameterSchema     []ParameterSpec     `json:"parameterSchema,omitempty" yaml:"parameter_schema" mapstructure:"parameter_schema"`
	ProxySettings       *ProxySettings      `json:"proxySettings,omitempty" yaml:"proxy_settings" mapstructure:"proxy_settings"`
}

// Construction returns the effective special construction, defaulting to none.
func (r RouteDefinition) Construction() SpecialConstruction {
	if r.SpecialConstruction == "" {
		return ConstructionNone
	}
	return r.SpecialConstruction
}

// ImageField returns the configured dotted extraction path, if any.
func (r RouteDefinition) ImageField() string {
	if r.ProxySettings == nil {
		return ""
	}
	return r.ProxySettings.ImageURLField
}

// Fallback returns the effective fallback action for proxy extraction misses.
func (r RouteDefinition) Fallback() FallbackAction {
	return r.ProxySettings.Fallback()
}

// Param finds a declared parameter by name.
func (r RouteDefinition) Param(name string) (ParameterSpec, bool) {
	for _, p := range r.ParameterSchema {
		if p.Name == name {
			return p, true
		}
	}
	return ParameterSpec{}, false
}

// RouteTable is the authoritative routing configuration. It is treated as an
// immutable value: admin updates replace the whole table, never mutate it.
type RouteTable struct {
	Routes  map[string]RouteDefinition `json:"routes" yaml:"routes" mapstructure:"routes"`
	BaseTag string                     `json:"baseTag" yaml:"base_tag" mapstructure:"base_tag"`
}

// EmptyTable returns a usable zero-value table.
func EmptyTable() *RouteTable {
	return &RouteTable{Routes: map[string]RouteDefinition{}}
}

// Lookup returns the route for key, if present.
func (t *RouteTable) Lookup(key string) (RouteDefinition, bool) {
	route, ok := t.Routes[key]
	return route, ok
}

// reservedKeys are owned by the server's static endpoints and must never be
// resolved as routes.
var reservedKeys = map[string]bool{
	"config":  true,
	"admin":   true,
	"health":  true,
	"favicon": true,
}

// IsReservedKey reports whether key may not be used as a route key. Keys
// containing a dot (file-looking paths) are always reserved.
func IsReservedKey(key string) bool {
	if key == "" || strings.Contains(key, ".") {
		return true
	}
	return reservedKeys[key]
}
