package services

import (
	"regexp"
	"strings"
)

// imagePattern matches values ending in a known image file extension,
// optionally followed by a query string or fragment.
var imagePattern = regexp.MustCompile(`(?i)\.(jpe?g|gif|png|webp|bmp|svg)([?#].*)?$`)

// IsImageURL reports whether s looks like a media (image) URL.
func IsImageURL(s string) bool {
	return imagePattern.MatchString(s)
}

// SearchOrder drives the extraction heuristic. Both lists are ordered, first
// match wins. The defaults are tuned to the upstream APIs observed in
// production but are configuration-adjustable.
type SearchOrder struct {
	// Containers are top-level keys whose object value is searched before
	// the top level itself.
	Containers []string
	// Fields are the candidate field names searched within a container or
	// at the top level.
	Fields []string
}

// DefaultSearchOrder returns the standard search lists.
func DefaultSearchOrder() SearchOrder {
	return SearchOrder{
		Containers: []string{"sticker", "data", "result", "image", "photo", "picture"},
		Fields:     []string{"url", "image", "imageUrl", "img", "src", "path", "link"},
	}
}

// Extractor locates a media URL inside an arbitrary JSON value. Extraction is
// a pure function of its inputs: the same value and field path always yield
// the same result.
type Extractor struct {
	order SearchOrder
}

func NewExtractor(order SearchOrder) *Extractor {
	defaults := DefaultSearchOrder()
	if len(order.Containers) == 0 {
		order.Containers = defaults.Containers
	}
	if len(order.Fields) == 0 {
		order.Fields = defaults.Fields
	}
	return &Extractor{order: order}
}

// Extract searches v for a string that looks like an image URL, trying the
// explicit fieldPath first, then the known nested containers, then the top
// level. A miss is reported as ok=false, never as an error: the heuristic
// carries no guarantee and callers define their own fallback.
func (e *Extractor) Extract(v interface{}, fieldPath string) (string, bool) {
	obj, isObject := v.(map[string]interface{})
	if !isObject {
		return "", false
	}

	// 1. Explicit dotted path. A resolved value of the wrong shape is a
	// miss, not an error.
	if fieldPath != "" {
		if candidate, ok := resolvePath(obj, fieldPath); ok && IsImageURL(candidate) {
			return candidate, true
		}
	}

	fields := e.candidateFields(fieldPath)

	// 2. Known nested containers.
	for _, key := range e.order.Containers {
		if nested, ok := obj[key].(map[string]interface{}); ok {
			if candidate, ok := searchFields(nested, fields); ok {
				return candidate, true
			}
		}
	}

	// 3. Top level.
	return searchFields(obj, fields)
}

// candidateFields puts the caller's requested field name ahead of the
// standard list.
func (e *Extractor) candidateFields(fieldPath string) []string {
	if fieldPath == "" {
		return e.order.Fields
	}
	return append([]string{fieldPath}, e.order.Fields...)
}

func searchFields(obj map[string]interface{}, fields []string) (string, bool) {
	for _, field := range fields {
		if s, ok := obj[field].(string); ok && IsImageURL(s) {
			return s, true
		}
	}
	return "", false
}

// resolvePath walks a dotted path, each segment indexing one level deeper.
// Any missing or non-object intermediate yields a miss.
func resolvePath(obj map[string]interface{}, path string) (string, bool) {
	segments := strings.Split(path, ".")

	current := interface{}(obj)
	for _, segment := range segments {
		m, ok := current.(map[string]interface{})
		if !ok {
			return "", false
		}
		current, ok = m[segment]
		if !ok {
			return "", false
		}
	}

	s, ok := current.(string)
	return s, ok
}
