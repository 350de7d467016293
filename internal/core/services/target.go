package services

import (
	"net/url"
	"strings"
)

// BuildTargetURL produces the fully-qualified upstream URL from a route's
// base URL and the validated parameters.
//
// Parameters are appended onto any query string the base URL already has: a
// same-named parameter in the base URL is kept, both values appear. A base
// URL that cannot be parsed degrades to raw string concatenation instead of
// failing the request.
func BuildTargetURL(baseURL string, params []Param) string {
	if len(params) == 0 {
		return baseURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return concatTarget(baseURL, params)
	}

	query := parsed.Query()
	for _, p := range params {
		query.Add(p.Name, p.Value)
	}
	parsed.RawQuery = query.Encode()

	return parsed.String()
}

func concatTarget(baseURL string, params []Param) string {
	pairs := make([]string, 0, len(params))
	for _, p := range params {
		pairs = append(pairs, url.QueryEscape(p.Name)+"="+url.QueryEscape(p.Value))
	}

	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}

	return baseURL + sep + strings.Join(pairs, "&")
}
