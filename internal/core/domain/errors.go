package domain

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Problem implements RFC 9457
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	Extensions map[string]interface{} `json:"-"`

	Log error `json:"-"`
}

func (p *Problem) Error() string {
	return fmt.Sprintf("[%d] %s: %s", p.Status, p.Title, p.Detail)
}

func (p *Problem) MarshalJSON() ([]byte, error) {
	type Alias Problem

	data := make(map[string]interface{})

	for k, v := range p.Extensions {
		data[k] = v
	}

	stdJSON, _ := json.Marshal(Alias(*p))
	_ = json.Unmarshal(stdJSON, &data)

	return json.Marshal(data)
}

type ProblemOption func(*Problem)

// NewProblem creates a generic Problem
func NewProblem(status int, title, detail string, opts ...ProblemOption) *Problem {
	p := &Problem{
		Type:       "about:blank", // Default as per RFC
		Title:      title,
		Status:     status,
		Detail:     detail,
		Extensions: make(map[string]interface{}),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithExtension adds a custom key-value pair to the response
func WithExtension(key string, value interface{}) ProblemOption {
	return func(p *Problem) {
		p.Extensions[key] = value
	}
}

// WithLog attaches an internal error for server-side logging
func WithLog(err error) ProblemOption {
	return func(p *Problem) {
		p.Log = err
	}
}

// WithType sets the RFC "type" URI
func WithType(uri string) ProblemOption {
	return func(p *Problem) {
		p.Type = uri
	}
}

// ValidationError carries the accumulated list of parameter problems so a
// single response reports everything at once.
func ValidationError(errs []string) *Problem {
	return NewProblem(
		http.StatusBadRequest,
		"Validation Error",
		"One or more parameters failed validation",
		WithExtension("errors", errs),
	)
}

// BindingError converts field-level body binding failures into a Problem.
func BindingError(fieldErrors map[string]string) *Problem {
	return NewProblem(
		http.StatusBadRequest,
		"Validation Error",
		"The request body failed validation",
		WithExtension("errors", fieldErrors),
	)
}

// BadRequestError creates a standard error for a bad request
func BadRequestError(detail string, opts ...ProblemOption) *Problem {
	return NewProblem(http.StatusBadRequest, "Bad Request", detail, opts...)
}

// NotFoundError creates a standard 404 error
func NotFoundError(detail string, opts ...ProblemOption) *Problem {
	return NewProblem(http.StatusNotFound, "Not Found", detail, opts...)
}

// InternalError creates a 500 for server-side defects (e.g. a route missing
// its base URL)
func InternalError(detail string, err error) *Problem {
	return NewProblem(http.StatusInternalServerError, "Internal Server Error", detail, WithLog(err))
}

// GatewayTimeoutError creates a 504 for unreachable upstreams
func GatewayTimeoutError(detail string, err error) *Problem {
	return NewProblem(http.StatusGatewayTimeout, "Gateway Timeout", detail, WithLog(err))
}

// UnauthorizedError creates a 401 unauthed error
func UnauthorizedError(detail string) *Problem {
	return NewProblem(http.StatusUnauthorized, "Unauthorized", detail)
}
