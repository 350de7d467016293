package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/nulzo/media-relay/internal/core/domain"
	"github.com/nulzo/media-relay/internal/httpclient"
	"go.uber.org/zap"
)

// ResolutionKind is the terminal outcome of resolving a request.
type ResolutionKind int

const (
	// KindDecline yields control back to the caller's not-found handling.
	KindDecline ResolutionKind = iota
	// KindRedirect emits an HTTP redirect to Location.
	KindRedirect
	// KindBody emits Body with Status and ContentType.
	KindBody
	// KindProblem emits the attached Problem.
	KindProblem
)

// Resolution is what the engine produces for one inbound request. It is
// transport-agnostic: the HTTP handler translates it into a gin response.
type Resolution struct {
	Kind        ResolutionKind
	Location    string
	Status      int
	ContentType string
	Body        []byte
	Problem     *domain.Problem
}

func decline() *Resolution {
	return &Resolution{Kind: KindDecline}
}

func redirect(location string) *Resolution {
	return &Resolution{Kind: KindRedirect, Location: location}
}

func body(status int, contentType string, b []byte) *Resolution {
	return &Resolution{Kind: KindBody, Status: status, ContentType: contentType, Body: b}
}

func problem(p *domain.Problem) *Resolution {
	return &Resolution{Kind: KindProblem, Problem: p}
}

// drawAliasModels is the fallback allowed-value list for the draw alias when
// the route declares no model parameter of its own.
var drawAliasModels = []string{"flux", "turbo"}

const drawAliasDefaultModel = "flux"

// Resolver is the dynamic route-resolution engine: it looks up the inbound
// key in the current route table, dispatches to a special construction or
// the generic parameter-merge path, performs the upstream call for proxy
// routes, and extracts the media location from the response.
type Resolver struct {
	config    *ConfigStore
	extractor *Extractor
	client    *httpclient.Client
	logger    *zap.Logger
}

func NewResolver(config *ConfigStore, extractor *Extractor, client *httpclient.Client, logger *zap.Logger) *Resolver {
	return &Resolver{
		config:    config,
		extractor: extractor,
		client:    client,
		logger:    logger,
	}
}

// Resolve runs the engine for one request. rawQuery is the unparsed query
// string; the pollinations construction depends on seeing parameter values
// before percent-decoding.
func (r *Resolver) Resolve(ctx context.Context, key string, query url.Values, rawQuery string) *Resolution {
	if domain.IsReservedKey(key) {
		return decline()
	}

	// One table snapshot per request: a concurrent admin replace is not
	// observed mid-flight.
	table := r.config.Get()
	route, ok := table.Lookup(key)
	if !ok || route.ResolutionMode == "" {
		return decline()
	}

	switch route.Construction() {
	case domain.ConstructionForward:
		return r.resolveForward(ctx, route, query)
	case domain.ConstructionPollinations:
		return r.resolvePollinations(route, table.BaseTag, rawQuery)
	case domain.ConstructionDrawAlias:
		return r.resolveDrawAlias(route, query, rawQuery)
	}

	params, errs := ValidateParams(route.ParameterSchema, firstValues(query))
	if len(errs) > 0 {
		return problem(domain.ValidationError(errs))
	}

	if route.BaseURL == "" {
		return problem(domain.InternalError("route has no base URL configured", nil))
	}

	target := BuildTargetURL(route.BaseURL, params)

	switch route.ResolutionMode {
	case domain.ModeRedirect:
		return redirect(target)
	case domain.ModeProxy:
		return r.proxy(ctx, target, route.ImageField(), route.Fallback())
	default:
		return problem(domain.InternalError(
			fmt.Sprintf("route has unknown resolution mode %q", route.ResolutionMode), nil))
	}
}

// resolveForward proxies an arbitrary caller-supplied URL, reading the media
// location from a caller-supplied field.
func (r *Resolver) resolveForward(ctx context.Context, route domain.RouteDefinition, query url.Values) *Resolution {
	target := query.Get("url")
	if target == "" {
		return problem(domain.BadRequestError("missing url"))
	}

	field := query.Get("field")
	if field == "" {
		field = "url"
	}

	return r.proxy(ctx, target, field, route.Fallback())
}

// resolvePollinations builds the drawing prompt URL. The tags value is taken
// from the raw query string and escaped exactly once more, so the literal
// %2c separating it from the base tag survives unencoded.
func (r *Resolver) resolvePollinations(route domain.RouteDefinition, baseTag, rawQuery string) *Resolution {
	tags, ok := rawQueryValue(rawQuery, "tags")
	if !ok || tags == "" {
		return problem(domain.BadRequestError("missing tags"))
	}

	target := fmt.Sprintf("%s%s%%2c%s?&model=%s&nologo=true",
		route.BaseURL, url.QueryEscape(tags), baseTag, route.ModelName)

	return redirect(target)
}

// resolveDrawAlias validates the model choice and redirects internally to
// the matching drawing route.
func (r *Resolver) resolveDrawAlias(route domain.RouteDefinition, query url.Values, rawQuery string) *Resolution {
	tags, ok := rawQueryValue(rawQuery, "tags")
	if !ok || tags == "" {
		return problem(domain.BadRequestError("missing tags"))
	}

	allowed := drawAliasModels
	defaultModel := drawAliasDefaultModel
	if spec, ok := route.Param("model"); ok {
		if len(spec.AllowedValues) > 0 {
			allowed = spec.AllowedValues
		}
		if spec.DefaultValue != "" {
			defaultModel = spec.DefaultValue
		}
	}

	model := query.Get("model")
	if model == "" {
		model = defaultModel
	}
	if !contains(allowed, model) {
		return problem(domain.BadRequestError(fmt.Sprintf(
			"invalid value for parameter model; allowed: %s", strings.Join(allowed, ", "))))
	}

	return redirect("/" + model + "?tags=" + tags)
}

// proxy performs the upstream GET and interprets the response: error
// statuses pass through, a found media location becomes a redirect, and a
// miss falls back per the route's policy.
func (r *Resolver) proxy(ctx context.Context, target, field string, fallback domain.FallbackAction) *Resolution {
	resp, err := r.client.Get(ctx, target)
	if err != nil {
		return r.translateUpstreamError(target, err)
	}

	var parsed interface{}
	if json.Unmarshal(resp.Body, &parsed) == nil {
		if location, found := r.extractor.Extract(parsed, field); found {
			return redirect(location)
		}
	}

	if fallback == domain.FallbackError {
		return problem(domain.NotFoundError("no media location found in upstream response"))
	}

	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	return body(resp.StatusCode, contentType, resp.Body)
}

func (r *Resolver) translateUpstreamError(target string, err error) *Resolution {
	var upstream *httpclient.UpstreamError
	if errors.As(err, &upstream) {
		// The upstream answered with an error: forward its status and
		// body, or synthesize one when the body is empty.
		if len(upstream.Body) == 0 {
			return problem(domain.NewProblem(upstream.StatusCode,
				http.StatusText(upstream.StatusCode), "upstream returned an error"))
		}
		return body(upstream.StatusCode, upstream.ContentType, upstream.Body)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		r.logger.Warn("Upstream unreachable", zap.String("target", target), zap.Error(err))
		return problem(domain.GatewayTimeoutError("upstream unreachable", err))
	}

	return problem(domain.InternalError("upstream request failed", err))
}

// firstValues flattens a url.Values to the first value per key.
func firstValues(query url.Values) map[string]string {
	flat := make(map[string]string, len(query))
	for key, values := range query {
		if len(values) > 0 {
			flat[key] = values[0]
		}
	}
	return flat
}

// rawQueryValue finds key in an unparsed query string and returns its value
// without percent-decoding it.
func rawQueryValue(rawQuery, key string) (string, bool) {
	for _, pair := range strings.Split(rawQuery, "&") {
		name, value, _ := strings.Cut(pair, "=")
		if name == key {
			return value, true
		}
	}
	return "", false
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
