// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
	"github.com/asanchez75/ontodia/pkg/graph"
	"github.com/asanchez75/ontodia/pkg/health"
)

// APIPrefix is the path prefix of every graph operation.
const APIPrefix = "/api/v1"

// RegisterServices sets the service dependencies and registers REST routes.
func (s *Server) RegisterServices(svc *Services) {
	s.services = svc
	s.registerRoutes()
	if svc.metrics != nil {
		s.router.Handle("/metrics", svc.metrics)
	}
}

func (s *Server) registerHealthRoute() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"system"},
	}, s.handleHealth)
}

func (s *Server) registerRoutes() {
	// Schema
	huma.Register(s.api, huma.Operation{
		OperationID: "class-tree",
		Method:      http.MethodGet,
		Path:        APIPrefix + "/class-tree",
		Summary:     "Class hierarchy",
		Tags:        []string{"schema"},
	}, s.handleClassTree)

	huma.Register(s.api, huma.Operation{
		OperationID: "property-info",
		Method:      http.MethodPost,
		Path:        APIPrefix + "/property-info",
		Summary:     "Describe datatype properties",
		Tags:        []string{"schema"},
	}, s.handlePropertyInfo)

	huma.Register(s.api, huma.Operation{
		OperationID: "class-info",
		Method:      http.MethodPost,
		Path:        APIPrefix + "/class-info",
		Summary:     "Describe classes",
		Tags:        []string{"schema"},
	}, s.handleClassInfo)

	huma.Register(s.api, huma.Operation{
		OperationID: "link-types-info",
		Method:      http.MethodPost,
		Path:        APIPrefix + "/link-types-info",
		Summary:     "Describe link types",
		Tags:        []string{"schema"},
	}, s.handleLinkTypesInfo)

	huma.Register(s.api, huma.Operation{
		OperationID: "link-types",
		Method:      http.MethodGet,
		Path:        APIPrefix + "/link-types",
		Summary:     "List link types",
		Tags:        []string{"schema"},
	}, s.handleLinkTypes)

	// Elements
	huma.Register(s.api, huma.Operation{
		OperationID: "element-info",
		Method:      http.MethodPost,
		Path:        APIPrefix + "/element-info",
		Summary:     "Describe elements",
		Tags:        []string{"elements"},
	}, s.handleElementInfo)

	huma.Register(s.api, huma.Operation{
		OperationID: "links-info",
		Method:      http.MethodPost,
		Path:        APIPrefix + "/links-info",
		Summary:     "Links between elements",
		Tags:        []string{"elements"},
	}, s.handleLinksInfo)

	huma.Register(s.api, huma.Operation{
		OperationID: "link-types-of",
		Method:      http.MethodPost,
		Path:        APIPrefix + "/link-types-of",
		Summary:     "Link type usage of one element",
		Tags:        []string{"elements"},
	}, s.handleLinkTypesOf)

	huma.Register(s.api, huma.Operation{
		OperationID: "link-elements",
		Method:      http.MethodPost,
		Path:        APIPrefix + "/link-elements",
		Summary:     "Neighbours of an element across one link type",
		Tags:        []string{"elements"},
	}, s.handleLinkElements)

	huma.Register(s.api, huma.Operation{
		OperationID: "filter",
		Method:      http.MethodPost,
		Path:        APIPrefix + "/filter",
		Summary:     "Search elements",
		Tags:        []string{"elements"},
	}, s.handleFilter)

	// System
	huma.Register(s.api, huma.Operation{
		OperationID: "list-sources",
		Method:      http.MethodGet,
		Path:        APIPrefix + "/sources",
		Summary:     "Federated sources and their health",
		Tags:        []string{"system"},
	}, s.handleListSources)
}

// --- Request/Response types for huma ---

// HealthBody is the JSON body of the health endpoint response.
type HealthBody struct {
	Status  string           `json:"status" example:"ok" doc:"ok, or degraded when a source failed its last call"`
	Sources []health.Metrics `json:"sources,omitempty"`
}

// HealthResponse wraps the health check response.
type HealthResponse struct {
	Body HealthBody
}

type classListOutput struct {
	Body []graph.ClassModel
}

type linkTypeListOutput struct {
	Body []graph.LinkType
}

type elementMapOutput struct {
	Body map[string]graph.ElementModel
}

type propertyInfoInput struct {
	Body graph.PropertyInfoParams
}

type propertyInfoOutput struct {
	Body map[string]graph.PropertyModel
}

type classInfoInput struct {
	Body graph.ClassInfoParams
}

type linkTypesInfoInput struct {
	Body graph.LinkTypesInfoParams
}

type elementInfoInput struct {
	Body graph.ElementInfoParams
}

type linksInfoInput struct {
	Body graph.LinksInfoParams
}

type linksInfoOutput struct {
	Body []graph.LinkModel
}

type linkTypesOfInput struct {
	Body graph.LinkTypesOfParams
}

type linkTypesOfOutput struct {
	Body []graph.LinkCount
}

type linkElementsInput struct {
	Body graph.LinkElementsParams
}

type filterInput struct {
	Body graph.FilterParams
}

// SourcesBody lists the federated sources.
type SourcesBody struct {
	Sources []health.Metrics `json:"sources"`
}

type listSourcesOutput struct {
	Body SourcesBody
}

// --- Handlers ---

func (s *Server) handleHealth(_ context.Context, _ *struct{}) (*HealthResponse, error) {
	out := &HealthResponse{Body: HealthBody{Status: "ok"}}
	if s.services == nil || s.services.sources == nil {
		return out, nil
	}
	out.Body.Sources = s.services.sources.Health()
	for _, m := range out.Body.Sources {
		if !m.Available {
			out.Body.Status = "degraded"
		}
	}
	return out, nil
}

// queryError converts a data source failure into an HTTP error whose status
// follows the error code.
func (s *Server) queryError(op string, err error) error {
	status := ontoerr.HTTPStatus(err)
	s.logger.Error("graph query failed",
		slog.String("operation", op),
		slog.Int("status", status),
		slog.Any("error", err),
	)
	msg := op + " failed"
	if source, ok := ontoerr.FieldsOf(err)["source"].(string); ok {
		msg += ": source " + source + " failed"
	}
	return huma.NewError(status, msg, err)
}

func (s *Server) handleClassTree(ctx context.Context, _ *struct{}) (*classListOutput, error) {
	classes, err := s.services.data.ClassTree(ctx)
	if err != nil {
		return nil, s.queryError("classTree", err)
	}
	return &classListOutput{Body: classes}, nil
}

func (s *Server) handlePropertyInfo(ctx context.Context, input *propertyInfoInput) (*propertyInfoOutput, error) {
	props, err := s.services.data.PropertyInfo(ctx, input.Body)
	if err != nil {
		return nil, s.queryError("propertyInfo", err)
	}
	return &propertyInfoOutput{Body: props}, nil
}

func (s *Server) handleClassInfo(ctx context.Context, input *classInfoInput) (*classListOutput, error) {
	classes, err := s.services.data.ClassInfo(ctx, input.Body)
	if err != nil {
		return nil, s.queryError("classInfo", err)
	}
	return &classListOutput{Body: classes}, nil
}

func (s *Server) handleLinkTypesInfo(ctx context.Context, input *linkTypesInfoInput) (*linkTypeListOutput, error) {
	types, err := s.services.data.LinkTypesInfo(ctx, input.Body)
	if err != nil {
		return nil, s.queryError("linkTypesInfo", err)
	}
	return &linkTypeListOutput{Body: types}, nil
}

func (s *Server) handleLinkTypes(ctx context.Context, _ *struct{}) (*linkTypeListOutput, error) {
	types, err := s.services.data.LinkTypes(ctx)
	if err != nil {
		return nil, s.queryError("linkTypes", err)
	}
	return &linkTypeListOutput{Body: types}, nil
}

func (s *Server) handleElementInfo(ctx context.Context, input *elementInfoInput) (*elementMapOutput, error) {
	elements, err := s.services.data.ElementInfo(ctx, input.Body)
	if err != nil {
		return nil, s.queryError("elementInfo", err)
	}
	return &elementMapOutput{Body: elements}, nil
}

func (s *Server) handleLinksInfo(ctx context.Context, input *linksInfoInput) (*linksInfoOutput, error) {
	links, err := s.services.data.LinksInfo(ctx, input.Body)
	if err != nil {
		return nil, s.queryError("linksInfo", err)
	}
	return &linksInfoOutput{Body: links}, nil
}

func (s *Server) handleLinkTypesOf(ctx context.Context, input *linkTypesOfInput) (*linkTypesOfOutput, error) {
	counts, err := s.services.data.LinkTypesOf(ctx, input.Body)
	if err != nil {
		return nil, s.queryError("linkTypesOf", err)
	}
	return &linkTypesOfOutput{Body: counts}, nil
}

func (s *Server) handleLinkElements(ctx context.Context, input *linkElementsInput) (*elementMapOutput, error) {
	elements, err := s.services.data.LinkElements(ctx, input.Body)
	if err != nil {
		return nil, s.queryError("linkElements", err)
	}
	return &elementMapOutput{Body: elements}, nil
}

func (s *Server) handleFilter(ctx context.Context, input *filterInput) (*elementMapOutput, error) {
	elements, err := s.services.data.Filter(ctx, input.Body)
	if err != nil {
		return nil, s.queryError("filter", err)
	}
	return &elementMapOutput{Body: elements}, nil
}

func (s *Server) handleListSources(_ context.Context, _ *struct{}) (*listSourcesOutput, error) {
	if s.services.sources == nil {
		return nil, huma.Error503ServiceUnavailable("source reporting not available")
	}
	return &listSourcesOutput{Body: SourcesBody{Sources: s.services.sources.Health()}}, nil
}
