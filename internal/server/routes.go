// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QueryLens Contributors

package server

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/querylens/querylens/internal/catalog"
	"github.com/querylens/querylens/internal/search"
	qlerr "github.com/querylens/querylens/pkg/errors"
)

// RegisterRoutes wires the comparator and seed source into the REST API.
func (s *Server) RegisterRoutes(cmp *search.Comparator, seed func() []catalog.ProductInput) {
	s.comparator = cmp
	s.seed = seed
	s.registerRoutes()
}

func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "initialize-catalogs",
		Method:      http.MethodPost,
		Path:        "/api/initialize",
		Summary:     "Clear both catalogs and load the seed products into each",
		Tags:        []string{"catalog"},
	}, s.handleInitialize)

	huma.Register(s.api, huma.Operation{
		OperationID: "search-traditional",
		Method:      http.MethodPost,
		Path:        "/api/search/traditional",
		Summary:     "Exact substring search over the lexical catalog",
		Tags:        []string{"search"},
	}, s.handleSearchTraditional)

	huma.Register(s.api, huma.Operation{
		OperationID: "search-vector",
		Method:      http.MethodPost,
		Path:        "/api/search/vector",
		Summary:     "Semantic similarity search over the vector catalog",
		Tags:        []string{"search"},
	}, s.handleSearchVector)

	huma.Register(s.api, huma.Operation{
		OperationID: "search-compare",
		Method:      http.MethodPost,
		Path:        "/api/search/compare",
		Summary:     "Run both engines on the same query and report each outcome",
		Tags:        []string{"search"},
	}, s.handleSearchCompare)

	huma.Register(s.api, huma.Operation{
		OperationID: "catalog-stats",
		Method:      http.MethodGet,
		Path:        "/api/stats",
		Summary:     "Per-engine catalog statistics",
		Tags:        []string{"catalog"},
	}, s.handleStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "list-products",
		Method:      http.MethodGet,
		Path:        "/api/products",
		Summary:     "List catalog products in insertion order",
		Tags:        []string{"catalog"},
	}, s.handleListProducts)

	huma.Register(s.api, huma.Operation{
		OperationID: "clear-catalogs",
		Method:      http.MethodPost,
		Path:        "/api/clear",
		Summary:     "Remove all products from both catalogs",
		Tags:        []string{"catalog"},
	}, s.handleClear)
}

// --- Request/Response types for huma ---

type searchInput struct {
	Body struct {
		Query string `json:"query" minLength:"1" doc:"Free-text search query"`
	}
}

type vectorSearchInput struct {
	Body struct {
		Query string `json:"query" minLength:"1" doc:"Free-text search query"`
		Limit int    `json:"limit,omitempty" minimum:"1" maximum:"100" doc:"Maximum results (default 20)"`
	}
}

// engineResult is one engine's outcome: ranked hits, wall-clock search
// time in milliseconds (2 decimal places), and match count.
type engineResult struct {
	Results       []catalog.Match `json:"results"`
	ExecutionTime float64         `json:"execution_time"`
	Count         int             `json:"count"`
	DBType        string          `json:"db_type,omitempty"`
	Error         string          `json:"error,omitempty"`
}

type searchOutput struct {
	Body engineResult
}

type compareOutput struct {
	Body struct {
		Traditional engineResult `json:"traditional"`
		Vector      engineResult `json:"vector"`
	}
}

type initializeOutput struct {
	Body struct {
		Inserted int    `json:"inserted"`
		Failed   int    `json:"failed,omitempty"`
		Message  string `json:"message"`
	}
}

type statsOutput struct {
	Body struct {
		Traditional catalog.Stats `json:"traditional"`
		Vector      catalog.Stats `json:"vector"`
	}
}

type listProductsInput struct {
	Limit int `query:"limit" minimum:"1" maximum:"1000" doc:"Maximum products to return"`
}

type listProductsOutput struct {
	Body struct {
		Products []catalog.Product `json:"products"`
		Count    int               `json:"count"`
	}
}

type clearOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

// --- Handlers ---

func (s *Server) handleInitialize(ctx context.Context, _ *struct{}) (*initializeOutput, error) {
	report, err := s.comparator.Initialize(ctx, s.seed())
	if err != nil {
		return nil, humaError(err, "initializing catalogs")
	}

	out := &initializeOutput{}
	out.Body.Inserted = report.Inserted
	out.Body.Failed = report.Failed
	out.Body.Message = fmt.Sprintf("Initialized catalogs with %d products", report.Inserted)
	return out, nil
}

func (s *Server) handleSearchTraditional(ctx context.Context, input *searchInput) (*searchOutput, error) {
	matches, elapsed, err := s.comparator.Exact().Search(ctx, input.Body.Query, 0)
	if err != nil {
		return nil, humaError(err, "searching lexical catalog")
	}
	return &searchOutput{Body: newEngineResult(matches, elapsed, "traditional")}, nil
}

func (s *Server) handleSearchVector(ctx context.Context, input *vectorSearchInput) (*searchOutput, error) {
	matches, elapsed, err := s.comparator.Semantic().Search(ctx, input.Body.Query, input.Body.Limit)
	if err != nil {
		return nil, humaError(err, "searching vector catalog")
	}
	return &searchOutput{Body: newEngineResult(matches, elapsed, "vector")}, nil
}

func (s *Server) handleSearchCompare(ctx context.Context, input *searchInput) (*compareOutput, error) {
	cmp, err := s.comparator.Compare(ctx, input.Body.Query)
	if err != nil {
		return nil, humaError(err, "comparing engines")
	}

	out := &compareOutput{}
	out.Body.Traditional = reportToResult(cmp.Exact)
	out.Body.Vector = reportToResult(cmp.Semantic)
	return out, nil
}

func (s *Server) handleStats(ctx context.Context, _ *struct{}) (*statsOutput, error) {
	exact, semantic, err := s.comparator.StatsPair(ctx)
	if err != nil {
		return nil, humaError(err, "reading catalog stats")
	}

	out := &statsOutput{}
	out.Body.Traditional = exact
	out.Body.Vector = semantic
	return out, nil
}

func (s *Server) handleListProducts(ctx context.Context, input *listProductsInput) (*listProductsOutput, error) {
	products, err := s.comparator.Exact().List(ctx, input.Limit)
	if err != nil {
		return nil, humaError(err, "listing products")
	}

	out := &listProductsOutput{}
	out.Body.Products = products
	out.Body.Count = len(products)
	return out, nil
}

func (s *Server) handleClear(ctx context.Context, _ *struct{}) (*clearOutput, error) {
	if err := s.comparator.Clear(ctx); err != nil {
		return nil, humaError(err, "clearing catalogs")
	}

	out := &clearOutput{}
	out.Body.Message = "Catalogs cleared"
	return out, nil
}

// --- helpers ---

func newEngineResult(matches []catalog.Match, elapsed time.Duration, dbType string) engineResult {
	if matches == nil {
		matches = []catalog.Match{}
	}
	return engineResult{
		Results:       matches,
		ExecutionTime: roundMillis(elapsed),
		Count:         len(matches),
		DBType:        dbType,
	}
}

func reportToResult(r search.EngineReport) engineResult {
	if r.Err != "" {
		return engineResult{Results: []catalog.Match{}, Error: r.Err}
	}
	res := newEngineResult(r.Results, r.Elapsed, "")
	return res
}

// roundMillis converts a duration to milliseconds rounded to 2 decimals.
func roundMillis(d time.Duration) float64 {
	ms := float64(d.Nanoseconds()) / 1e6
	return math.Round(ms*100) / 100
}

// humaError maps domain error codes onto HTTP statuses, exposing only the
// message string.
func humaError(err error, msg string) error {
	return huma.NewError(qlerr.HTTPStatus(err), fmt.Sprintf("%s: %s", msg, err.Error()))
}
