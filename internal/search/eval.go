package search

import (
	"context"
	"fmt"
	"math"

	"github.com/ReesavGupta/RAG-playground/internal/contextutil"
	"github.com/ReesavGupta/RAG-playground/internal/service"
)

// EvalQuery is a labeled query used to measure retrieval quality.
type EvalQuery struct {
	// Query is the search text to run.
	Query string `json:"query"`
	// ExpectedCategories are the category labels a relevant result should have.
	ExpectedCategories []string `json:"expected_categories"`
}

// QueryEval is the evaluation outcome for a single query.
type QueryEval struct {
	Query string `json:"query"`
	// Retrieved is the number of results returned.
	Retrieved int `json:"retrieved"`
	// Relevance is the fraction of results whose category was expected.
	Relevance float64 `json:"relevance"`
	// TopCategory is the category of the top-ranked result, if any.
	TopCategory string `json:"top_category,omitempty"`
}

// EvalReport aggregates retrieval quality across a query set.
type EvalReport struct {
	// Total is the number of queries evaluated.
	Total int `json:"total"`
	// Successful is the number of queries that returned at least one result.
	Successful int `json:"successful"`
	// SuccessRate is Successful / Total.
	SuccessRate float64 `json:"success_rate"`
	// MeanRelevance is the mean category relevance across all queries.
	MeanRelevance float64 `json:"mean_relevance"`
	// PerQuery holds the per-query outcomes in input order.
	PerQuery []QueryEval `json:"per_query"`
}

// Evaluate runs every query through Search and scores the results against the
// expected categories. Queries with no expected categories count every
// returned result as relevant.
func (e *searchEngine) Evaluate(ctx context.Context, queries []EvalQuery, k int) (EvalReport, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(queries) == 0 {
		return EvalReport{}, &service.ValidationError{Field: "queries", Message: "at least one query is required"}
	}

	report := EvalReport{
		Total:    len(queries),
		PerQuery: make([]QueryEval, 0, len(queries)),
	}

	var relevanceSum float64
	for _, query := range queries {
		resp, err := e.Search(ctx, SearchRequest{Query: query.Query, K: k})
		if err != nil {
			return EvalReport{}, fmt.Errorf("failed to evaluate query %q: %w", query.Query, err)
		}

		eval := QueryEval{
			Query:     query.Query,
			Retrieved: len(resp.Results),
		}
		if len(resp.Results) > 0 {
			report.Successful++
			eval.TopCategory = resp.Results[0].Category
			eval.Relevance = categoryRelevance(resp.Results, query.ExpectedCategories)
		}
		relevanceSum += eval.Relevance
		report.PerQuery = append(report.PerQuery, eval)

		logger.DebugContext(ctx, "evaluated query",
			"query", query.Query, "retrieved", eval.Retrieved, "relevance", eval.Relevance)
	}

	report.SuccessRate = round2(float64(report.Successful) / float64(report.Total))
	report.MeanRelevance = round2(relevanceSum / float64(report.Total))

	return report, nil
}

// categoryRelevance returns the fraction of hits whose category appears in
// the expected set, 1.0 when no expectation is given.
func categoryRelevance(hits []Hit, expected []string) float64 {
	if len(expected) == 0 {
		return 1.0
	}

	expectedSet := make(map[string]struct{}, len(expected))
	for _, category := range expected {
		expectedSet[category] = struct{}{}
	}

	var relevant int
	for _, hit := range hits {
		if _, ok := expectedSet[hit.Category]; ok {
			relevant++
		}
	}
	return round2(float64(relevant) / float64(len(hits)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
