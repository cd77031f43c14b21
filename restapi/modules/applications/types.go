// Package applications defines the REST API types for portfolio queries.
package applications

import "github.com/portview/portview-backend/model"

// ListResponse wraps the portfolio listing.
type ListResponse struct {
	Count        int                 `json:"count"`
	Applications []model.Application `json:"applications"`
}

// HealthResponse carries a freshly computed score breakdown.
type HealthResponse struct {
	Application string                     `json:"application"`
	Breakdown   model.HealthScoreBreakdown `json:"breakdown"`
}

// RecomputeAllResponse summarizes a portfolio-wide rescore.
type RecomputeAllResponse struct {
	Scored int `json:"scored"`
	Failed int `json:"failed"`
}
