// Package tasks defines the REST API types for lifecycle task operations.
package tasks

import "github.com/portview/portview-backend/model"

// ListResponse wraps a task listing.
type ListResponse struct {
	Count int                   `json:"count"`
	Tasks []model.LifecycleTask `json:"tasks"`
}

// StatusUpdateRequest is the body of a task status transition.
type StatusUpdateRequest struct {
	Status model.TaskStatus `json:"status"`
	Actor  string           `json:"actor"`
	Note   string           `json:"note,omitempty"`
}
