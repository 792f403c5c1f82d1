package model

import (
	"time"

	"github.com/google/uuid"
)

// ClassificationRequest is a single inference request bound for the remote
// service. Context carries recent financial facts supplied by the caller; the
// orchestration layer passes it through untouched and makes no freshness
// assumptions about it.
type ClassificationRequest struct {
	CreatedAt time.Time
	Context   map[string]string
	ID        string
	Query     string
	Mode      RequestMode
}

// NewClassificationRequest builds a request for the given mode and query.
func NewClassificationRequest(mode RequestMode, query string, facts map[string]string) ClassificationRequest {
	return ClassificationRequest{
		ID:        uuid.New().String(),
		Mode:      mode,
		Query:     query,
		Context:   facts,
		CreatedAt: time.Now(),
	}
}
