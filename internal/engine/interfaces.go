package engine

import (
	"context"

	"github.com/copperwire/penny/internal/brain"
	"github.com/copperwire/penny/internal/model"
)

// SmartClassifier is the resilient remote inference path. brain.Client is
// the production implementation; tests substitute their own.
type SmartClassifier interface {
	Classify(ctx context.Context, req model.ClassificationRequest) brain.Result
}
