package engine

import (
	"context"
	"log/slog"
)

// LoggingFeedback is the default FeedbackRecorder: it logs corrections for a
// retraining collaborator to harvest. Deliberately fire-and-forget.
type LoggingFeedback struct {
	logger *slog.Logger
}

// NewLoggingFeedback creates a feedback recorder over the given logger.
func NewLoggingFeedback(logger *slog.Logger) *LoggingFeedback {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingFeedback{logger: logger}
}

// RecordCorrection logs a user correction.
func (f *LoggingFeedback) RecordCorrection(_ context.Context, originalCategory, correctedCategory, description string) {
	f.logger.Info("classification corrected",
		"original_category", originalCategory,
		"corrected_category", correctedCategory,
		"description", description)
}
