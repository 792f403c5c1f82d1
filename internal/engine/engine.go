// Package engine orchestrates hybrid classification: the local fast path
// first, the remote smart path only when confidence demands it.
package engine

import (
	"context"
	"log/slog"

	"github.com/copperwire/penny/internal/confidence"
	"github.com/copperwire/penny/internal/model"
	"github.com/copperwire/penny/internal/service"
)

// Engine is the top-level entry point for categorization requests. It owns
// the composition: fast classifier, confidence policy, and the resilient
// brain client for ambiguous cases.
type Engine struct {
	fast     service.FastClassifier
	scorer   *confidence.Scorer
	brain    SmartClassifier
	taxonomy *model.Taxonomy
	history  service.HistoryProvider
	feedback service.FeedbackRecorder
	logger   *slog.Logger
}

// New creates an engine. history and feedback may be nil.
func New(fast service.FastClassifier, scorer *confidence.Scorer, brainClient SmartClassifier, taxonomy *model.Taxonomy, history service.HistoryProvider, feedback service.FeedbackRecorder, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		fast:     fast,
		scorer:   scorer,
		brain:    brainClient,
		taxonomy: taxonomy,
		history:  history,
		feedback: feedback,
		logger:   logger,
	}
}

// Categorize classifies a transaction description. It always returns a
// result: the fast path when confidence allows, the remote smart path on
// rejection, and the fast-path guess marked low-confidence when the smart
// path degrades. It never returns a hard error.
func (e *Engine) Categorize(ctx context.Context, description string, sourceFacts map[string]string) model.CategorizationResult {
	category, probability := e.fast.Classify(description)

	signals := confidence.Signals{
		ModelProbability:    probability,
		HasModelProbability: true,
		CategoryInTaxonomy:  e.taxonomy.Contains(category),
		OutputWellFormed:    category != "",
	}
	if e.history != nil {
		if rate, known := e.history.AgreementRate(ctx, description); known {
			signals.HistoricalAgreementRate = rate
			signals.HasAgreementRate = true
		}
	}
	conf := e.scorer.Score(signals)

	if conf.Accepted() {
		e.logger.Debug("fast path accepted",
			"description", description,
			"category", category,
			"score", conf.Score,
			"decision", conf.Decision)
		return model.CategorizationResult{
			Category:   category,
			Source:     model.SourceFastPath,
			Confidence: conf,
			Disclaimer: conf.Decision == model.DecisionAcceptWithDisclaimer,
		}
	}

	e.logger.Info("fast path rejected, consulting remote service",
		"description", description,
		"fast_category", category,
		"score", conf.Score)

	req := model.NewClassificationRequest(model.ModeParse, description, sourceFacts)
	remote := e.brain.Classify(ctx, req)

	if !remote.Degraded {
		if remoteCategory, ok := pickCategory(remote.Labels); ok {
			return model.CategorizationResult{
				Category:   remoteCategory,
				Source:     model.SourceRemote,
				Confidence: remote.Confidence,
				Disclaimer: remote.Confidence.Decision == model.DecisionAcceptWithDisclaimer,
			}
		}
		// Validated but empty labeling; treat like degradation.
		remote.Issues = append(remote.Issues, model.Issue{
			Code:   model.IssueMalformedOutput,
			Detail: "remote response carried no usable labels",
		})
	}

	// The system always answers: fall back to the fast-path guess,
	// explicitly marked low confidence.
	fallbackCategory := category
	if fallbackCategory == "" || !e.taxonomy.Contains(fallbackCategory) {
		fallbackCategory = e.taxonomy.Fallback().Name
	}
	e.logger.Warn("smart path degraded, returning fast-path fallback",
		"description", description,
		"category", fallbackCategory,
		"reason", remote.Reason)
	return model.CategorizationResult{
		Category:   fallbackCategory,
		Source:     model.SourceFallback,
		Confidence: conf,
		Degraded:   true,
		Issues:     remote.Issues,
	}
}

// RecordCorrection forwards a user correction to the retraining collaborator
// and the history tracker. Fire-and-forget: the caller never blocks on it.
func (e *Engine) RecordCorrection(ctx context.Context, originalCategory, correctedCategory, description string) {
	if recorder, ok := e.history.(interface{ Observe(string, string) }); ok && e.history != nil {
		recorder.Observe(description, correctedCategory)
	}
	if e.feedback == nil {
		return
	}
	go e.feedback.RecordCorrection(context.WithoutCancel(ctx), originalCategory, correctedCategory, description)
}

// pickCategory selects the category from a validated label set.
func pickCategory(labels []model.LabeledEntry) (string, bool) {
	for _, entry := range labels {
		if entry.Category != "" {
			return entry.Category, true
		}
	}
	return "", false
}
