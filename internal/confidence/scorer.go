// Package confidence scores classification reliability and decides routing.
package confidence

import (
	"github.com/copperwire/penny/internal/model"
)

// Signals are the raw inputs to a confidence score. The Has* flags mark
// signals the caller could not supply; a missing signal contributes zero and
// derates the score rather than being guessed at.
type Signals struct {
	ModelProbability        float64
	HistoricalAgreementRate float64
	HasModelProbability     bool
	HasAgreementRate        bool
	CategoryInTaxonomy      bool
	OutputWellFormed        bool
}

// Config holds the scoring weights and decision thresholds. Values come from
// configuration so tiers can be tuned without touching scoring logic.
type Config struct {
	ModelProbabilityWeight float64
	TaxonomyWeight         float64
	WellFormedWeight       float64
	AgreementWeight        float64
	AcceptThreshold        float64
	DisclaimerThreshold    float64
}

// DefaultConfig returns the default weights and thresholds.
func DefaultConfig() Config {
	return Config{
		ModelProbabilityWeight: 0.4,
		TaxonomyWeight:         0.2,
		WellFormedWeight:       0.2,
		AgreementWeight:        0.2,
		AcceptThreshold:        0.85,
		DisclaimerThreshold:    0.6,
	}
}

// Scorer combines classification signals into a single confidence result.
type Scorer struct {
	cfg Config
}

// NewScorer creates a scorer with the given configuration. Zero-valued
// configs fall back to the defaults.
func NewScorer(cfg Config) *Scorer {
	def := DefaultConfig()
	if cfg.ModelProbabilityWeight <= 0 {
		cfg.ModelProbabilityWeight = def.ModelProbabilityWeight
	}
	if cfg.TaxonomyWeight <= 0 {
		cfg.TaxonomyWeight = def.TaxonomyWeight
	}
	if cfg.WellFormedWeight <= 0 {
		cfg.WellFormedWeight = def.WellFormedWeight
	}
	if cfg.AgreementWeight <= 0 {
		cfg.AgreementWeight = def.AgreementWeight
	}
	if cfg.AcceptThreshold <= 0 {
		cfg.AcceptThreshold = def.AcceptThreshold
	}
	if cfg.DisclaimerThreshold <= 0 {
		cfg.DisclaimerThreshold = def.DisclaimerThreshold
	}
	return &Scorer{cfg: cfg}
}

// Score combines the given signals into a ConfidenceResult. It is pure: no
// I/O, no side effects, and it never fails.
func (s *Scorer) Score(signals Signals) model.ConfidenceResult {
	var score float64
	factors := make([]model.Factor, 0, 5)

	if signals.HasModelProbability {
		p := clamp01(signals.ModelProbability)
		contribution := s.cfg.ModelProbabilityWeight * p
		score += contribution
		factors = append(factors, model.Factor{Name: "model_probability", Contribution: contribution})
	} else {
		factors = append(factors, model.Factor{Name: "model_probability_missing", Contribution: 0})
	}

	if signals.CategoryInTaxonomy {
		score += s.cfg.TaxonomyWeight
		factors = append(factors, model.Factor{Name: "category_in_taxonomy", Contribution: s.cfg.TaxonomyWeight})
	} else {
		factors = append(factors, model.Factor{Name: "category_in_taxonomy", Contribution: 0})
	}

	if signals.OutputWellFormed {
		score += s.cfg.WellFormedWeight
		factors = append(factors, model.Factor{Name: "output_well_formed", Contribution: s.cfg.WellFormedWeight})
	} else {
		factors = append(factors, model.Factor{Name: "output_well_formed", Contribution: 0})
	}

	if signals.HasAgreementRate {
		rate := clamp01(signals.HistoricalAgreementRate)
		contribution := s.cfg.AgreementWeight * rate
		score += contribution
		factors = append(factors, model.Factor{Name: "historical_agreement_rate", Contribution: contribution})
	} else {
		factors = append(factors, model.Factor{Name: "historical_agreement_rate_missing", Contribution: 0})
	}

	score = clamp01(score)

	tier, decision := s.decide(score)

	return model.ConfidenceResult{
		Score:    score,
		Tier:     tier,
		Decision: decision,
		Factors:  factors,
	}
}

// decide maps a score to its tier and routing decision.
func (s *Scorer) decide(score float64) (model.ConfidenceTier, model.Decision) {
	switch {
	case score >= s.cfg.AcceptThreshold:
		return model.TierHigh, model.DecisionAccept
	case score >= s.cfg.DisclaimerThreshold:
		return model.TierMedium, model.DecisionAcceptWithDisclaimer
	default:
		return model.TierLow, model.DecisionReject
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
