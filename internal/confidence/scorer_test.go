package confidence

import (
	"testing"

	"github.com/copperwire/penny/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorerScore(t *testing.T) {
	tests := []struct {
		name         string
		signals      Signals
		wantScore    float64
		wantTier     model.ConfidenceTier
		wantDecision model.Decision
	}{
		{
			name: "all signals perfect",
			signals: Signals{
				ModelProbability:        0.95,
				HasModelProbability:     true,
				CategoryInTaxonomy:      true,
				OutputWellFormed:        true,
				HistoricalAgreementRate: 1.0,
				HasAgreementRate:        true,
			},
			wantScore:    0.98,
			wantTier:     model.TierHigh,
			wantDecision: model.DecisionAccept,
		},
		{
			name: "probability one scores exactly one",
			signals: Signals{
				ModelProbability:        1.0,
				HasModelProbability:     true,
				CategoryInTaxonomy:      true,
				OutputWellFormed:        true,
				HistoricalAgreementRate: 1.0,
				HasAgreementRate:        true,
			},
			wantScore:    1.0,
			wantTier:     model.TierHigh,
			wantDecision: model.DecisionAccept,
		},
		{
			name: "medium tier gets disclaimer",
			signals: Signals{
				ModelProbability:    0.6,
				HasModelProbability: true,
				CategoryInTaxonomy:  true,
				OutputWellFormed:    true,
			},
			wantScore:    0.64,
			wantTier:     model.TierMedium,
			wantDecision: model.DecisionAcceptWithDisclaimer,
		},
		{
			name: "weak signals reject",
			signals: Signals{
				ModelProbability:    0.3,
				HasModelProbability: true,
				CategoryInTaxonomy:  true,
			},
			wantScore:    0.32,
			wantTier:     model.TierLow,
			wantDecision: model.DecisionReject,
		},
		{
			name:         "no signals at all",
			signals:      Signals{},
			wantScore:    0,
			wantTier:     model.TierLow,
			wantDecision: model.DecisionReject,
		},
	}

	scorer := NewScorer(DefaultConfig())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := scorer.Score(tt.signals)
			assert.InDelta(t, tt.wantScore, result.Score, 0.0001)
			assert.Equal(t, tt.wantTier, result.Tier)
			assert.Equal(t, tt.wantDecision, result.Decision)
			assert.GreaterOrEqual(t, result.Score, 0.0)
			assert.LessOrEqual(t, result.Score, 1.0)
		})
	}
}

func TestScorerMissingSignalsDerate(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	missing := scorer.Score(Signals{
		CategoryInTaxonomy: true,
		OutputWellFormed:   true,
	})

	// Missing model probability and agreement rate contribute zero and
	// leave a derating note behind.
	assert.InDelta(t, 0.4, missing.Score, 0.0001)

	var names []string
	for _, f := range missing.Factors {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "model_probability_missing")
	assert.Contains(t, names, "historical_agreement_rate_missing")
}

func TestScorerMonotonicInModelProbability(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	base := Signals{
		HasModelProbability:     true,
		CategoryInTaxonomy:      true,
		OutputWellFormed:        false,
		HistoricalAgreementRate: 0.5,
		HasAgreementRate:        true,
	}

	prev := -1.0
	for p := 0.0; p <= 1.0; p += 0.05 {
		signals := base
		signals.ModelProbability = p
		score := scorer.Score(signals).Score
		require.GreaterOrEqual(t, score, prev, "score must not decrease as model probability rises (p=%f)", p)
		prev = score
	}
}

func TestScorerClampsOutOfRangeInputs(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	result := scorer.Score(Signals{
		ModelProbability:        4.2,
		HasModelProbability:     true,
		CategoryInTaxonomy:      true,
		OutputWellFormed:        true,
		HistoricalAgreementRate: -3,
		HasAgreementRate:        true,
	})

	assert.LessOrEqual(t, result.Score, 1.0)
	assert.GreaterOrEqual(t, result.Score, 0.0)
}

func TestScorerCustomThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AcceptThreshold = 0.5
	cfg.DisclaimerThreshold = 0.3
	scorer := NewScorer(cfg)

	result := scorer.Score(Signals{
		ModelProbability:    0.8,
		HasModelProbability: true,
		CategoryInTaxonomy:  true,
	})

	// 0.32 + 0.2 = 0.52 clears the lowered accept threshold.
	assert.Equal(t, model.DecisionAccept, result.Decision)
	assert.Equal(t, model.TierHigh, result.Tier)
}
