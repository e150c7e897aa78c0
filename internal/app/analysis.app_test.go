package app

import (
	"context"
	"math"
	"testing"

	"propfactor/internal/calculator"
	"propfactor/internal/domain"
	"propfactor/internal/repository"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var floatCompare = cmp.Comparer(func(i, j float64) bool {
	return math.Abs(i-j) < 0.0001
})

var decimalCompare = cmp.Comparer(func(d1, d2 decimal.Decimal) bool {
	return d1.Sub(d2).Abs().LessThan(decimal.NewFromFloat(0.00001))
})

func newDemoHandler() GameAnalysisHandler {
	return GameAnalysisHandler{
		ProjectionsRepository: repository.NewDemoProjectionsRepository(),
		Weights:               calculator.DefaultFactorWeights(),
	}
}

func demoGameInput() AnalyzeGameInput {
	return AnalyzeGameInput{
		Season:   2025,
		Week:     13,
		HomeTeam: "Cowboys",
		AwayTeam: "Lions",
	}
}

func TestAnalyzeGame(t *testing.T) {
	t.Run("neutral factors keep the demo baselines", func(t *testing.T) {
		handler := newDemoHandler()

		result, err := handler.AnalyzeGame(context.Background(), demoGameInput())
		require.NoError(t, err)

		require.NotEqual(t, uuid.Nil, result.RunID)
		require.Equal(t, domain.GameInfo{
			Season:   2025,
			Week:     13,
			HomeTeam: "Cowboys",
			AwayTeam: "Lions",
		}, result.Game)
		require.Empty(t, result.Warnings)

		names := []string{}
		for _, projection := range result.Projections {
			names = append(names, projection.PlayerName)
		}
		require.Equal(t, []string{
			"Dak Prescott",
			"Javonte Williams",
			"CeeDee Lamb",
			"George Pickens",
			"Jake Ferguson",
			"Jared Goff",
			"Jahmyr Gibbs",
			"David Montgomery",
			"Jameson Williams",
		}, names)

		dak := result.Projections[0]
		require.Equal(t, "", cmp.Diff(dak.Baseline, dak.Stats, floatCompare))
		require.Equal(t, 0.6, dak.HitProbability)
		require.NotNil(t, dak.ZScore)
	})

	t.Run("usage shares and estimates ride along", func(t *testing.T) {
		handler := newDemoHandler()

		result, err := handler.AnalyzeGame(context.Background(), demoGameInput())
		require.NoError(t, err)

		// CeeDee draws 10 of the 26 demo Cowboys targets
		ceedee := result.Projections[2]
		require.NotNil(t, ceedee.Usage)
		require.Equal(t, "", cmp.Diff(10.0/26.0, ceedee.Usage.TargetShare, floatCompare))
		require.NotNil(t, ceedee.EstimatedReceptions)
		require.Equal(t, "", cmp.Diff(10.0, *ceedee.EstimatedReceptions, floatCompare))
		require.NotNil(t, ceedee.EstimatedTDs)
		require.Equal(t, "", cmp.Diff(0.3*(1+2.0/6.0), ceedee.EstimatedTDs.Mean, floatCompare))

		// quarterbacks keep shares but skip the skill player estimates
		dak := result.Projections[0]
		require.NotNil(t, dak.Usage)
		require.Nil(t, dak.EstimatedReceptions)
		require.Nil(t, dak.EstimatedTDs)
	})

	t.Run("slate metrics cover both teams", func(t *testing.T) {
		handler := newDemoHandler()

		result, err := handler.AnalyzeGame(context.Background(), demoGameInput())
		require.NoError(t, err)

		require.NotNil(t, result.Metrics)
		expectedMean := (91.25 + 103.0 + 103.0 + 95.0 + 47.0 + 74.5 + 110.0 + 58.0 + 62.0) / 9.0
		require.Equal(t, "", cmp.Diff(expectedMean, result.Metrics.MeanScoringYards, floatCompare))
	})

	t.Run("starters pin scenario roles from the depth chart", func(t *testing.T) {
		handler := newDemoHandler()

		input := demoGameInput()
		input.Starters = &domain.StarterConfig{}

		result, err := handler.AnalyzeGame(context.Background(), input)
		require.NoError(t, err)

		// the depth chart fills WR1 and RB1, so CeeDee and Javonte pick
		// up the bracket and erased scenario dampening
		ceedee := result.Projections[2]
		require.Equal(t, "", cmp.Diff(98*(1-0.15*0.1), ceedee.Stats[domain.StatReceivingYards], floatCompare))

		javonte := result.Projections[1]
		require.Equal(t, "", cmp.Diff(85*(1-0.15*0.1), javonte.Stats[domain.StatRushingYards], floatCompare))

		pickens := result.Projections[3]
		require.Equal(t, "", cmp.Diff(95.0, pickens.Stats[domain.StatReceivingYards], floatCompare))
	})

	t.Run("unknown matchup fails", func(t *testing.T) {
		handler := newDemoHandler()

		input := demoGameInput()
		input.AwayTeam = "Bears"

		_, err := handler.AnalyzeGame(context.Background(), input)
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to load projections")
	})

	t.Run("a team cannot play itself", func(t *testing.T) {
		handler := newDemoHandler()

		input := demoGameInput()
		input.AwayTeam = "DAL"

		_, err := handler.AnalyzeGame(context.Background(), input)
		require.EqualError(t, err, "Cowboys cannot play itself")
	})

	t.Run("invalid weight overrides fail fast", func(t *testing.T) {
		handler := newDemoHandler()

		overrides := calculator.DefaultFactorWeights()
		overrides.RivalryWeight = 9

		input := demoGameInput()
		input.WeightOverrides = &overrides

		_, err := handler.AnalyzeGame(context.Background(), input)
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid weight overrides")
	})
}

func TestAdjustProjections(t *testing.T) {
	handler := newDemoHandler()

	input := AdjustProjectionsInput{
		Projections: []domain.PlayerProjection{
			{
				PlayerName: "Dak Prescott",
				Team:       "Cowboys",
				Position:   domain.PositionQB,
				Stats: map[domain.Stat]float64{
					domain.StatPassingYards: 100,
				},
				HitProbability: 0.6,
			},
		},
		Factors: domain.ContextFactors{
			DirectWeights: map[string]float64{
				"defense_rank_weight": 1.2,
				"injury_weight":       0.8,
			},
		},
	}

	t.Run("runs the calculator over caller baselines", func(t *testing.T) {
		result, err := handler.AdjustProjections(context.Background(), input)
		require.NoError(t, err)

		require.Len(t, result.Projections, 1)
		require.Equal(t, "", cmp.Diff(96.0, result.Projections[0].Stats[domain.StatPassingYards], floatCompare))
		require.Nil(t, result.Metrics)
		require.Empty(t, result.Warnings)
	})

	t.Run("identical input produces identical output", func(t *testing.T) {
		first, err := handler.AdjustProjections(context.Background(), input)
		require.NoError(t, err)

		second, err := handler.AdjustProjections(context.Background(), input)
		require.NoError(t, err)

		require.Equal(t, "", cmp.Diff(first, second, floatCompare, decimalCompare))
	})

	t.Run("malformed baselines downgrade to warnings", func(t *testing.T) {
		result, err := handler.AdjustProjections(context.Background(), AdjustProjectionsInput{
			Projections: []domain.PlayerProjection{
				{Team: "Cowboys", Position: domain.PositionQB},
			},
		})
		require.NoError(t, err)

		require.Empty(t, result.Projections)
		require.Len(t, result.Warnings, 1)
	})
}
