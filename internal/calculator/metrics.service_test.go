package calculator

import (
	"math"
	"testing"

	"propfactor/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestApplySlateMetrics(t *testing.T) {
	t.Run("z-scores land on one scale across positions", func(t *testing.T) {
		projections := []*domain.AdjustedProjection{
			{
				PlayerName: "Dak Prescott",
				Position:   domain.PositionQB,
				Stats:      map[domain.Stat]float64{domain.StatPassingYards: 300},
			},
			{
				PlayerName: "Javonte Williams",
				Position:   domain.PositionRB,
				Stats:      map[domain.Stat]float64{domain.StatRushingYards: 100},
			},
			{
				PlayerName: "CeeDee Lamb",
				Position:   domain.PositionWR,
				Stats:      map[domain.Stat]float64{domain.StatReceivingYards: 80},
			},
		}

		result, err := ApplySlateMetrics(projections)
		require.NoError(t, err)

		// scoring yards are 75, 100, 80
		require.Equal(t, "", cmp.Diff(85.0, result.MeanScoringYards, floatCompare))
		require.Equal(t, "", cmp.Diff(math.Sqrt(175), result.StdevScoringYards, floatCompare))

		zScores := []float64{}
		for _, projection := range projections {
			require.NotNil(t, projection.ZScore)
			zScores = append(zScores, *projection.ZScore)
		}
		stdev := math.Sqrt(175)
		require.Equal(t, "", cmp.Diff(
			[]float64{-10 / stdev, 15 / stdev, -5 / stdev},
			zScores,
			floatCompare,
		))
	})

	t.Run("flat slate gets zero z-scores", func(t *testing.T) {
		projections := []*domain.AdjustedProjection{
			{
				PlayerName: "Jake Ferguson",
				Position:   domain.PositionTE,
				Stats:      map[domain.Stat]float64{domain.StatReceivingYards: 50},
			},
			{
				PlayerName: "Jameson Williams",
				Position:   domain.PositionWR,
				Stats:      map[domain.Stat]float64{domain.StatReceivingYards: 50},
			},
		}

		_, err := ApplySlateMetrics(projections)
		require.NoError(t, err)

		for _, projection := range projections {
			require.NotNil(t, projection.ZScore)
			require.Equal(t, float64(0), *projection.ZScore)
		}
	})

	t.Run("too few projections", func(t *testing.T) {
		_, err := ApplySlateMetrics([]*domain.AdjustedProjection{
			{PlayerName: "Dak Prescott"},
		})
		require.Error(t, err)
		require.Equal(t, "cannot compute slate metrics on < 2 projections", err.Error())
	})
}
