package calculator

import (
	"fmt"

	"propfactor/internal/domain"

	"github.com/montanaflynn/stats"
)

type SlateMetricsResult struct {
	MeanScoringYards  float64 `json:"meanScoringYards"`
	StdevScoringYards float64 `json:"stdevScoringYards"`
}

// ApplySlateMetrics scores each adjusted projection against the rest of
// the slate, filling in ZScore on every record. Scoring yards weigh
// passing yardage at quarter credit so passers and runners land on one
// scale.
func ApplySlateMetrics(projections []*domain.AdjustedProjection) (*SlateMetricsResult, error) {
	if len(projections) < 2 {
		return nil, fmt.Errorf("cannot compute slate metrics on < 2 projections")
	}

	scoringYards := make([]float64, len(projections))
	for i, projection := range projections {
		scoringYards[i] = scoringYardsFor(projection)
	}

	mean, err := stats.Mean(scoringYards)
	if err != nil {
		return nil, err
	}
	stdev, err := stats.StandardDeviationSample(scoringYards)
	if err != nil {
		return nil, err
	}

	for i, projection := range projections {
		z := 0.0
		if stdev > 0 {
			z = (scoringYards[i] - mean) / stdev
		}
		projection.ZScore = &z
	}

	return &SlateMetricsResult{
		MeanScoringYards:  mean,
		StdevScoringYards: stdev,
	}, nil
}

func scoringYardsFor(p *domain.AdjustedProjection) float64 {
	return p.Stats[domain.StatPassingYards]*0.25 +
		p.Stats[domain.StatRushingYards] +
		p.Stats[domain.StatReceivingYards]
}
