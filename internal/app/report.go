package app

import (
	"fmt"
	"sort"
	"strings"

	"propfactor/internal/domain"

	"github.com/gocarina/gocsv"
)

// ProjectionCSVRow is one stat line of the export, flattened the way
// spreadsheet users expect. Floats are rendered with two decimals.
type ProjectionCSVRow struct {
	Player         string `csv:"player"`
	Team           string `csv:"team"`
	Position       string `csv:"position"`
	Stat           string `csv:"stat"`
	Baseline       string `csv:"baseline"`
	Adjusted       string `csv:"adjusted"`
	Floor          string `csv:"floor"`
	Multiplier     string `csv:"multiplier"`
	HitProbability string `csv:"hitProbability"`
	ZScore         string `csv:"zScore"`
	Factors        string `csv:"factors"`
}

// BuildProjectionCSV renders an adjusted slate as a CSV document, one
// row per player stat, in slate order.
func BuildProjectionCSV(projections []*domain.AdjustedProjection) ([]byte, error) {
	rows := buildProjectionRows(projections)
	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal projection csv: %w", err)
	}
	return out, nil
}

// CSVFileName builds a download-friendly name for a game export, for
// example 2025-13_Lions_at_Cowboys_projections.csv.
func CSVFileName(game domain.GameInfo) string {
	sanitize := func(team string) string {
		return strings.ReplaceAll(team, " ", "-")
	}
	return fmt.Sprintf(
		"%d-%d_%s_at_%s_projections.csv",
		game.Season,
		game.Week,
		sanitize(game.AwayTeam),
		sanitize(game.HomeTeam),
	)
}

func buildProjectionRows(projections []*domain.AdjustedProjection) []ProjectionCSVRow {
	rows := []ProjectionCSVRow{}
	for _, projection := range projections {
		stats := make([]domain.Stat, 0, len(projection.Stats))
		for stat := range projection.Stats {
			stats = append(stats, stat)
		}
		sort.Slice(stats, func(i, j int) bool {
			return stats[i] < stats[j]
		})

		for _, stat := range stats {
			row := ProjectionCSVRow{
				Player:         projection.PlayerName,
				Team:           projection.Team,
				Position:       string(projection.Position),
				Stat:           string(stat),
				Baseline:       formatCSVFloat(projection.Baseline[stat]),
				Adjusted:       formatCSVFloat(projection.Stats[stat]),
				Multiplier:     formatCSVFloat(projection.Multipliers[stat]),
				HitProbability: formatCSVFloat(projection.HitProbability),
				Factors:        formatFactorTrail(projection.Breakdown[stat]),
			}
			if floor, ok := projection.Floors[stat]; ok {
				row.Floor = formatCSVFloat(floor)
			}
			if projection.ZScore != nil {
				row.ZScore = formatCSVFloat(*projection.ZScore)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func formatCSVFloat(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// formatFactorTrail flattens a breakdown into "factor=weight" pairs so
// the whole trail fits one CSV cell.
func formatFactorTrail(applications []domain.FactorApplication) string {
	if len(applications) == 0 {
		return ""
	}
	parts := make([]string, 0, len(applications))
	for _, application := range applications {
		parts = append(parts, fmt.Sprintf("%s=%.3f", application.Factor, application.Weight))
	}
	return strings.Join(parts, "; ")
}
