package calculator

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"propfactor/internal/domain"

	"github.com/shopspring/decimal"
)

/**

adjustment policy:

every context factor resolves to one independent multiplicative weight
per stat category. the adjusted stat is baseline * product(weights),
clamped at 0. factors the caller didn't supply simply don't show up in
the product, which is the same as weighing in at 1.0. nothing in here
does I/O or keeps state between calls - same input, same output.

order of application doesn't change the product, but the breakdown list
is built in a fixed order (defense, injury, script, pass rush, coverage,
weather, rivalry, scenarios, direct weights, custom expression) so
responses are stable enough to diff.

*/

type AdjustPlayerInput struct {
	Projection domain.PlayerProjection
	Factors    domain.ContextFactors
	Weights    FactorWeights
}

type AdjustSlateInput struct {
	Projections []domain.PlayerProjection
	Factors     domain.ContextFactors
	Weights     FactorWeights
}

type AdjustSlateResult struct {
	Projections []*domain.AdjustedProjection
	Warnings    []string
}

// AdjustPlayer applies every applicable context factor to one baseline
// projection.
func AdjustPlayer(in AdjustPlayerInput) (*domain.AdjustedProjection, error) {
	if err := in.Projection.Validate(); err != nil {
		return nil, err
	}
	if err := validateFactors(in.Factors); err != nil {
		return nil, err
	}
	return adjustValidated(in)
}

// AdjustSlate adjusts a batch. Well-formed records come back in input
// order, one out per one in; malformed records are skipped with a
// warning instead of failing the whole batch.
func AdjustSlate(in AdjustSlateInput) (*AdjustSlateResult, error) {
	if err := validateFactors(in.Factors); err != nil {
		return nil, err
	}

	result := &AdjustSlateResult{
		Projections: []*domain.AdjustedProjection{},
		Warnings:    []string{},
	}
	for _, projection := range in.Projections {
		if err := projection.Validate(); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("skipping projection: %v", err))
			continue
		}
		adjusted, err := adjustValidated(AdjustPlayerInput{
			Projection: projection,
			Factors:    in.Factors,
			Weights:    in.Weights,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to adjust projection for %s: %w", projection.PlayerName, err)
		}
		result.Projections = append(result.Projections, adjusted)
	}

	return result, nil
}

func validateFactors(f domain.ContextFactors) error {
	for name, weight := range f.DirectWeights {
		if math.IsNaN(weight) || math.IsInf(weight, 0) {
			return fmt.Errorf("direct weight %s is not finite", name)
		}
	}
	return nil
}

func adjustValidated(in AdjustPlayerInput) (*domain.AdjustedProjection, error) {
	p := in.Projection.DeepCopy()

	adjusted := &domain.AdjustedProjection{
		PlayerName:  p.PlayerName,
		Team:        p.Team,
		Position:    p.Position,
		Baseline:    map[domain.Stat]float64{},
		Stats:       map[domain.Stat]float64{},
		Multipliers: map[domain.Stat]float64{},
		Breakdown:   map[domain.Stat][]domain.FactorApplication{},
	}

	for stat, baseline := range p.Stats {
		applications, err := statFactors(stat, p, in.Factors, in.Weights)
		if err != nil {
			return nil, err
		}

		product := 1.0
		for _, application := range applications {
			product *= application.Weight
		}

		value := baseline * product
		if value < 0 {
			value = 0
		}

		adjusted.Baseline[stat] = baseline
		adjusted.Stats[stat] = value
		adjusted.Multipliers[stat] = product
		if len(applications) > 0 {
			adjusted.Breakdown[stat] = applications
		}
	}

	adjusted.Floors = conservativeFloors(p.Position, adjusted.Stats)

	if p.HitProbability > 0 {
		adjusted.HitProbability = adjustHitProbability(p.HitProbability, primaryMultiplier(adjusted))
	}

	if len(p.PropLines) > 0 {
		adjusted.Edges = map[domain.Stat]decimal.Decimal{}
		for stat, line := range p.PropLines {
			adjusted.Edges[stat] = decimal.NewFromFloat(adjusted.Stats[stat]).Sub(line).Round(2)
		}
	}

	return adjusted, nil
}

// statFactors resolves the weights that apply to one stat, in a fixed
// order. Unknown factor values (an injury designation we've never heard
// of, a rank past the table) contribute nothing rather than erroring.
// Scenario dampening only engages when the caller identifies role
// holders, or supplies a pass rush grade for the QB case - otherwise an
// empty bundle must leave every stat untouched.
func statFactors(stat domain.Stat, p domain.PlayerProjection, f domain.ContextFactors, w FactorWeights) ([]domain.FactorApplication, error) {
	category := stat.Category()
	isPassStat := category == domain.CategoryPassing || category == domain.CategoryReceiving

	applications := []domain.FactorApplication{}

	// table-driven factors respect per-position overrides
	add := func(factor string, weight float64) {
		if override := w.overrideFor(p.Position, factor); override != nil {
			weight = *override
		}
		applications = append(applications, domain.FactorApplication{Factor: factor, Weight: weight})
	}

	if f.OpponentPassDefenseRank != nil && isPassStat {
		add(FactorOpponentPassDefense, w.defenseWeight(*f.OpponentPassDefenseRank))
	}
	if f.OpponentRunDefenseRank != nil && category == domain.CategoryRushing {
		add(FactorOpponentRunDefense, w.defenseWeight(*f.OpponentRunDefenseRank))
	}

	if status, ok := f.Injuries[p.PlayerName]; ok {
		if weight, ok := w.Injury[domain.InjuryStatus(normalized(string(status)))]; ok {
			add(FactorInjury, weight)
		}
	}

	if f.GameScript != nil && category != domain.CategoryGeneral {
		if categoryWeights, ok := w.GameScript[domain.GameScript(normalized(string(*f.GameScript)))]; ok {
			add(FactorGameScript, categoryWeights.For(category))
		}
	}

	if f.PassRush != nil && category == domain.CategoryPassing {
		if weight, ok := w.PassRush[domain.PassRushGrade(normalized(string(*f.PassRush)))]; ok {
			add(FactorPassRush, weight)
		}
	}

	if f.Coverage != nil && category == domain.CategoryReceiving && p.Position == domain.PositionWR {
		if weight, ok := w.Coverage[domain.CoverageGrade(normalized(string(*f.Coverage)))]; ok {
			add(FactorCoverage, weight)
		}
	}

	if f.Weather != nil {
		if isPassStat {
			if f.Weather.WindMPH >= w.WindThresholdMPH {
				add(FactorWeatherWind, w.WindPassWeight)
			}
			if f.Weather.Precipitation {
				add(FactorWeatherPrecip, w.PrecipPassWeight)
			}
		}
		if category == domain.CategoryRushing && (f.Weather.WindMPH >= w.WindThresholdMPH || f.Weather.Precipitation) {
			add(FactorWeatherRushBump, w.BadWeatherRushWeight)
		}
	}

	if f.Rivalry {
		add(FactorRivalry, w.RivalryWeight)
	}

	probabilities := ScenarioProbabilities(f)
	if f.WR1 != "" && strings.EqualFold(p.PlayerName, f.WR1) && category == domain.CategoryReceiving {
		applications = append(applications, domain.FactorApplication{
			Factor: FactorScenarioWR1Bracket,
			Weight: 1 - scenarioDampening*probabilities[ScenarioWR1Bracket],
		})
	}
	if f.RB1 != "" && strings.EqualFold(p.PlayerName, f.RB1) && category == domain.CategoryRushing {
		applications = append(applications, domain.FactorApplication{
			Factor: FactorScenarioRBErased,
			Weight: 1 - scenarioDampening*probabilities[ScenarioRBErased],
		})
	}
	if f.PassRush != nil && p.Position == domain.PositionQB && category == domain.CategoryPassing {
		applications = append(applications, domain.FactorApplication{
			Factor: FactorScenarioOLCollapse,
			Weight: 1 - scenarioDampening*probabilities[ScenarioOLCollapse],
		})
	}

	if len(f.DirectWeights) > 0 {
		names := make([]string, 0, len(f.DirectWeights))
		for name := range f.DirectWeights {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			applications = append(applications, domain.FactorApplication{
				Factor: name,
				Weight: f.DirectWeights[name],
			})
		}
	}

	if f.CustomExpression != "" {
		product := 1.0
		for _, application := range applications {
			product *= application.Weight
		}
		weight, err := EvaluateCustomExpression(f.CustomExpression, p, stat, product)
		if err != nil {
			return nil, err
		}
		applications = append(applications, domain.FactorApplication{
			Factor: FactorCustomExpression,
			Weight: weight,
		})
	}

	return applications, nil
}

const (
	ScenarioNormal     = "normal"
	ScenarioWR1Bracket = "wr1_bracket"
	ScenarioRBErased   = "rb_erased"
	ScenarioOLCollapse = "ol_collapse"
)

// scenarioDampening scales how hard a scenario's probability cuts into
// the affected stat.
const scenarioDampening = 0.15

// ScenarioProbabilities estimates the chance of the game flipping into
// each disruptive scenario, keyed off whichever matchup signals are
// present. Heuristics, not a model.
func ScenarioProbabilities(f domain.ContextFactors) map[string]float64 {
	probabilities := map[string]float64{
		ScenarioNormal:     0.5,
		ScenarioWR1Bracket: 0.1,
		ScenarioRBErased:   0.1,
		ScenarioOLCollapse: 0.05,
	}
	if f.Coverage != nil && domain.CoverageGrade(normalized(string(*f.Coverage))) == domain.CoverageShadow {
		probabilities[ScenarioWR1Bracket] = 0.2
	}
	if f.OpponentRunDefenseRank != nil && *f.OpponentRunDefenseRank >= 1 && *f.OpponentRunDefenseRank <= 5 {
		probabilities[ScenarioRBErased] = 0.2
	}
	if f.PassRush != nil && domain.PassRushGrade(normalized(string(*f.PassRush))) == domain.PassRushStrong {
		probabilities[ScenarioOLCollapse] = 0.1
	}
	return probabilities
}

// conservativeFloors computes the conservative floor line for a
// position: yardage floors at 85% of the adjusted mean, QB touchdown
// floors shave off 0.4 scores.
func conservativeFloors(position domain.Position, stats map[domain.Stat]float64) map[domain.Stat]float64 {
	floors := map[domain.Stat]float64{}
	switch position {
	case domain.PositionQB:
		floors[domain.StatPassingYards] = stats[domain.StatPassingYards] * 0.85
		floors[domain.StatPassingTDs] = math.Max(0, stats[domain.StatPassingTDs]-0.4)
	case domain.PositionWR, domain.PositionTE:
		floors[domain.StatReceivingYards] = stats[domain.StatReceivingYards] * 0.85
		floors[domain.StatReceptions] = stats[domain.StatReceptions] * 0.85
	case domain.PositionRB:
		floors[domain.StatRushingYards] = stats[domain.StatRushingYards] * 0.85
		floors[domain.StatReceivingYards] = stats[domain.StatReceivingYards] * 0.85
		floors[domain.StatTotalYards] = (stats[domain.StatRushingYards] + stats[domain.StatReceivingYards]) * 0.85
	default:
		return nil
	}
	return floors
}

func primaryStat(position domain.Position) domain.Stat {
	switch position {
	case domain.PositionQB:
		return domain.StatPassingYards
	case domain.PositionRB:
		return domain.StatRushingYards
	case domain.PositionWR, domain.PositionTE:
		return domain.StatReceivingYards
	}
	return ""
}

func primaryMultiplier(adjusted *domain.AdjustedProjection) float64 {
	if stat := primaryStat(adjusted.Position); stat != "" {
		if multiplier, ok := adjusted.Multipliers[stat]; ok {
			return multiplier
		}
	}
	return 1
}

// adjustHitProbability nudges the baseline prop hit probability in the
// direction of the primary stat's total multiplier at half strength.
func adjustHitProbability(base, multiplier float64) float64 {
	hit := base + 0.5*(multiplier-1)
	return math.Min(0.95, math.Max(0.05, hit))
}

func normalized(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
