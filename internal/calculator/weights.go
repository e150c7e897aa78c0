package calculator

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"propfactor/internal/domain"
)

// factor names used in adjustment breakdowns. direct weights keep
// whatever name the caller gave them.
const (
	FactorOpponentPassDefense = "opponent_pass_defense"
	FactorOpponentRunDefense  = "opponent_run_defense"
	FactorInjury              = "injury"
	FactorGameScript          = "game_script"
	FactorPassRush            = "pass_rush"
	FactorCoverage            = "coverage"
	FactorWeatherWind         = "weather_wind"
	FactorWeatherPrecip       = "weather_precip"
	FactorWeatherRushBump     = "weather_rush_bump"
	FactorRivalry             = "rivalry"
	FactorScenarioWR1Bracket  = "scenario_wr1_bracket"
	FactorScenarioRBErased    = "scenario_rb_erased"
	FactorScenarioOLCollapse  = "scenario_ol_collapse"
	FactorCustomExpression    = "custom_expression"
)

// MaxTableWeight bounds every configured multiplier. Custom expression
// results are clamped into [0, MaxTableWeight] too.
const MaxTableWeight = 1.5

type CategoryWeights struct {
	Passing   float64 `json:"passing"`
	Rushing   float64 `json:"rushing"`
	Receiving float64 `json:"receiving"`
}

func (c CategoryWeights) For(category domain.StatCategory) float64 {
	switch category {
	case domain.CategoryPassing:
		return c.Passing
	case domain.CategoryRushing:
		return c.Rushing
	case domain.CategoryReceiving:
		return c.Receiving
	}
	return 1
}

// DefenseRankBucket maps a range of opponent defense ranks onto one
// weight. Buckets are checked in order; the first bucket whose MaxRank
// covers the rank wins.
type DefenseRankBucket struct {
	MaxRank int     `json:"maxRank"`
	Weight  float64 `json:"weight"`
}

// FactorWeights is the full enumerated mapping from context factor value
// to multiplier weight. Loaded once at startup and treated as immutable;
// requests may carry their own copy to override it.
type FactorWeights struct {
	DefenseRankBuckets []DefenseRankBucket `json:"defenseRankBuckets"`

	Injury     map[domain.InjuryStatus]float64       `json:"injury"`
	GameScript map[domain.GameScript]CategoryWeights `json:"gameScript"`
	PassRush   map[domain.PassRushGrade]float64      `json:"passRush"`
	Coverage   map[domain.CoverageGrade]float64      `json:"coverage"`

	WindThresholdMPH     float64 `json:"windThresholdMph"`
	WindPassWeight       float64 `json:"windPassWeight"`
	PrecipPassWeight     float64 `json:"precipPassWeight"`
	BadWeatherRushWeight float64 `json:"badWeatherRushWeight"`

	RivalryWeight float64 `json:"rivalryWeight"`

	// flat replacement weights per position, keyed by factor name. only
	// consulted for table-driven factors, not direct weights or custom
	// expressions.
	PositionOverrides map[domain.Position]map[string]float64 `json:"positionOverrides,omitempty"`
}

func DefaultFactorWeights() FactorWeights {
	return FactorWeights{
		DefenseRankBuckets: []DefenseRankBucket{
			{MaxRank: 5, Weight: 0.88},
			{MaxRank: 12, Weight: 0.94},
			{MaxRank: 20, Weight: 1.0},
			{MaxRank: 27, Weight: 1.06},
			{MaxRank: 32, Weight: 1.12},
		},
		Injury: map[domain.InjuryStatus]float64{
			domain.InjuryHealthy:      1.0,
			domain.InjuryProbable:     0.98,
			domain.InjuryQuestionable: 0.85,
			domain.InjuryDoubtful:     0.55,
			domain.InjuryOut:          0,
		},
		GameScript: map[domain.GameScript]CategoryWeights{
			domain.ScriptPassHeavy: {Passing: 1.08, Rushing: 0.92, Receiving: 1.08},
			domain.ScriptNeutral:   {Passing: 1, Rushing: 1, Receiving: 1},
			domain.ScriptRunHeavy:  {Passing: 0.94, Rushing: 1.1, Receiving: 0.94},
		},
		PassRush: map[domain.PassRushGrade]float64{
			domain.PassRushStrong:  0.95,
			domain.PassRushNeutral: 1,
			domain.PassRushWeak:    1.04,
		},
		Coverage: map[domain.CoverageGrade]float64{
			domain.CoverageShadow:  0.88,
			domain.CoverageNeutral: 1,
			domain.CoverageSoft:    1.06,
		},
		WindThresholdMPH:     15,
		WindPassWeight:       0.93,
		PrecipPassWeight:     0.95,
		BadWeatherRushWeight: 1.03,
		RivalryWeight:        0.96,
	}
}

// LoadFactorWeights reads a weights file on top of the defaults, so a
// config only has to name the values it wants to change. An empty path
// returns the defaults untouched.
func LoadFactorWeights(path string) (FactorWeights, error) {
	weights := DefaultFactorWeights()
	if path == "" {
		return weights, nil
	}

	f, err := os.ReadFile(path)
	if err != nil {
		return weights, fmt.Errorf("could not open weights file %s: %w", path, err)
	}
	if err = json.Unmarshal(f, &weights); err != nil {
		return weights, fmt.Errorf("failed to parse weights file %s: %w", path, err)
	}
	if err = weights.Validate(); err != nil {
		return weights, fmt.Errorf("invalid weights file %s: %w", path, err)
	}

	return weights, nil
}

func (w FactorWeights) Validate() error {
	check := func(name string, value float64) error {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("%s weight is not finite", name)
		}
		if value < 0 || value > MaxTableWeight {
			return fmt.Errorf("%s weight %f outside [0, %g]", name, value, MaxTableWeight)
		}
		return nil
	}

	lastRank := 0
	for _, bucket := range w.DefenseRankBuckets {
		if bucket.MaxRank <= lastRank {
			return fmt.Errorf("defense rank buckets must be sorted ascending, got maxRank %d after %d", bucket.MaxRank, lastRank)
		}
		lastRank = bucket.MaxRank
		if err := check("defense rank bucket", bucket.Weight); err != nil {
			return err
		}
	}
	for status, weight := range w.Injury {
		if err := check(fmt.Sprintf("injury %s", status), weight); err != nil {
			return err
		}
	}
	for script, cw := range w.GameScript {
		for _, weight := range []float64{cw.Passing, cw.Rushing, cw.Receiving} {
			if err := check(fmt.Sprintf("game script %s", script), weight); err != nil {
				return err
			}
		}
	}
	for grade, weight := range w.PassRush {
		if err := check(fmt.Sprintf("pass rush %s", grade), weight); err != nil {
			return err
		}
	}
	for grade, weight := range w.Coverage {
		if err := check(fmt.Sprintf("coverage %s", grade), weight); err != nil {
			return err
		}
	}
	for _, pair := range []struct {
		name  string
		value float64
	}{
		{"wind pass", w.WindPassWeight},
		{"precip pass", w.PrecipPassWeight},
		{"bad weather rush", w.BadWeatherRushWeight},
		{"rivalry", w.RivalryWeight},
	} {
		if err := check(pair.name, pair.value); err != nil {
			return err
		}
	}
	for position, overrides := range w.PositionOverrides {
		for factor, weight := range overrides {
			if err := check(fmt.Sprintf("%s override for %s", factor, position), weight); err != nil {
				return err
			}
		}
	}
	return nil
}

// defenseWeight buckets a 1-32 defense rank. Ranks outside the table are
// neutral rather than an error.
func (w FactorWeights) defenseWeight(rank int) float64 {
	if rank < 1 {
		return 1
	}
	for _, bucket := range w.DefenseRankBuckets {
		if rank <= bucket.MaxRank {
			return bucket.Weight
		}
	}
	return 1
}

func (w FactorWeights) overrideFor(position domain.Position, factor string) *float64 {
	overrides, ok := w.PositionOverrides[position]
	if !ok {
		return nil
	}
	value, ok := overrides[factor]
	if !ok {
		return nil
	}
	return &value
}
