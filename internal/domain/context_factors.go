package domain

type InjuryStatus string

const (
	InjuryHealthy      InjuryStatus = "healthy"
	InjuryProbable     InjuryStatus = "probable"
	InjuryQuestionable InjuryStatus = "questionable"
	InjuryDoubtful     InjuryStatus = "doubtful"
	InjuryOut          InjuryStatus = "out"
)

type GameScript string

const (
	ScriptPassHeavy GameScript = "pass_heavy"
	ScriptNeutral   GameScript = "neutral"
	ScriptRunHeavy  GameScript = "run_heavy"
)

// PassRushGrade rates the opponent's pass rush from the offense's
// point of view. "strong" means the QB is expected to be under pressure.
type PassRushGrade string

const (
	PassRushStrong  PassRushGrade = "strong"
	PassRushNeutral PassRushGrade = "neutral"
	PassRushWeak    PassRushGrade = "weak"
)

// CoverageGrade rates the opponent secondary. "shadow" means an elite CB
// travels with the top receiver.
type CoverageGrade string

const (
	CoverageShadow  CoverageGrade = "shadow"
	CoverageNeutral CoverageGrade = "neutral"
	CoverageSoft    CoverageGrade = "soft"
)

// NewsTrend values use the provider's arrow convention.
type NewsTrend string

const (
	NewsTrendUp   NewsTrend = "arrow_up"
	NewsTrendDown NewsTrend = "arrow_down"
)

type WeatherConditions struct {
	WindMPH       float64 `json:"windMph"`
	Precipitation bool    `json:"precipitation"`
	TemperatureF  float64 `json:"temperatureF,omitempty"`
}

// ContextFactors is everything situational about one analysis run. Every
// field is optional; whatever is missing contributes no adjustment. The
// bundle is scoped to a single request and never stored.
type ContextFactors struct {
	// 1 = best defense in the league, 32 = worst
	OpponentPassDefenseRank *int `json:"opponentPassDefenseRank,omitempty"`
	OpponentRunDefenseRank  *int `json:"opponentRunDefenseRank,omitempty"`

	// keyed by player name
	Injuries   map[string]InjuryStatus `json:"injuries,omitempty"`
	NewsTrends map[string]NewsTrend    `json:"newsTrends,omitempty"`

	GameScript *GameScript    `json:"gameScript,omitempty"`
	PassRush   *PassRushGrade `json:"passRush,omitempty"`
	Coverage   *CoverageGrade `json:"coverage,omitempty"`

	Weather *WeatherConditions `json:"weather,omitempty"`
	Rivalry bool               `json:"rivalry,omitempty"`

	// role holders for scenario dampening; usually filled in from the
	// validated starter config
	WR1 string `json:"wr1,omitempty"`
	RB1 string `json:"rb1,omitempty"`

	// escape hatch: named weights applied as-is to every stat. this is
	// how one-off factors get in without a table entry.
	DirectWeights map[string]float64 `json:"weights,omitempty"`

	// goval expression evaluated per stat; its result is one more
	// multiplier. see calculator.EvaluateCustomExpression for the
	// available variables.
	CustomExpression string `json:"customExpression,omitempty"`
}

// DeepCopy exists so callers can fan one bundle out per team without
// sharing the maps.
func (c ContextFactors) DeepCopy() ContextFactors {
	out := c
	if c.Injuries != nil {
		out.Injuries = make(map[string]InjuryStatus, len(c.Injuries))
		for k, v := range c.Injuries {
			out.Injuries[k] = v
		}
	}
	if c.NewsTrends != nil {
		out.NewsTrends = make(map[string]NewsTrend, len(c.NewsTrends))
		for k, v := range c.NewsTrends {
			out.NewsTrends[k] = v
		}
	}
	if c.DirectWeights != nil {
		out.DirectWeights = make(map[string]float64, len(c.DirectWeights))
		for k, v := range c.DirectWeights {
			out.DirectWeights[k] = v
		}
	}
	if c.Weather != nil {
		w := *c.Weather
		out.Weather = &w
	}
	return out
}
