package calculator

import (
	"fmt"
	"math"

	"propfactor/internal/domain"

	"github.com/maja42/goval"
)

func constructFunctionMap() map[string]goval.ExpressionFunction {
	toFloat := func(v interface{}) (float64, error) {
		switch n := v.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		}
		return 0, fmt.Errorf("expected a number, got %T", v)
	}

	return map[string]goval.ExpressionFunction{
		"min": func(args ...interface{}) (interface{}, error) {
			if len(args) < 2 {
				return 0, fmt.Errorf("min needs 2 args, got %d", len(args))
			}
			a, err := toFloat(args[0])
			if err != nil {
				return 0, err
			}
			b, err := toFloat(args[1])
			if err != nil {
				return 0, err
			}
			return math.Min(a, b), nil
		},
		"max": func(args ...interface{}) (interface{}, error) {
			if len(args) < 2 {
				return 0, fmt.Errorf("max needs 2 args, got %d", len(args))
			}
			a, err := toFloat(args[0])
			if err != nil {
				return 0, err
			}
			b, err := toFloat(args[1])
			if err != nil {
				return 0, err
			}
			return math.Max(a, b), nil
		},
		"round": func(args ...interface{}) (interface{}, error) {
			if len(args) < 1 {
				return 0, fmt.Errorf("round needs 1 arg, got %d", len(args))
			}
			a, err := toFloat(args[0])
			if err != nil {
				return 0, err
			}
			return math.Round(a), nil
		},
	}
}

// EvaluateCustomExpression runs a caller-supplied expression and returns
// its value as one more multiplier weight. The expression sees:
//
//	player     - player name
//	team       - canonical team name
//	position   - "QB", "RB", "WR" or "TE"
//	stat       - the stat being adjusted, e.g. "rushing_yards"
//	baseline   - that stat's baseline value
//	multiplier - product of the weights applied before this one
//
// so callers can write things like
//
//	min(1.2, multiplier + 0.05)
//
// The result is clamped into [0, MaxTableWeight].
func EvaluateCustomExpression(expression string, p domain.PlayerProjection, stat domain.Stat, multiplier float64) (float64, error) {
	eval := goval.NewEvaluator()
	variables := map[string]interface{}{
		"player":     p.PlayerName,
		"team":       p.Team,
		"position":   string(p.Position),
		"stat":       string(stat),
		"baseline":   p.Stats[stat],
		"multiplier": multiplier,
	}

	result, err := eval.Evaluate(expression, variables, constructFunctionMap())
	if err != nil {
		return 0, fmt.Errorf("failed to evaluate custom expression: %w", err)
	}

	var value float64
	switch r := result.(type) {
	case float64:
		value = r
	case int:
		value = float64(r)
	default:
		return 0, fmt.Errorf("custom expression returned %T, want a number", result)
	}
	if math.IsNaN(value) {
		return 0, fmt.Errorf("calculated NaN as expression result")
	} else if math.IsInf(value, 0) {
		return 0, fmt.Errorf("calculated infinity as expression result")
	}

	if value < 0 {
		value = 0
	} else if value > MaxTableWeight {
		value = MaxTableWeight
	}

	return value, nil
}
