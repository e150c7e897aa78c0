package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

type Position string

const (
	PositionQB Position = "QB"
	PositionRB Position = "RB"
	PositionWR Position = "WR"
	PositionTE Position = "TE"
)

func NewPositionFromString(s string) (*Position, error) {
	value, ok := map[string]Position{
		"QB": PositionQB,
		"RB": PositionRB,
		"WR": PositionWR,
		"TE": PositionTE,
	}[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return nil, fmt.Errorf("invalid position: %s", s)
	}
	return &value, nil
}

// Stat keys a single projected statistic. Using string keys instead of
// struct fields lets the adjustment engine treat provider stats and
// caller-supplied custom stats the same way.
type Stat string

const (
	StatPassingYards   Stat = "passing_yards"
	StatPassingTDs     Stat = "passing_tds"
	StatRushingYards   Stat = "rushing_yards"
	StatReceivingYards Stat = "receiving_yards"
	StatReceptions     Stat = "receptions"

	// derived, only appears in floor output for RBs
	StatTotalYards Stat = "total_yards"
)

type StatCategory string

const (
	CategoryPassing   StatCategory = "passing"
	CategoryRushing   StatCategory = "rushing"
	CategoryReceiving StatCategory = "receiving"
	CategoryGeneral   StatCategory = "general"
)

func (s Stat) Category() StatCategory {
	switch s {
	case StatPassingYards, StatPassingTDs:
		return CategoryPassing
	case StatRushingYards:
		return CategoryRushing
	case StatReceivingYards, StatReceptions:
		return CategoryReceiving
	}
	return CategoryGeneral
}

// PlayerProjection is one player's baseline stat line for a single game,
// before any contextual adjustment. Immutable once built - the engine
// copies it rather than mutating.
type PlayerProjection struct {
	PlayerName string           `json:"playerName"`
	Team       string           `json:"team"`
	Position   Position         `json:"position"`
	Stats      map[Stat]float64 `json:"stats"`

	// baseline probability that the player clears his prop line,
	// before adjustment
	HitProbability float64 `json:"hitProbability,omitempty"`

	// sportsbook lines, keyed by stat. optional - only used for edge calcs
	PropLines map[Stat]decimal.Decimal `json:"propLines,omitempty"`
}

func (p PlayerProjection) DeepCopy() PlayerProjection {
	stats := make(map[Stat]float64, len(p.Stats))
	for k, v := range p.Stats {
		stats[k] = v
	}
	var lines map[Stat]decimal.Decimal
	if p.PropLines != nil {
		lines = make(map[Stat]decimal.Decimal, len(p.PropLines))
		for k, v := range p.PropLines {
			lines[k] = v
		}
	}
	return PlayerProjection{
		PlayerName:     p.PlayerName,
		Team:           p.Team,
		Position:       p.Position,
		Stats:          stats,
		HitProbability: p.HitProbability,
		PropLines:      lines,
	}
}

// Validate reports why a baseline record is unusable. Records that fail
// here get skipped with a warning instead of aborting the batch.
func (p PlayerProjection) Validate() error {
	if strings.TrimSpace(p.PlayerName) == "" {
		return fmt.Errorf("projection missing player name")
	}
	for stat, value := range p.Stats {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("%s has non-finite %s", p.PlayerName, stat)
		}
		if value < 0 {
			return fmt.Errorf("%s has negative %s (%f)", p.PlayerName, stat, value)
		}
	}
	return nil
}

// FactorApplication records one multiplier that was applied to a stat,
// for the transparency breakdown in responses.
type FactorApplication struct {
	Factor string  `json:"factor"`
	Weight float64 `json:"weight"`
}

type TouchdownEstimate struct {
	Mean  float64 `json:"mean"`
	Floor float64 `json:"floor"`
}

// AdjustedProjection is the engine output: same identity as the input
// projection, adjusted stats, and the multiplier trail that produced them.
type AdjustedProjection struct {
	PlayerName string   `json:"playerName"`
	Team       string   `json:"team"`
	Position   Position `json:"position"`

	Baseline    map[Stat]float64             `json:"baseline"`
	Stats       map[Stat]float64             `json:"adjusted"`
	Floors      map[Stat]float64             `json:"floors,omitempty"`
	Multipliers map[Stat]float64             `json:"multipliers"`
	Breakdown   map[Stat][]FactorApplication `json:"breakdown,omitempty"`

	HitProbability float64                  `json:"hitProbability,omitempty"`
	ZScore         *float64                 `json:"zScore,omitempty"`
	Edges          map[Stat]decimal.Decimal `json:"edges,omitempty"`

	Usage               *PlayerUsage       `json:"usage,omitempty"`
	EstimatedReceptions *float64           `json:"estimatedReceptions,omitempty"`
	EstimatedTDs        *TouchdownEstimate `json:"estimatedTds,omitempty"`
}

type GameInfo struct {
	Season   int    `json:"season"`
	Week     int    `json:"week"`
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
}

func (g GameInfo) String() string {
	return fmt.Sprintf("%s at %s (week %d, %d)", g.AwayTeam, g.HomeTeam, g.Week, g.Season)
}
