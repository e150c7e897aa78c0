package repository

import (
	"fmt"

	"propfactor/internal/domain"
)

// demoProjectionsRepositoryHandler serves a canned Cowboys/Lions slate so
// the whole pipeline runs without a provider key. Numbers are frozen;
// any season/week is accepted and ignored.
type demoProjectionsRepositoryHandler struct{}

func NewDemoProjectionsRepository() ProjectionsRepository {
	return demoProjectionsRepositoryHandler{}
}

type demoPlayer struct {
	name       string
	team       string
	position   domain.Position
	stats      map[domain.Stat]float64
	snapCounts domain.SnapCounts
}

// slice, not map - slate order is part of the contract
var demoPlayers = []demoPlayer{
	{
		name:     "Dak Prescott",
		team:     "Cowboys",
		position: domain.PositionQB,
		stats: map[domain.Stat]float64{
			domain.StatPassingYards: 305,
			domain.StatPassingTDs:   2.4,
			domain.StatRushingYards: 15,
		},
		snapCounts: domain.SnapCounts{SnapShare: 0.98, RushAttempts: 4, RedZoneRushes: 2},
	},
	{
		name:     "Javonte Williams",
		team:     "Cowboys",
		position: domain.PositionRB,
		stats: map[domain.Stat]float64{
			domain.StatRushingYards:   85,
			domain.StatReceivingYards: 18,
			domain.StatReceptions:     2,
		},
		snapCounts: domain.SnapCounts{SnapShare: 0.55, RushAttempts: 14, Targets: 3, RedZoneRushes: 3, RedZoneTargets: 1},
	},
	{
		name:     "CeeDee Lamb",
		team:     "Cowboys",
		position: domain.PositionWR,
		stats: map[domain.Stat]float64{
			domain.StatRushingYards:   5,
			domain.StatReceivingYards: 98,
			domain.StatReceptions:     8.1,
		},
		snapCounts: domain.SnapCounts{SnapShare: 0.92, RushAttempts: 1, Targets: 10, RedZoneTargets: 2},
	},
	{
		name:     "George Pickens",
		team:     "Cowboys",
		position: domain.PositionWR,
		stats: map[domain.Stat]float64{
			domain.StatReceivingYards: 95,
			domain.StatReceptions:     7,
		},
		snapCounts: domain.SnapCounts{SnapShare: 0.88, Targets: 8, RedZoneTargets: 2},
	},
	{
		name:     "Jake Ferguson",
		team:     "Cowboys",
		position: domain.PositionTE,
		stats: map[domain.Stat]float64{
			domain.StatReceivingYards: 47,
			domain.StatReceptions:     4.8,
		},
		snapCounts: domain.SnapCounts{SnapShare: 0.75, Targets: 5, RedZoneTargets: 1},
	},
	{
		name:     "Jared Goff",
		team:     "Lions",
		position: domain.PositionQB,
		stats: map[domain.Stat]float64{
			domain.StatPassingYards: 278,
			domain.StatPassingTDs:   2,
			domain.StatRushingYards: 5,
		},
		snapCounts: domain.SnapCounts{SnapShare: 0.99, RushAttempts: 2, RedZoneRushes: 1},
	},
	{
		name:     "Jahmyr Gibbs",
		team:     "Lions",
		position: domain.PositionRB,
		stats: map[domain.Stat]float64{
			domain.StatRushingYards:   75,
			domain.StatReceivingYards: 35,
			domain.StatReceptions:     4,
		},
		snapCounts: domain.SnapCounts{SnapShare: 0.58, RushAttempts: 12, Targets: 5, RedZoneRushes: 3, RedZoneTargets: 1},
	},
	{
		name:     "David Montgomery",
		team:     "Lions",
		position: domain.PositionRB,
		stats: map[domain.Stat]float64{
			domain.StatRushingYards:   52,
			domain.StatReceivingYards: 6,
			domain.StatReceptions:     1,
		},
		snapCounts: domain.SnapCounts{SnapShare: 0.42, RushAttempts: 10, Targets: 1, RedZoneRushes: 2},
	},
	{
		name:     "Jameson Williams",
		team:     "Lions",
		position: domain.PositionWR,
		stats: map[domain.Stat]float64{
			domain.StatReceivingYards: 62,
			domain.StatReceptions:     3.5,
		},
		snapCounts: domain.SnapCounts{SnapShare: 0.85, RushAttempts: 1, Targets: 7, RedZoneTargets: 1},
	},
}

func (h demoProjectionsRepositoryHandler) GetGameProjections(game domain.GameInfo) ([]domain.PlayerProjection, error) {
	projections := []domain.PlayerProjection{}
	for _, player := range demoPlayers {
		if player.team != game.HomeTeam && player.team != game.AwayTeam {
			continue
		}
		stats := make(map[domain.Stat]float64, len(player.stats))
		for stat, value := range player.stats {
			stats[stat] = value
		}
		projections = append(projections, domain.PlayerProjection{
			PlayerName:     player.name,
			Team:           player.team,
			Position:       player.position,
			Stats:          stats,
			HitProbability: defaultHitProbability,
		})
	}

	if len(projections) == 0 {
		return nil, fmt.Errorf("demo data only covers Cowboys and Lions, not %s at %s", game.AwayTeam, game.HomeTeam)
	}

	return projections, nil
}

// GetDepthChart derives the chart from slate order, which keeps the demo
// roster and the demo depth chart from drifting apart.
func (h demoProjectionsRepositoryHandler) GetDepthChart(team string) (map[domain.Position][]string, error) {
	out := map[domain.Position][]string{}
	for _, player := range demoPlayers {
		if player.team != team {
			continue
		}
		out[player.position] = append(out[player.position], player.name)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no depth chart found for %s", team)
	}
	return out, nil
}

func (h demoProjectionsRepositoryHandler) GetSnapCounts(game domain.GameInfo, team string) (map[string]domain.SnapCounts, error) {
	out := map[string]domain.SnapCounts{}
	for _, player := range demoPlayers {
		if player.team != team {
			continue
		}
		out[player.name] = player.snapCounts
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no snap counts found for %s", team)
	}
	return out, nil
}

func (h demoProjectionsRepositoryHandler) GetInjuries(game domain.GameInfo) (map[string]domain.InjuryStatus, error) {
	return map[string]domain.InjuryStatus{}, nil
}

func (h demoProjectionsRepositoryHandler) GetNews(date string) ([]domain.NewsArticle, error) {
	return []domain.NewsArticle{}, nil
}
