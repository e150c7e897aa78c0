package repository

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"propfactor/internal/domain"
	"propfactor/internal/logger"
	"propfactor/pkg/sportsdataio"
)

// every provider baseline starts at the same prop hit probability; the
// adjustment engine moves it from there
const defaultHitProbability = 0.6

// ProjectionsRepository hands back baseline projections and supporting
// team context for one game, already mapped into domain terms. The
// engine itself never sees provider shapes.
type ProjectionsRepository interface {
	GetGameProjections(game domain.GameInfo) ([]domain.PlayerProjection, error)
	GetDepthChart(team string) (map[domain.Position][]string, error)
	GetSnapCounts(game domain.GameInfo, team string) (map[string]domain.SnapCounts, error)
	GetInjuries(game domain.GameInfo) (map[string]domain.InjuryStatus, error)
	GetNews(date string) ([]domain.NewsArticle, error)
}

type sportsDataRepositoryHandler struct {
	Client *sportsdataio.Client
}

func NewSportsDataRepository(client *sportsdataio.Client) ProjectionsRepository {
	return sportsDataRepositoryHandler{
		Client: client,
	}
}

func (h sportsDataRepositoryHandler) GetGameProjections(game domain.GameInfo) ([]domain.PlayerProjection, error) {
	raw, err := h.Client.GetGameProjections(game.Season, game.Week)
	if err != nil {
		return nil, err
	}

	projections := []domain.PlayerProjection{}
	for _, record := range raw {
		team := domain.NormalizeTeam(record.Team)
		if team != game.HomeTeam && team != game.AwayTeam {
			continue
		}
		position, err := domain.NewPositionFromString(record.Position)
		if err != nil {
			// linemen, kickers, defense
			continue
		}

		stats := map[domain.Stat]float64{}
		add := func(stat domain.Stat, value float64) {
			if value > 0 {
				stats[stat] = value
			}
		}
		add(domain.StatPassingYards, record.PassingYards)
		add(domain.StatPassingTDs, record.PassingTouchdowns)
		add(domain.StatRushingYards, record.RushingYards)
		add(domain.StatReceivingYards, record.ReceivingYards)
		add(domain.StatReceptions, record.Receptions)
		if len(stats) == 0 {
			continue
		}

		projection := domain.PlayerProjection{
			PlayerName:     record.Name,
			Team:           team,
			Position:       *position,
			Stats:          stats,
			HitProbability: defaultHitProbability,
		}
		if err := projection.Validate(); err != nil {
			logger.Warn("dropping malformed provider projection: %v", err)
			continue
		}
		projections = append(projections, projection)
	}

	return projections, nil
}

func (h sportsDataRepositoryHandler) GetDepthChart(team string) (map[domain.Position][]string, error) {
	charts, err := h.Client.GetDepthCharts()
	if err != nil {
		return nil, err
	}

	for _, chart := range charts {
		if domain.NormalizeTeam(chart.Team) != team {
			continue
		}
		sort.SliceStable(chart.Offense, func(i, j int) bool {
			return chart.Offense[i].DepthOrder < chart.Offense[j].DepthOrder
		})

		out := map[domain.Position][]string{}
		for _, entry := range chart.Offense {
			position, err := domain.NewPositionFromString(entry.Position)
			if err != nil {
				continue
			}
			out[*position] = append(out[*position], entry.Name)
		}
		return out, nil
	}

	return nil, fmt.Errorf("no depth chart found for %s", team)
}

// GetSnapCounts reads usage off the prior week's box score. Week 1 has
// no prior box score, so it falls back to the provider's week 1 data.
func (h sportsDataRepositoryHandler) GetSnapCounts(game domain.GameInfo, team string) (map[string]domain.SnapCounts, error) {
	week := game.Week - 1
	if week < 1 {
		week = 1
	}

	raw, err := h.Client.GetPlayerGameStats(game.Season, week, domain.Abbreviation(team))
	if err != nil {
		return nil, err
	}

	out := map[string]domain.SnapCounts{}
	for _, record := range raw {
		snapShare := 0.0
		if record.OffensiveTeamSnaps > 0 {
			snapShare = record.OffensiveSnapsPlayed / record.OffensiveTeamSnaps
		}
		out[record.Name] = domain.SnapCounts{
			SnapShare:      snapShare,
			RushAttempts:   record.RushingAttempts,
			Targets:        record.Targets,
			RedZoneRushes:  record.RedZoneRushingAttempts,
			RedZoneTargets: record.RedZoneTargets,
		}
	}

	return out, nil
}

func (h sportsDataRepositoryHandler) GetInjuries(game domain.GameInfo) (map[string]domain.InjuryStatus, error) {
	raw, err := h.Client.GetInjuries(game.Season, game.Week)
	if err != nil {
		return nil, err
	}

	out := map[string]domain.InjuryStatus{}
	for _, record := range raw {
		team := domain.NormalizeTeam(record.Team)
		if team != game.HomeTeam && team != game.AwayTeam {
			continue
		}
		if record.Status == "" {
			continue
		}
		out[record.Name] = domain.InjuryStatus(strings.ToLower(record.Status))
	}

	return out, nil
}

func (h sportsDataRepositoryHandler) GetNews(date string) ([]domain.NewsArticle, error) {
	raw, err := h.Client.GetRotoBallerArticles(date)
	if err != nil {
		return nil, err
	}

	articles := []domain.NewsArticle{}
	for _, record := range raw {
		updated, err := time.Parse("2006-01-02T15:04:05", record.Updated)
		if err != nil {
			updated = time.Time{}
		}
		articles = append(articles, domain.NewsArticle{
			Title:   record.Title,
			Author:  record.Author,
			Summary: record.Content,
			Team:    domain.NormalizeTeam(record.Team),
			Updated: updated,
		})
	}

	return articles, nil
}
