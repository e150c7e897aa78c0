package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"propfactor/internal/calculator"
	"propfactor/internal/domain"
	"propfactor/internal/repository"
	"propfactor/internal/util"
	"propfactor/pkg/openweather"

	"github.com/google/uuid"
)

/**
 * game analysis wiring
 *
 * AnalyzeGame is the full pipeline: pull baselines and team context from
 * the projections repository, fill in whatever the caller left blank
 * (injuries, news trends, weather, scenario roles), run the slate through
 * the adjustment calculator, then bolt on usage estimates and slate
 * metrics. AdjustProjections is the same core math with zero provider
 * calls, for callers that bring their own baselines.
 *
 * Context lookups are best effort. A provider hiccup on injuries, news,
 * snaps or weather downgrades to a warning and a neutral factor. A slate
 * with one missing factor is still useful, a 500 is not.
 */

type GameAnalysisHandler struct {
	ProjectionsRepository repository.ProjectionsRepository
	WeatherClient         *openweather.Client
	Weights               calculator.FactorWeights
}

type AnalyzeGameInput struct {
	Season   int
	Week     int
	HomeTeam string
	AwayTeam string

	Factors domain.ContextFactors
	// WeightOverrides replaces the configured weight tables for this run
	// only
	WeightOverrides *calculator.FactorWeights
	// Starters pins the home team's expected starters. Blank required
	// slots are filled from the depth chart.
	Starters    *domain.StarterConfig
	IncludeNews bool
	// NewsDate is YYYY-MM-DD, defaults to today
	NewsDate string
}

type AnalyzeGameResult struct {
	RunID       uuid.UUID                      `json:"runId"`
	Game        domain.GameInfo                `json:"game"`
	Projections []*domain.AdjustedProjection   `json:"projections"`
	Usage       map[string]domain.PlayerUsage  `json:"usage,omitempty"`
	Metrics     *calculator.SlateMetricsResult `json:"slateMetrics,omitempty"`
	Warnings    []string                       `json:"warnings"`
}

func (h GameAnalysisHandler) AnalyzeGame(ctx context.Context, in AnalyzeGameInput) (*AnalyzeGameResult, error) {
	profile := domain.GetPerformanceProfile(ctx) // used for profiling API performance

	game, err := gameFromInput(in)
	if err != nil {
		return nil, err
	}

	weights, err := h.effectiveWeights(in.WeightOverrides)
	if err != nil {
		return nil, err
	}

	warnings := []string{}
	factors := in.Factors.DeepCopy()

	projections, err := h.ProjectionsRepository.GetGameProjections(game)
	if err != nil {
		return nil, fmt.Errorf("failed to load projections: %w", err)
	}
	if len(projections) == 0 {
		return nil, fmt.Errorf("no projections found for %s", game)
	}
	profile.Add("loaded projections")

	if in.Starters != nil {
		depthChart, err := h.ProjectionsRepository.GetDepthChart(game.HomeTeam)
		if err != nil {
			return nil, fmt.Errorf("failed to load depth chart: %w", err)
		}
		starters, err := calculator.ValidateStarters(depthChart, *in.Starters)
		if err != nil {
			return nil, err
		}
		if factors.WR1 == "" {
			factors.WR1 = starters.WR1
		}
		if factors.RB1 == "" {
			factors.RB1 = starters.RB1
		}
		profile.Add("validated starters")
	}

	// nil means the caller didn't weigh in. An empty map is an explicit
	// "nobody is hurt" and skips the provider lookup.
	if factors.Injuries == nil {
		injuries, err := h.ProjectionsRepository.GetInjuries(game)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("could not load injury report: %v", err))
		} else {
			factors.Injuries = injuries
		}
		profile.Add("loaded injury report")
	}

	if factors.NewsTrends == nil && in.IncludeNews {
		factors.NewsTrends = h.newsTrends(in.NewsDate, projections, &warnings)
		profile.Add("scanned news")
	}

	usage := h.deriveUsage(game, factors.NewsTrends, &warnings)
	profile.Add("derived usage")

	if factors.Weather == nil && h.WeatherClient != nil {
		factors.Weather = h.currentWeather(game.HomeTeam, &warnings)
		profile.Add("loaded weather")
	}

	slate, err := calculator.AdjustSlate(calculator.AdjustSlateInput{
		Projections: projections,
		Factors:     factors,
		Weights:     weights,
	})
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, slate.Warnings...)
	profile.Add("adjusted slate")

	attachUsage(slate.Projections, usage)

	var metrics *calculator.SlateMetricsResult
	if len(slate.Projections) >= 2 {
		metrics, err = calculator.ApplySlateMetrics(slate.Projections)
		if err != nil {
			return nil, err
		}
	}
	profile.Add("computed slate metrics")

	return &AnalyzeGameResult{
		RunID:       uuid.New(),
		Game:        game,
		Projections: slate.Projections,
		Usage:       usage,
		Metrics:     metrics,
		Warnings:    warnings,
	}, nil
}

type AdjustProjectionsInput struct {
	Projections     []domain.PlayerProjection
	Factors         domain.ContextFactors
	WeightOverrides *calculator.FactorWeights
}

type AdjustProjectionsResult struct {
	Projections []*domain.AdjustedProjection   `json:"projections"`
	Metrics     *calculator.SlateMetricsResult `json:"slateMetrics,omitempty"`
	Warnings    []string                       `json:"warnings"`
}

// AdjustProjections runs the adjustment math over caller-supplied
// baselines. No provider calls happen here, so the same input always
// produces the same output.
func (h GameAnalysisHandler) AdjustProjections(ctx context.Context, in AdjustProjectionsInput) (*AdjustProjectionsResult, error) {
	profile := domain.GetPerformanceProfile(ctx)

	weights, err := h.effectiveWeights(in.WeightOverrides)
	if err != nil {
		return nil, err
	}

	slate, err := calculator.AdjustSlate(calculator.AdjustSlateInput{
		Projections: in.Projections,
		Factors:     in.Factors,
		Weights:     weights,
	})
	if err != nil {
		return nil, err
	}
	profile.Add("adjusted slate")

	var metrics *calculator.SlateMetricsResult
	if len(slate.Projections) >= 2 {
		metrics, err = calculator.ApplySlateMetrics(slate.Projections)
		if err != nil {
			return nil, err
		}
		profile.Add("computed slate metrics")
	}

	return &AdjustProjectionsResult{
		Projections: slate.Projections,
		Metrics:     metrics,
		Warnings:    slate.Warnings,
	}, nil
}

func (h GameAnalysisHandler) effectiveWeights(overrides *calculator.FactorWeights) (calculator.FactorWeights, error) {
	if overrides == nil {
		return h.Weights, nil
	}
	if err := overrides.Validate(); err != nil {
		return calculator.FactorWeights{}, fmt.Errorf("invalid weight overrides: %w", err)
	}
	return *overrides, nil
}

func (h GameAnalysisHandler) newsTrends(date string, projections []domain.PlayerProjection, warnings *[]string) map[string]domain.NewsTrend {
	if date == "" {
		date = util.FormatArticleDate(time.Now().UTC())
	}
	articles, err := h.ProjectionsRepository.GetNews(date)
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("could not load news for %s: %v", date, err))
		return nil
	}
	players := make([]string, 0, len(projections))
	for _, p := range projections {
		players = append(players, p.PlayerName)
	}
	return calculator.DeriveNewsTrends(articles, players)
}

func (h GameAnalysisHandler) deriveUsage(game domain.GameInfo, trends map[string]domain.NewsTrend, warnings *[]string) map[string]domain.PlayerUsage {
	usage := map[string]domain.PlayerUsage{}
	for _, team := range []string{game.HomeTeam, game.AwayTeam} {
		snaps, err := h.ProjectionsRepository.GetSnapCounts(game, team)
		if err != nil {
			*warnings = append(*warnings, fmt.Sprintf("could not load snap counts for %s: %v", team, err))
			continue
		}
		teamUsage, err := calculator.DeriveUsage(snaps, trends)
		if err != nil {
			*warnings = append(*warnings, fmt.Sprintf("could not derive usage for %s: %v", team, err))
			continue
		}
		for player, playerUsage := range teamUsage {
			usage[player] = playerUsage
		}
	}
	return usage
}

func (h GameAnalysisHandler) currentWeather(homeTeam string, warnings *[]string) *domain.WeatherConditions {
	city := domain.StadiumCity(homeTeam)
	if city == "" {
		return nil
	}
	conditions, err := h.WeatherClient.GetCurrentConditions(city)
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("could not load weather for %s: %v", city, err))
		return nil
	}
	return &domain.WeatherConditions{
		WindMPH:       conditions.Wind.Speed,
		Precipitation: conditions.Precipitating(),
		TemperatureF:  conditions.Main.Temp,
	}
}

// attachUsage decorates adjusted projections with their usage shares and
// the usage-derived estimates. Quarterbacks keep the shares but skip the
// reception and touchdown estimates, those formulas model skill players.
func attachUsage(projections []*domain.AdjustedProjection, usage map[string]domain.PlayerUsage) {
	for _, projection := range projections {
		playerUsage, ok := usage[projection.PlayerName]
		if !ok {
			continue
		}
		u := playerUsage
		projection.Usage = &u
		if projection.Position == domain.PositionQB {
			continue
		}
		projection.EstimatedReceptions = calculator.EstimateReceptions(u)
		estimate := calculator.EstimateTouchdowns(u)
		projection.EstimatedTDs = &estimate
	}
}

func gameFromInput(in AnalyzeGameInput) (domain.GameInfo, error) {
	game := domain.GameInfo{
		Season:   in.Season,
		Week:     in.Week,
		HomeTeam: domain.NormalizeTeam(in.HomeTeam),
		AwayTeam: domain.NormalizeTeam(in.AwayTeam),
	}
	if game.Season == 0 {
		game.Season = util.CurrentSeason(time.Now().UTC())
	}
	if game.HomeTeam == "" || game.AwayTeam == "" {
		return domain.GameInfo{}, fmt.Errorf("home and away teams are required")
	}
	if strings.EqualFold(game.HomeTeam, game.AwayTeam) {
		return domain.GameInfo{}, fmt.Errorf("%s cannot play itself", game.HomeTeam)
	}
	if game.Week < 1 {
		return domain.GameInfo{}, fmt.Errorf("invalid week %d", game.Week)
	}
	return game, nil
}
