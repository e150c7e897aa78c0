package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"propfactor/cmd"
	"propfactor/internal"
	"propfactor/internal/app"
	"propfactor/internal/calculator"
	"propfactor/internal/domain"
	"propfactor/internal/repository"
	"propfactor/internal/util"

	"github.com/spf13/cobra"
)

var (
	analyzeSeason  int
	analyzeWeek    int
	analyzeHome    string
	analyzeAway    string
	analyzeDemo    bool
	analyzeCSVPath string
	analyzeJSON    bool
	analyzeRivalry bool
	analyzeNews    bool
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "propfactor",
		Short:        "Adjust NFL player projections for game context",
		SilenceUsage: true,
	}
	root.AddCommand(newAnalyzeCommand())
	return root
}

func newAnalyzeCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze one game and print the adjusted slate",
		RunE:  analyzeCommandE,
	}

	command.Flags().IntVar(&analyzeSeason, "season", util.CurrentSeason(time.Now().UTC()), "season to analyze")
	command.Flags().IntVar(&analyzeWeek, "week", 1, "week to analyze")
	command.Flags().StringVar(&analyzeHome, "home", "Cowboys", "home team")
	command.Flags().StringVar(&analyzeAway, "away", "Lions", "away team")
	command.Flags().BoolVar(&analyzeDemo, "demo", false, "use built-in demo baselines instead of the provider")
	command.Flags().StringVar(&analyzeCSVPath, "csv", "", "write the slate to this file instead of stdout")
	command.Flags().BoolVar(&analyzeJSON, "json", false, "print the full result as json")
	command.Flags().BoolVar(&analyzeRivalry, "rivalry", false, "treat the matchup as a rivalry game")
	command.Flags().BoolVar(&analyzeNews, "news", false, "scan provider news for player trends")

	return command
}

func analyzeCommandE(_ *cobra.Command, _ []string) error {
	apiHandler, err := cmd.InitializeDependencies()
	if err != nil {
		return err
	}

	gameAnalysisHandler := apiHandler.GameAnalysisHandler
	if analyzeDemo {
		gameAnalysisHandler = app.GameAnalysisHandler{
			ProjectionsRepository: repository.NewDemoProjectionsRepository(),
			Weights:               calculator.DefaultFactorWeights(),
		}
	}

	profile := domain.NewPerformanceProfile()
	ctx := context.WithValue(context.Background(), domain.ContextProfileKey, profile)

	result, err := gameAnalysisHandler.AnalyzeGame(ctx, app.AnalyzeGameInput{
		Season:      analyzeSeason,
		Week:        analyzeWeek,
		HomeTeam:    analyzeHome,
		AwayTeam:    analyzeAway,
		Factors:     domain.ContextFactors{Rivalry: analyzeRivalry},
		IncludeNews: analyzeNews,
	})
	if err != nil {
		return err
	}
	profile.End()

	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	if analyzeJSON {
		internal.Pprint(result)
		return nil
	}

	if analyzeCSVPath != "" {
		out, err := app.BuildProjectionCSV(result.Projections)
		if err != nil {
			return err
		}
		if err := os.WriteFile(analyzeCSVPath, out, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", analyzeCSVPath, err)
		}
		fmt.Printf("wrote %s\n", analyzeCSVPath)
		return nil
	}

	printSlate(result)
	return nil
}

func printSlate(result *app.AnalyzeGameResult) {
	fmt.Printf("%s\n\n", result.Game)

	for _, projection := range result.Projections {
		fmt.Printf("%s (%s %s)\n", projection.PlayerName, projection.Team, projection.Position)

		stats := make([]domain.Stat, 0, len(projection.Stats))
		for stat := range projection.Stats {
			stats = append(stats, stat)
		}
		sort.Slice(stats, func(i, j int) bool {
			return stats[i] < stats[j]
		})

		for _, stat := range stats {
			marker := ""
			if len(projection.Breakdown[stat]) > 0 {
				marker = " *"
			}
			fmt.Printf("  %-16s %7.1f -> %7.1f%s\n", stat, projection.Baseline[stat], projection.Stats[stat], marker)
		}
	}

	if result.Metrics != nil {
		fmt.Printf("\nslate scoring yards: mean %.1f, stdev %.1f\n", result.Metrics.MeanScoringYards, result.Metrics.StdevScoringYards)
	}
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}
