package cmd

import (
	"fmt"

	"propfactor/api"
	"propfactor/internal"
	"propfactor/internal/app"
	"propfactor/internal/calculator"
	"propfactor/internal/logger"
	"propfactor/internal/repository"
	"propfactor/internal/service"
	"propfactor/pkg/openweather"
	"propfactor/pkg/sportsdataio"
)

// InitializeDependencies builds the full dependency graph from secrets.
// Everything optional degrades gracefully: no provider key means demo
// baselines, no weather key means no weather factor, and so on.
func InitializeDependencies() (*api.ApiHandler, error) {
	secrets, err := internal.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	weights := calculator.DefaultFactorWeights()
	if secrets.FactorWeightsFile != "" {
		loaded, err := calculator.LoadFactorWeights(secrets.FactorWeightsFile)
		if err != nil {
			logger.Warn("falling back to default factor weights: %v", err)
		} else {
			weights = loaded
		}
	}

	var projectionsRepository repository.ProjectionsRepository
	if secrets.SportsDataApiKey == "" {
		logger.Warn("no sportsdataio api key set, using built-in demo baselines")
		projectionsRepository = repository.NewDemoProjectionsRepository()
	} else {
		projectionsRepository = repository.NewSportsDataRepository(sportsdataio.New(secrets.SportsDataApiKey))
	}

	var weatherClient *openweather.Client
	if secrets.OpenWeatherApiKey != "" {
		weatherClient = openweather.New(secrets.OpenWeatherApiKey)
	}

	var gptRepository repository.GptRepository
	if secrets.ChatGPTApiKey != "" {
		gptRepository, err = repository.NewGptRepository(secrets.ChatGPTApiKey)
		if err != nil {
			return nil, err
		}
	}

	var emailService service.EmailService
	if secrets.Email.FromAddress != "" {
		emailRepository, err := repository.NewEmailRepository(secrets.Email.Region, secrets.Email.FromAddress)
		if err != nil {
			return nil, fmt.Errorf("failed to construct email repository: %w", err)
		}
		emailService = service.NewEmailService(emailRepository)
	}

	return &api.ApiHandler{
		GameAnalysisHandler: app.GameAnalysisHandler{
			ProjectionsRepository: projectionsRepository,
			WeatherClient:         weatherClient,
			Weights:               weights,
		},
		ProjectionsRepository: projectionsRepository,
		GptRepository:         gptRepository,
		EmailService:          emailService,
	}, nil
}
