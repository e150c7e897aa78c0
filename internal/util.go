package internal

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

func Pprint(i interface{}) {
	bytes, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(bytes))
}

// Secrets is the explicit config object handed to each client at
// construction. Values come from secrets.json when it exists, then env
// vars override field by field - lambda deploys ship no secrets file.
type Secrets struct {
	SportsDataApiKey  string       `json:"sportsDataIo" env:"SPORTSDATAIO_API_KEY"`
	OpenWeatherApiKey string       `json:"openWeather" env:"OPENWEATHER_API_KEY"`
	ChatGPTApiKey     string       `json:"gpt" env:"CHATGPT_API_KEY"`
	FactorWeightsFile string       `json:"factorWeightsFile" env:"FACTOR_WEIGHTS_FILE"`
	Email             EmailSecrets `json:"email"`
}

type EmailSecrets struct {
	Region      string `json:"region" env:"SES_REGION"`
	FromAddress string `json:"fromAddress" env:"SES_FROM_ADDRESS"`
}

func LoadSecrets() (*Secrets, error) {
	secretsFile := "secrets.json"
	if os.Getenv("APP_ENV") == "dev" {
		secretsFile = "secrets-dev.json"
	} else if os.Getenv("APP_ENV") == "test" {
		secretsFile = "secrets-test.json"
	}

	secrets := Secrets{}
	f, err := os.ReadFile(secretsFile)
	if err == nil {
		if err = json.Unmarshal(f, &secrets); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", secretsFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("could not open %s: %w", secretsFile, err)
	}

	if err = env.Parse(&secrets); err != nil {
		return nil, fmt.Errorf("failed to parse env overrides: %w", err)
	}

	return &secrets, nil
}
