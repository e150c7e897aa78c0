package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"propfactor/internal/domain"

	"github.com/ayush6624/go-chatgpt"
)

type ConstructContextFactorsResponse struct {
	Factors domain.ContextFactors `json:"factors"`
	Reason  string                `json:"reason"`
}

type GptRepository interface {
	ConstructContextFactors(ctx context.Context, description string) (*ConstructContextFactorsResponse, error)
}

type gptRepositoryHandler struct {
	GptClient *chatgpt.Client
}

func NewGptRepository(apiKey string) (GptRepository, error) {
	client, err := chatgpt.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct gpt client: %w", err)
	}

	return gptRepositoryHandler{
		GptClient: client,
	}, nil
}

const prompt = `
You are helping a user describe the context around an NFL game. They will describe the matchup in English - injuries, defensive strength, weather, expected game flow - and you must output a JSON document capturing it as structured context factors.

The output must be exactly one JSON object with two keys:
- "factors": the structured factors (schema below)
- "reason": one or two sentences on how you read the description

factors schema (every field optional - omit anything the description doesn't support):
{
  "opponentPassDefenseRank": int,      // 1 = best pass defense in the league, 32 = worst
  "opponentRunDefenseRank": int,       // same scale for run defense
  "injuries": {"Player Name": "healthy" | "probable" | "questionable" | "doubtful" | "out"},
  "gameScript": "pass_heavy" | "neutral" | "run_heavy",
  "passRush": "strong" | "neutral" | "weak",   // from the offense's point of view
  "coverage": "shadow" | "neutral" | "soft",   // "shadow" means an elite CB travels with the WR1
  "weather": {"windMph": float, "precipitation": bool, "temperatureF": float},
  "rivalry": bool,                             // divisional or otherwise heated matchup
  "weights": {"factor_name": float}            // one-off adjustments the schema can't express; multipliers near 1.0
}

here's an example:
"The Cowboys host Detroit. Lions are top-5 against the run but can't stop the pass. 20mph wind and rain expected. CeeDee is questionable with an ankle."

expected output:
{
  "factors": {
    "opponentPassDefenseRank": 28,
    "opponentRunDefenseRank": 4,
    "injuries": {"CeeDee Lamb": "questionable"},
    "weather": {"windMph": 20, "precipitation": true}
  },
  "reason": "Strong run defense but weak pass defense, bad weather, and one questionable receiver."
}

Output only the JSON. No markdown fences, no commentary outside the "reason" field.
`

func (h gptRepositoryHandler) ConstructContextFactors(ctx context.Context, description string) (*ConstructContextFactorsResponse, error) {
	res, err := h.GptClient.Send(ctx, &chatgpt.ChatCompletionRequest{
		Model: chatgpt.GPT35Turbo,
		Messages: []chatgpt.ChatMessage{
			{
				Role:    chatgpt.ChatGPTModelRoleSystem,
				Content: prompt,
			},
			{
				Role:    chatgpt.ChatGPTModelRoleUser,
				Content: description,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send gpt request: %w", err)
	}
	if len(res.Choices) == 0 {
		return nil, fmt.Errorf("gpt returned no choices")
	}

	// models love fences even when told not to use them
	content := strings.TrimSpace(res.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	response := ConstructContextFactorsResponse{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &response); err != nil {
		return nil, fmt.Errorf("failed to parse gpt response as context factors: %w", err)
	}

	return &response, nil
}
