package api

import (
	"context"

	"propfactor/internal/app"
	"propfactor/internal/calculator"
	"propfactor/internal/domain"

	"github.com/gin-gonic/gin"
)

type analyzeGameRequest struct {
	Season   int    `json:"season"`
	Week     int    `json:"week"`
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`

	Factors         domain.ContextFactors     `json:"factors"`
	WeightOverrides *calculator.FactorWeights `json:"weightOverrides"`
	Starters        *domain.StarterConfig     `json:"starters"`
	IncludeNews     bool                      `json:"includeNews"`
	NewsDate        string                    `json:"newsDate"`
}

type analyzeGameResponse struct {
	*app.AnalyzeGameResult
	Profile *domain.PerformanceProfile `json:"profile"`
}

func toAnalyzeGameInput(requestBody analyzeGameRequest) app.AnalyzeGameInput {
	return app.AnalyzeGameInput{
		Season:          requestBody.Season,
		Week:            requestBody.Week,
		HomeTeam:        requestBody.HomeTeam,
		AwayTeam:        requestBody.AwayTeam,
		Factors:         requestBody.Factors,
		WeightOverrides: requestBody.WeightOverrides,
		Starters:        requestBody.Starters,
		IncludeNews:     requestBody.IncludeNews,
		NewsDate:        requestBody.NewsDate,
	}
}

func (h ApiHandler) analyzeGame(c *gin.Context) {
	performanceProfile := domain.NewPerformanceProfile()
	ctx := context.WithValue(context.Background(), domain.ContextProfileKey, performanceProfile)
	performanceProfile.Add("initialized")

	var requestBody analyzeGameRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}

	result, err := h.GameAnalysisHandler.AnalyzeGame(ctx, toAnalyzeGameInput(requestBody))
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	performanceProfile.End()
	c.JSON(200, analyzeGameResponse{
		AnalyzeGameResult: result,
		Profile:           performanceProfile,
	})
}
