package api

import (
	"context"

	"propfactor/internal/app"
	"propfactor/internal/calculator"
	"propfactor/internal/domain"

	"github.com/gin-gonic/gin"
)

type adjustProjectionsRequest struct {
	Projections     []domain.PlayerProjection `json:"projections"`
	Factors         domain.ContextFactors     `json:"factors"`
	WeightOverrides *calculator.FactorWeights `json:"weightOverrides"`
}

func (h ApiHandler) adjustProjections(c *gin.Context) {
	ctx := context.Background()

	var requestBody adjustProjectionsRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}

	result, err := h.GameAnalysisHandler.AdjustProjections(ctx, app.AdjustProjectionsInput{
		Projections:     requestBody.Projections,
		Factors:         requestBody.Factors,
		WeightOverrides: requestBody.WeightOverrides,
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, result)
}
