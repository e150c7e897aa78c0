package api

import (
	"context"
	"fmt"

	"propfactor/internal/app"

	"github.com/gin-gonic/gin"
)

// exportCsv runs the same pipeline as analyzeGame but renders the slate
// as a CSV attachment instead of JSON.
func (h ApiHandler) exportCsv(c *gin.Context) {
	ctx := context.Background()

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

	out, err := app.BuildProjectionCSV(result.Projections)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", app.CSVFileName(result.Game)))
	c.Data(200, "text/csv", out)
}
