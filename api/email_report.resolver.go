package api

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
)

type emailReportRequest struct {
	analyzeGameRequest
	Recipient string `json:"recipient"`
}

func (h ApiHandler) emailReport(c *gin.Context) {
	ctx := context.Background()

	var requestBody emailReportRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}
	if requestBody.Recipient == "" {
		returnErrorJsonCode(fmt.Errorf("recipient is required"), c, 400)
		return
	}
	if h.EmailService == nil {
		returnErrorJsonCode(fmt.Errorf("email sending is not configured"), c, 400)
		return
	}

	result, err := h.GameAnalysisHandler.AnalyzeGame(ctx, toAnalyzeGameInput(requestBody.analyzeGameRequest))
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	err = h.EmailService.SendProjectionReport(requestBody.Recipient, result.Game, result.Projections)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{
		"message": fmt.Sprintf("sent report for %s to %s", result.Game, requestBody.Recipient),
	})
}
