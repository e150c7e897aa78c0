package api

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
)

type constructContextFactorsRequest struct {
	UserInput string `json:"input"`
}

func (h ApiHandler) constructContextFactors(c *gin.Context) {
	ctx := context.Background()
	var requestBody constructContextFactorsRequest

	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}

	if h.GptRepository == nil {
		returnErrorJsonCode(fmt.Errorf("no gpt api key is configured"), c, 400)
		return
	}

	response, err := h.GptRepository.ConstructContextFactors(
		ctx,
		requestBody.UserInput,
	)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, response)
}
