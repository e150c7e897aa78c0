package api

import (
	"time"

	"propfactor/internal/calculator"
	"propfactor/internal/domain"
	"propfactor/internal/util"

	"github.com/gin-gonic/gin"
)

type playerNewsRequest struct {
	// Date is YYYY-MM-DD, defaults to today
	Date    string   `json:"date"`
	Players []string `json:"players"`
}

type playerNewsResponse struct {
	Articles []domain.NewsArticle        `json:"articles"`
	Trends   map[string]domain.NewsTrend `json:"trends"`
}

func (h ApiHandler) playerNews(c *gin.Context) {
	var requestBody playerNewsRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}

	date := requestBody.Date
	if date == "" {
		date = util.FormatArticleDate(time.Now().UTC())
	}

	articles, err := h.ProjectionsRepository.GetNews(date)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, playerNewsResponse{
		Articles: articles,
		Trends:   calculator.DeriveNewsTrends(articles, requestBody.Players),
	})
}
