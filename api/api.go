package api

import (
	"bytes"
	"fmt"
	"time"

	"propfactor/internal/app"
	"propfactor/internal/logger"
	"propfactor/internal/repository"
	"propfactor/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApiHandler struct {
	GameAnalysisHandler   app.GameAnalysisHandler
	ProjectionsRepository repository.ProjectionsRepository
	GptRepository         repository.GptRepository
	EmailService          service.EmailService
}

// InitializeRouterEngine wires every route onto a gin engine. Split from
// StartApi so the lambda adapter can proxy into the same engine.
func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to propfactor"})
	})
	router.POST("/analyzeGame", m.analyzeGame)
	router.POST("/adjustProjections", m.adjustProjections)
	router.POST("/exportCsv", m.exportCsv)
	router.POST("/constructContextFactors", m.constructContextFactors)
	router.POST("/playerNews", m.playerNews)
	router.POST("/emailReport", m.emailReport)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	logger.Error(err)
	c.AbortWithStatusJSON(500, gin.H{
		"error": err.Error(),
	})
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.Error(err)
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: ctx.Writer}
	ctx.Writer = w

	requestID := uuid.New()
	start := time.Now().UTC()

	logger.Info("%s %s [%s] started", ctx.Request.Method, ctx.Request.URL.Path, requestID)

	ctx.Next()

	logger.Info(
		"%s %s [%s] returned %d in %dms (%d bytes)",
		ctx.Request.Method,
		ctx.Request.URL.Path,
		requestID,
		ctx.Writer.Status(),
		time.Since(start).Milliseconds(),
		w.body.Len(),
	)
}
