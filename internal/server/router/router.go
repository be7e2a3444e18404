package router

import (
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.FormHandler, templates *template.Template, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.SetHTMLTemplate(templates)

	r.GET("/", handler.Show)
	r.POST("/mode/:mode", handler.SelectMode)
	r.GET("/search", handler.Search)
	r.POST("/select/:id", handler.SelectSuggestion)
	r.POST("/draft", handler.EditDraft)
	r.POST("/transactions", handler.SubmitTransaction)

	goods := r.Group("/goods")
	goods.POST("", handler.RegisterGoods)
	goods.POST("/update", handler.UpdateGoods)
	goods.POST("/delete", handler.DeleteGoods)

	api := r.Group("/api")
	api.GET("/goods", handler.Suggestions)
	api.GET("/goods/:id/activity", handler.Activity)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
