package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/fueldepot/internal/server/handlers"
)

// RequestIDHeader carries the request id in and out.
const RequestIDHeader = "X-Request-ID"

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.DepotHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/catalog", handler.Catalog)

	shifts := r.Group("/shifts")
	shifts.POST("/open", handler.OpenShift)
	shifts.POST("/close", handler.CloseShift)
	shifts.GET("/active", handler.ActiveShift)
	shifts.DELETE("/:row", handler.DeleteShift)

	r.PUT("/tanks/:tank/measurement", handler.TankMeasurement)
	r.PUT("/inventory/drain", handler.DrainMeasurement)
	r.PUT("/inventory/:tank/measurement", handler.InventoryMeasurement)

	r.POST("/receipts", handler.Receipt)
	r.POST("/issues/truck", handler.TruckIssue)
	r.POST("/issues/aircraft", handler.AircraftIssue)
	r.POST("/rail-tankers", handler.RailTanker)

	reports := r.Group("/reports")
	reports.GET("/inventory", handler.InventoryReport)
	reports.GET("/daily/:date", handler.ArchivedReport)
	reports.POST("/balance", handler.BalanceReport)
	reports.POST("/:kind", handler.DateRangeReport)

	admin := r.Group("/admin")
	admin.POST("/archive", handler.Archive)
	admin.POST("/reset", handler.Reset)

	r.POST("/send-message", handler.SendMessage)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
