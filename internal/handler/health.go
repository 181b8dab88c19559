package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/juanmzaragoza/billing-dad-project/internal/infra"
	"github.com/juanmzaragoza/billing-dad-project/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health checks DB and Redis connectivity; never exposes credentials or
// internals. Redis is optional: without it the check reports "disabled".
func Health(db *gorm.DB, rdb *redis.Client, breaker *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		body := gin.H{"db": dbStatus}
		healthy := dbStatus == "connected"

		if rdb == nil {
			body["redis"] = "disabled"
		} else if rdb.Ping(ctx).Err() != nil {
			body["redis"] = "error"
			healthy = false
		} else {
			body["redis"] = "connected"
			if n, err := worker.DLQLength(ctx, rdb, worker.QueueEnvios); err == nil {
				body["dlq_envios"] = n
			}
		}
		if breaker != nil {
			body["smtp_breaker"] = breaker.State().String()
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		body["ok"] = healthy
		c.JSON(status, body)
	}
}
