package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"portfolio/internal/metrics"
)

func Metrics(recorder metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		recorder.RecordHTTPRequest(c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
