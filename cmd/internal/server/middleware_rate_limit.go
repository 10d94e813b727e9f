package server

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// serviceLimiter - общий token bucket воркер-маршрутов заполнения.
// Один bucket на процесс: каждый запрос разбирает zip-контейнер и прогоняет
// весь конвейер движка, поэтому поток документов ограничивается даже для
// аутентифицированных сервисов.
type serviceLimiter struct {
	bucket *rate.Limiter
	mu     sync.Mutex
}

// ServiceRateLimitMiddleware ограничивает частоту запросов к внутренним
// маршрутам: rps запросов в секунду со всплеском до burst. Значения берутся
// из конфигурации (worker.rate_limit_rps / worker.rate_limit_burst).
func ServiceRateLimitMiddleware(rps, burst int) gin.HandlerFunc {
	l := &serviceLimiter{bucket: rate.NewLimiter(rate.Limit(rps), burst)}

	return func(c *gin.Context) {
		l.mu.Lock()
		allowed := l.bucket.Allow()
		l.mu.Unlock()

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
