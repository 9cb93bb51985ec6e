package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "dicingserver/server/errors"
)

// UploadRateLimit ограничивает частоту загрузок каталога.
// Разбор книги Excel и пересчет базовых показателей дороги, лимитер
// общий на процесс: загрузка каталога — редкая административная операция.
func UploadRateLimit(perMinute int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			AbortWithError(c, apperrors.NewTooManyRequestsError(
				"превышена частота загрузок каталога, повторите позже"))
			return
		}
		c.Next()
	}
}
