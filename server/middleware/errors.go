package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"dicingserver/catalog"
	"dicingserver/database"
	"dicingserver/decoder"
	"dicingserver/importer"
	apperrors "dicingserver/server/errors"
)

// Глобальный сборщик метрик ошибок
var (
	globalErrorMetrics *apperrors.ErrorMetricsCollector
	errorMetricsOnce   sync.Once
)

// InitErrorMetrics инициализирует глобальный сборщик метрик ошибок
func InitErrorMetrics() {
	errorMetricsOnce.Do(func() {
		globalErrorMetrics = apperrors.NewErrorMetricsCollector()
	})
}

// GetErrorMetrics возвращает глобальный сборщик метрик ошибок.
// Инициализация идемпотентна и безопасна при конкурентных вызовах.
func GetErrorMetrics() *apperrors.ErrorMetricsCollector {
	InitErrorMetrics()
	return globalErrorMetrics
}

// ErrorResponse структура ответа об ошибке
type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id,omitempty"`
}

// AbortWithError преобразует ошибку приложения в JSON ответ.
// Типизированные ошибки доменных пакетов (диапазоны, схема, артикулы)
// отображаются в 400, остальные — в AppError или 500.
func AbortWithError(c *gin.Context, err error) {
	appErr := toAppError(err)
	reqID := GetRequestID(c)

	GetErrorMetrics().RecordError(appErr, c.FullPath(), reqID)

	slog.Error("HTTP error",
		"error", appErr.Unwrap(),
		"user_message", appErr.UserMessage(),
		"status_code", appErr.StatusCode(),
		"request_id", reqID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	c.AbortWithStatusJSON(appErr.StatusCode(), ErrorResponse{
		Error:     appErr.UserMessage(),
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: reqID,
	})
}

// toAppError сводит произвольную ошибку к AppError
func toAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var rangeErr *catalog.InvalidRangeError
	if errors.As(err, &rangeErr) {
		return apperrors.NewValidationError(rangeErr.Error(), err)
	}
	var schemaErr *importer.SchemaMismatchError
	if errors.As(err, &schemaErr) {
		return apperrors.NewValidationError(schemaErr.Error(), err)
	}
	var malformedErr *decoder.MalformedCodeError
	if errors.As(err, &malformedErr) {
		return apperrors.NewValidationError(malformedErr.Error(), err)
	}
	var unencodableErr *decoder.UnencodableValueError
	if errors.As(err, &unencodableErr) {
		return apperrors.NewValidationError(unencodableErr.Error(), err)
	}
	if errors.Is(err, database.ErrCatalogNotFound) {
		return apperrors.NewNotFoundError("каталог не найден", err)
	}

	return apperrors.NewInternalError("необработанная ошибка", err)
}

// Recover обрабатывает паники с детальным логированием
func Recover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Panic recovered",
					"panic", r,
					"stack_trace", string(debug.Stack()),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:     "Внутренняя ошибка сервера",
					Timestamp: time.Now().Format(time.RFC3339),
					RequestID: GetRequestID(c),
				})
			}
		}()
		c.Next()
	}
}

// AccessLog логирует каждый запрос со статусом и длительностью
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", GetRequestID(c),
		)
	}
}
