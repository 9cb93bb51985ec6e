package errors

import (
	"sync"
	"time"
)

// ErrorMetricsCollector собирает метрики ошибок для мониторинга
type ErrorMetricsCollector struct {
	mu sync.RWMutex

	totalErrors      int64
	errorsByType     map[string]int64 // По типу ошибки (ValidationError, InternalError и т.д.)
	errorsByCode     map[int]int64    // По HTTP статус коду
	errorsByEndpoint map[string]int64 // По эндпоинту

	lastErrors    []ErrorRecord // Последние N ошибок
	maxLastErrors int

	startTime time.Time
}

// ErrorRecord запись об ошибке
type ErrorRecord struct {
	Timestamp   time.Time `json:"timestamp"`
	Type        string    `json:"type"`
	Code        int       `json:"code"`
	Message     string    `json:"message"`
	Endpoint    string    `json:"endpoint"`
	RequestID   string    `json:"request_id"`
	UserMessage string    `json:"user_message"`
}

// ErrorMetricsSnapshot моментальный снимок метрик ошибок
type ErrorMetricsSnapshot struct {
	TotalErrors      int64            `json:"total_errors"`
	ErrorsByType     map[string]int64 `json:"errors_by_type"`
	ErrorsByCode     map[int]int64    `json:"errors_by_code"`
	ErrorsByEndpoint map[string]int64 `json:"errors_by_endpoint"`
	LastErrors       []ErrorRecord    `json:"last_errors"`
	UptimeSeconds    float64          `json:"uptime_seconds"`
}

// NewErrorMetricsCollector создает новый сборщик метрик ошибок
func NewErrorMetricsCollector() *ErrorMetricsCollector {
	return &ErrorMetricsCollector{
		errorsByType:     make(map[string]int64),
		errorsByCode:     make(map[int]int64),
		errorsByEndpoint: make(map[string]int64),
		lastErrors:       make([]ErrorRecord, 0),
		maxLastErrors:    100,
		startTime:        time.Now(),
	}
}

// RecordError записывает ошибку в метрики
func (emc *ErrorMetricsCollector) RecordError(err *AppError, endpoint, requestID string) {
	emc.mu.Lock()
	defer emc.mu.Unlock()

	emc.totalErrors++
	errorType := errorTypeOf(err)
	emc.errorsByType[errorType]++
	emc.errorsByCode[err.Code]++
	if endpoint != "" {
		emc.errorsByEndpoint[endpoint]++
	}

	record := ErrorRecord{
		Timestamp:   time.Now(),
		Type:        errorType,
		Code:        err.Code,
		Message:     err.Error(),
		Endpoint:    endpoint,
		RequestID:   requestID,
		UserMessage: err.UserMessage(),
	}
	emc.lastErrors = append([]ErrorRecord{record}, emc.lastErrors...)
	if len(emc.lastErrors) > emc.maxLastErrors {
		emc.lastErrors = emc.lastErrors[:emc.maxLastErrors]
	}
}

// Snapshot возвращает копию накопленных метрик
func (emc *ErrorMetricsCollector) Snapshot() ErrorMetricsSnapshot {
	emc.mu.RLock()
	defer emc.mu.RUnlock()

	snap := ErrorMetricsSnapshot{
		TotalErrors:      emc.totalErrors,
		ErrorsByType:     make(map[string]int64, len(emc.errorsByType)),
		ErrorsByCode:     make(map[int]int64, len(emc.errorsByCode)),
		ErrorsByEndpoint: make(map[string]int64, len(emc.errorsByEndpoint)),
		LastErrors:       make([]ErrorRecord, len(emc.lastErrors)),
		UptimeSeconds:    time.Since(emc.startTime).Seconds(),
	}
	for k, v := range emc.errorsByType {
		snap.ErrorsByType[k] = v
	}
	for k, v := range emc.errorsByCode {
		snap.ErrorsByCode[k] = v
	}
	for k, v := range emc.errorsByEndpoint {
		snap.ErrorsByEndpoint[k] = v
	}
	copy(snap.LastErrors, emc.lastErrors)
	return snap
}

// errorTypeOf определяет тип ошибки по коду
func errorTypeOf(err *AppError) string {
	switch err.Code {
	case 400:
		return "ValidationError"
	case 404:
		return "NotFoundError"
	case 409:
		return "ConflictError"
	case 429:
		return "TooManyRequestsError"
	case 500:
		return "InternalError"
	default:
		return "UnknownError"
	}
}
