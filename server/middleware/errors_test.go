package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"dicingserver/catalog"
	"dicingserver/database"
	"dicingserver/decoder"
	"dicingserver/importer"
	apperrors "dicingserver/server/errors"
)

// TestToAppError проверяет отображение доменных ошибок в HTTP статусы
func TestToAppError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "AppError проходит как есть",
			err:      apperrors.NewNotFoundError("нет", nil),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "перевернутый диапазон",
			err:      &catalog.InvalidRangeError{Field: "thickness_microns", Min: 10, Max: 5},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "несоответствие схемы",
			err:      &importer.SchemaMismatchError{Sheet: "SiC", Missing: []string{"CutType"}},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "некорректный артикул",
			err:      &decoder.MalformedCodeError{Code: "X", Segment: -1, Reason: "мало сегментов"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "некодируемое значение",
			err:      &decoder.UnencodableValueError{Field: decoder.FieldMaterial, Value: "Diamond"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "каталог не найден",
			err:      database.ErrCatalogNotFound,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "прочая ошибка",
			err:      errors.New("что-то сломалось"),
			wantCode: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := toAppError(tt.err)
			if appErr.StatusCode() != tt.wantCode {
				t.Errorf("StatusCode = %d, ожидалось %d", appErr.StatusCode(), tt.wantCode)
			}
		})
	}
}

// TestToAppErrorWrapped проверяет распознавание обернутых доменных ошибок
func TestToAppErrorWrapped(t *testing.T) {
	wrapped := errors.Join(errors.New("контекст"), database.ErrCatalogNotFound)
	if got := toAppError(wrapped).StatusCode(); got != http.StatusNotFound {
		t.Errorf("StatusCode = %d, ожидалось 404 для обернутой ошибки", got)
	}
}

// TestRequestIDGenerated проверяет генерацию request ID
func TestRequestIDGenerated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		if GetRequestID(c) == "" {
			t.Error("request ID не установлен в контексте")
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Header().Get("X-Request-ID") == "" {
		t.Errorf("заголовок X-Request-ID не выставлен")
	}
}

// TestRequestIDPreserved проверяет уважение входящего X-Request-ID
func TestRequestIDPreserved(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "клиентский-id")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "клиентский-id" {
		t.Errorf("X-Request-ID = %q, ожидался клиентский", got)
	}
}

// TestAbortWithErrorResponse проверяет формат JSON ответа об ошибке
func TestAbortWithErrorResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		AbortWithError(c, apperrors.NewValidationError("плохой запрос", nil))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("статус %d, ожидалось 400", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "плохой запрос") {
		t.Errorf("тело ответа не содержит сообщение: %s", body)
	}
}

// TestUploadRateLimit проверяет ограничение частоты загрузок
func TestUploadRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	// Burst равен perMinute: две загрузки проходят, третья отклоняется
	router.POST("/upload", UploadRateLimit(2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/upload", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("первые запросы отклонены: %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("третий запрос прошел: %v", codes)
	}
}

// TestGetErrorMetricsConcurrent проверяет, что конкурентные обращения
// получают один и тот же сборщик метрик
func TestGetErrorMetricsConcurrent(t *testing.T) {
	const workers = 16
	collectors := make([]*apperrors.ErrorMetricsCollector, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			collectors[i] = GetErrorMetrics()
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if collectors[i] != collectors[0] {
			t.Fatalf("горутина %d получила другой экземпляр сборщика", i)
		}
	}
}

// TestRecoverMiddleware проверяет обработку паники без падения процесса
func TestRecoverMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Recover())
	router.GET("/", func(c *gin.Context) {
		panic("что-то пошло не так")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("статус %d, ожидалось 500", w.Code)
	}
}
