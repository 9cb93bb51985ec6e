package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"dicingserver/analysis"
	"dicingserver/database"
	"dicingserver/server/services"
	"dicingserver/server/types"
)

// testRouter собирает маршруты API поверх временной базы
func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDB(filepath.Join(t.TempDir(), "catalog_test.db"))
	if err != nil {
		t.Fatalf("не удалось открыть базу: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	catalogs, err := services.NewCatalogService(db)
	if err != nil {
		t.Fatalf("NewCatalogService() вернул ошибку: %v", err)
	}
	analysisSvc := services.NewAnalysisService(analysis.DefaultConfig(), 10, 0)
	decodeSvc, err := services.NewDecodeService("")
	if err != nil {
		t.Fatalf("NewDecodeService() вернул ошибку: %v", err)
	}

	catalogHandler := NewCatalogHandler(catalogs)
	discHandler := NewDiscHandler(catalogs, analysisSvc)
	statsHandler := NewStatsHandler(catalogs, analysisSvc)
	recommendHandler := NewRecommendHandler(catalogs, analysisSvc)
	decodeHandler := NewDecodeHandler(decodeSvc)
	healthHandler := NewHealthHandler(catalogs)

	router := gin.New()
	router.GET("/health", healthHandler.HandleHealth)
	api := router.Group("/api")
	api.POST("/catalogs/upload", catalogHandler.HandleUpload)
	api.GET("/catalogs", catalogHandler.HandleList)
	api.GET("/discs", discHandler.HandleList)
	api.GET("/discs/metrics", discHandler.HandleMetrics)
	api.GET("/stats/materials", statsHandler.HandleMaterialStats)
	api.POST("/recommendations", recommendHandler.HandleRecommend)
	api.POST("/decode", decodeHandler.HandleDecode)
	api.GET("/decode/validate", decodeHandler.HandleValidate)
	return router
}

// uploadBody собирает multipart тело с книгой каталога
func uploadBody(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), "SiC")
	rows := [][]interface{}{
		{"Артикул диска", "Тип резки", "Толщина пластины, мкм", "Ширина реза, мкм",
			"Диаметр ступицы, мм", "Внешний диаметр, мм", "Размер зерна",
			"Сколы (медиана), мкм", "Скорость резки, мм/мин", "Срок службы диска, резов"},
		{"SIC-300-45-H08", "Полный рез", 300, 45, 8, 52, 6, 12, 40, 15000},
		{"SIC-320-45-H08", "Полный рез", 320, 45, 8, 52, 6, 14, 38, 14000},
	}
	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err := f.SetCellValue("SiC", cell, value); err != nil {
				t.Fatalf("SetCellValue: %v", err)
			}
		}
	}
	var workbook bytes.Buffer
	if err := f.Write(&workbook); err != nil {
		t.Fatalf("Write: %v", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "каталог.xlsx")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(workbook.Bytes()); err != nil {
		t.Fatalf("Write part: %v", err)
	}
	writer.Close()
	return body, writer.FormDataContentType()
}

func uploadCatalog(t *testing.T, router *gin.Engine) {
	t.Helper()
	body, contentType := uploadBody(t)
	req := httptest.NewRequest(http.MethodPost, "/api/catalogs/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("загрузка каталога: статус %d, тело %s", w.Code, w.Body.String())
	}
}

// TestUploadAndList проверяет загрузку каталога и выборку дисков
func TestUploadAndList(t *testing.T) {
	router := testRouter(t)
	uploadCatalog(t, router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/discs", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("статус %d, тело %s", w.Code, w.Body.String())
	}

	var resp types.DiscListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("Total = %d, ожидалось 2", resp.Total)
	}
}

// TestListWithoutCatalog проверяет 404 до загрузки каталога
func TestListWithoutCatalog(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/discs", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("статус %d, ожидалось 404", w.Code)
	}
}

// TestDiscsFilterValidation проверяет 400 по перевернутому диапазону
func TestDiscsFilterValidation(t *testing.T) {
	router := testRouter(t)
	uploadCatalog(t, router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/discs?thickness_min=500&thickness_max=100", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("статус %d, ожидалось 400", w.Code)
	}
}

// TestMetricsEndpoint проверяет обогащение показателями через HTTP
func TestMetricsEndpoint(t *testing.T) {
	router := testRouter(t)
	uploadCatalog(t, router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/discs/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("статус %d, тело %s", w.Code, w.Body.String())
	}

	var resp types.MetricsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	if len(resp.Records) != 2 {
		t.Fatalf("получено %d записей, ожидалось 2", len(resp.Records))
	}
	for _, r := range resp.Records {
		if r.ChippingIndex < 0 || r.ChippingIndex > 1 {
			t.Errorf("%s: ChippingIndex = %g вне [0, 1]", r.ArticleCode, r.ChippingIndex)
		}
	}
}

// TestRecommendEndpoint проверяет подбор дисков через HTTP
func TestRecommendEndpoint(t *testing.T) {
	router := testRouter(t)
	uploadCatalog(t, router)

	payload, _ := json.Marshal(types.RecommendRequest{
		Material:         "SiC",
		ThicknessMicrons: 300,
		KerfMinMicrons:   40,
		KerfMaxMicrons:   50,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("статус %d, тело %s", w.Code, w.Body.String())
	}

	var resp types.RecommendResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	if len(resp.Recommendations) != 2 {
		t.Fatalf("получено %d кандидатов, ожидалось 2", len(resp.Recommendations))
	}
	if resp.Recommendations[0].Record.ArticleCode != "SIC-300-45-H08" {
		t.Errorf("первый кандидат %q", resp.Recommendations[0].Record.ArticleCode)
	}
}

// TestRecommendNoMatch проверяет сообщение при пустом результате
func TestRecommendNoMatch(t *testing.T) {
	router := testRouter(t)
	uploadCatalog(t, router)

	payload, _ := json.Marshal(types.RecommendRequest{
		Material:         "Silicon",
		ThicknessMicrons: 300,
		KerfMinMicrons:   40,
		KerfMaxMicrons:   50,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("статус %d, пустой результат не ошибка: %s", w.Code, w.Body.String())
	}

	var resp types.RecommendResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	if len(resp.Recommendations) != 0 {
		t.Errorf("получено %d кандидатов, ожидалось 0", len(resp.Recommendations))
	}
	if resp.Message == "" {
		t.Errorf("ожидалось сообщение о пустом результате")
	}
}

// TestDecodeEndpoint проверяет одиночную и пакетную расшифровку через HTTP
func TestDecodeEndpoint(t *testing.T) {
	router := testRouter(t)

	// Одиночный режим
	req := httptest.NewRequest(http.MethodPost, "/api/decode",
		bytes.NewReader([]byte(`{"code": "SIC-300-45-H08"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("статус %d, тело %s", w.Code, w.Body.String())
	}
	var single types.DecodeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &single); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	if single.Spec.ThicknessMicrons != 300 {
		t.Errorf("ThicknessMicrons = %g, ожидалось 300", single.Spec.ThicknessMicrons)
	}

	// Пакетный режим: ошибка не прерывает пакет
	req = httptest.NewRequest(http.MethodPost, "/api/decode",
		bytes.NewReader([]byte(`{"codes": ["SIC-300-45-H08", "мусор"]}`)))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("статус %d, тело %s", w.Code, w.Body.String())
	}
	var batch types.BatchDecodeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &batch); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	if len(batch.Results) != 2 {
		t.Fatalf("получено %d результатов, ожидалось 2", len(batch.Results))
	}
	if batch.Results[0].Error != "" || batch.Results[1].Error == "" {
		t.Errorf("локализация ошибок нарушена: %+v", batch.Results)
	}

	// Некорректный одиночный артикул дает 400
	req = httptest.NewRequest(http.MethodPost, "/api/decode",
		bytes.NewReader([]byte(`{"code": "мусор"}`)))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("статус %d, ожидалось 400", w.Code)
	}
}

// TestValidateEndpoint проверяет проверку формата артикула
func TestValidateEndpoint(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/decode/validate?code=SIC-300-45-H08", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("статус %d", w.Code)
	}
	var resp types.ValidateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	if !resp.Valid {
		t.Errorf("Valid = false для корректного артикула")
	}
}

// TestHealthEndpoint проверяет состояние сервера до и после загрузки
func TestHealthEndpoint(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("статус %d, сервер работоспособен без каталога", w.Code)
	}

	uploadCatalog(t, router)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	var resp types.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("не удалось разобрать ответ: %v", err)
	}
	if resp.ActiveCatalog == "" || resp.RecordCount != 2 {
		t.Errorf("состояние %+v не отражает загруженный каталог", resp)
	}
}

// TestUploadRejectsNonXlsx проверяет отказ по расширению файла
func TestUploadRejectsNonXlsx(t *testing.T) {
	router := testRouter(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "каталог.csv")
	part.Write([]byte("a;b;c"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/catalogs/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("статус %d, ожидалось 400", w.Code)
	}
}
