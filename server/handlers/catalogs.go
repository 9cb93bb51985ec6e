package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "dicingserver/server/errors"
	"dicingserver/server/middleware"
	"dicingserver/server/services"
	"dicingserver/server/types"
)

// CatalogHandler обработчики управления каталогами
type CatalogHandler struct {
	catalogs *services.CatalogService
}

// NewCatalogHandler создает обработчик каталогов
func NewCatalogHandler(catalogs *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogs: catalogs}
}

// HandleUpload загружает книгу Excel с каталогом дисков
// @Summary Загрузить каталог дисков
// @Description Принимает книгу XLSX (лист на материал либо колонка Material), проверяет схему колонок и делает каталог активным. Несоответствие схемы возвращается с перечнем отсутствующих и лишних колонок.
// @Tags catalogs
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Книга XLSX с каталогом"
// @Success 200 {object} types.UploadResponse
// @Failure 400 {object} middleware.ErrorResponse "Файл не читается или не соответствует схеме"
// @Failure 429 {object} middleware.ErrorResponse "Превышена частота загрузок"
// @Router /api/catalogs/upload [post]
func (h *CatalogHandler) HandleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		middleware.AbortWithError(c, apperrors.NewValidationError("файл не передан", err))
		return
	}
	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".xlsx" {
		middleware.AbortWithError(c, apperrors.NewValidationError(
			"поддерживается только формат XLSX", nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.AbortWithError(c, apperrors.NewInternalError("не удалось открыть файл", err))
		return
	}
	defer file.Close()

	meta, warnings, err := h.catalogs.Upload(fileHeader.Filename, file)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.UploadResponse{Catalog: *meta, Warnings: warnings})
}

// HandleList возвращает сохраненные каталоги
// @Summary Список каталогов
// @Tags catalogs
// @Produce json
// @Success 200 {object} types.CatalogListResponse
// @Router /api/catalogs [get]
func (h *CatalogHandler) HandleList(c *gin.Context) {
	catalogs, err := h.catalogs.List()
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.CatalogListResponse{Catalogs: catalogs})
}

// HandleGet возвращает метаданные каталога
// @Summary Каталог по UUID
// @Tags catalogs
// @Produce json
// @Param uuid path string true "UUID каталога"
// @Success 200 {object} database.CatalogMeta
// @Failure 404 {object} middleware.ErrorResponse "Каталог не найден"
// @Router /api/catalogs/{uuid} [get]
func (h *CatalogHandler) HandleGet(c *gin.Context) {
	meta, err := h.catalogs.Get(c.Param("uuid"))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, meta)
}

// HandleActivate делает сохраненный каталог активным
// @Summary Активировать каталог
// @Description Подменяет активный каталог атомарно; начатые запросы дорабатывают со старым представлением.
// @Tags catalogs
// @Produce json
// @Param uuid path string true "UUID каталога"
// @Success 200 {object} database.CatalogMeta
// @Failure 404 {object} middleware.ErrorResponse "Каталог не найден"
// @Router /api/catalogs/{uuid}/activate [post]
func (h *CatalogHandler) HandleActivate(c *gin.Context) {
	catalogUUID := c.Param("uuid")
	if err := h.catalogs.Activate(catalogUUID); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	meta, err := h.catalogs.Get(catalogUUID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, meta)
}
