package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "dicingserver/server/errors"
	"dicingserver/server/middleware"
	"dicingserver/server/services"
	"dicingserver/server/types"
)

// DecodeHandler обработчики расшифровки артикулов
type DecodeHandler struct {
	decode *services.DecodeService
}

// NewDecodeHandler создает обработчик расшифровки
func NewDecodeHandler(decode *services.DecodeService) *DecodeHandler {
	return &DecodeHandler{decode: decode}
}

// HandleDecode расшифровывает артикул или пакет артикулов
// @Summary Расшифровка артикулов
// @Description Принимает одиночный артикул в поле code либо пакет в поле codes. В пакетном режиме ошибка расшифровки локализована в своем элементе и не прерывает обработку остальных.
// @Tags decode
// @Accept json
// @Produce json
// @Param request body types.DecodeRequest true "Артикул или пакет артикулов"
// @Success 200 {object} types.DecodeResponse "Одиночный режим"
// @Success 200 {object} types.BatchDecodeResponse "Пакетный режим"
// @Failure 400 {object} middleware.ErrorResponse "Артикул не соответствует формату"
// @Router /api/decode [post]
func (h *DecodeHandler) HandleDecode(c *gin.Context) {
	var req types.DecodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperrors.NewValidationError("некорректное тело запроса", err))
		return
	}

	if len(req.Codes) > 0 {
		c.JSON(http.StatusOK, types.BatchDecodeResponse{
			Results: h.decode.DecodeBatch(req.Codes),
		})
		return
	}

	spec, err := h.decode.Decode(req.Code)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DecodeResponse{Spec: spec})
}

// HandleValidate проверяет артикул на соответствие формату
// @Summary Проверка формата артикула
// @Tags decode
// @Produce json
// @Param code query string true "Артикул"
// @Success 200 {object} types.ValidateResponse
// @Failure 400 {object} middleware.ErrorResponse "Артикул не задан"
// @Router /api/decode/validate [get]
func (h *DecodeHandler) HandleValidate(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		middleware.AbortWithError(c, apperrors.NewValidationError("артикул не задан", nil))
		return
	}
	c.JSON(http.StatusOK, types.ValidateResponse{
		Code:  code,
		Valid: h.decode.Validate(code),
	})
}
