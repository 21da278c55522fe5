package recipe

import (
	"net/http"

	"recipe-assistant/internal/core/image"
	"recipe-assistant/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleDetect POST /detect，以辨識到的食材找食譜，回傳附 ingredients_detected 的結構化食譜
func (h *Handler) HandleDetect(c *gin.Context) {
	imageData, ok := h.readImage(c)
	if !ok {
		return
	}

	common.LogInfo("開始處理食材辨識請求",
		zap.String("request_id", requestid.Get(c)),
		zap.String("image_type", image.Kind(imageData)),
	)

	ans, err := h.service.AnswerIngredients(c.Request.Context(), imageData)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ans)
}
