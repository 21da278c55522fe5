package recipe

import (
	"net/http"

	"recipe-assistant/internal/core/image"
	"recipe-assistant/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleClassify POST /classify，辨識圖片中的菜名後回傳純文字食譜
func (h *Handler) HandleClassify(c *gin.Context) {
	imageData, ok := h.readImage(c)
	if !ok {
		return
	}

	common.LogInfo("開始處理食物辨識請求",
		zap.String("request_id", requestid.Get(c)),
		zap.String("image_type", image.Kind(imageData)),
		zap.Int("image_length", len(imageData)),
	)

	ans, err := h.service.AnswerImage(c.Request.Context(), imageData)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.String(http.StatusOK, ans.Text)
}
