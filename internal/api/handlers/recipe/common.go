package recipe

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"recipe-assistant/internal/api/middleware"
	recipeService "recipe-assistant/internal/core/recipe"
	"recipe-assistant/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜相關 API
type Handler struct {
	service *recipeService.Service
	debug   bool
}

// NewHandler 創建新的食譜處理程序；debug 為 true 時錯誤回應附上底層原因
func NewHandler(service *recipeService.Service, debug bool) *Handler {
	return &Handler{service: service, debug: debug}
}

// ImageRequest 圖片請求：image 為 URL、data URI 或 base64
type ImageRequest struct {
	Image string `json:"image" binding:"required"`
}

// respondError 依 CustomError 的狀態碼回應
func (h *Handler) respondError(c *gin.Context, err error) {
	ce := common.AsCustomError(err)
	fields := []zap.Field{
		zap.Error(err),
		zap.String("code", ce.Code),
		zap.String("request_id", requestid.Get(c)),
		zap.String("path", c.Request.URL.Path),
	}
	if ce.Status >= http.StatusInternalServerError {
		common.LogError("request failed", fields...)
	} else {
		common.LogWarn("request rejected", fields...)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(ce.Status, ce.Response(h.debug))
}

// bindJSON 解析 JSON 請求體，失敗時已回應 400
func (h *Handler) bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		if middleware.IsBodyTooLarge(err) {
			c.AbortWithStatusJSON(middleware.ErrBodyTooLarge.Status, middleware.ErrBodyTooLarge.Response(false))
			return false
		}
		h.respondError(c, common.ErrInvalidRequest.Wrap(err))
		return false
	}
	return true
}

// readImage 讀取 JSON 的 image 欄位，或 multipart 上傳的 image 檔案（轉為 data URI）
func (h *Handler) readImage(c *gin.Context) (string, bool) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("image")
		if err != nil {
			h.respondError(c, common.ErrInvalidRequest.Wrap(fmt.Errorf("image file is required: %w", err)))
			return "", false
		}
		f, err := fh.Open()
		if err != nil {
			h.respondError(c, common.ErrInvalidImage.Wrap(err))
			return "", false
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			h.respondError(c, common.ErrInvalidImage.Wrap(err))
			return "", false
		}
		if len(data) == 0 {
			h.respondError(c, common.ErrInvalidImage.Wrap(errors.New("image file is empty")))
			return "", false
		}
		mime := http.DetectContentType(data)
		return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), true
	}

	var req ImageRequest
	if !h.bindJSON(c, &req) {
		return "", false
	}
	return req.Image, true
}
