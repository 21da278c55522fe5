package recipe

import (
	"net/http"
	"strings"

	"recipe-assistant/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatRequest 以菜名詢問食譜
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ResolveRequest 只查本地食譜庫
type ResolveRequest struct {
	Query       string   `json:"query"`
	Ingredients []string `json:"ingredients,omitempty"`
}

// ParseRequest 將生成文字轉為結構化食譜
type ParseRequest struct {
	Text     string `json:"text" binding:"required"`
	DishName string `json:"dish_name,omitempty"`
}

// HandleChat POST /chat，回傳純文字食譜
func (h *Handler) HandleChat(c *gin.Context) {
	var req ChatRequest
	if !h.bindJSON(c, &req) {
		return
	}

	common.LogInfo("開始處理食譜查詢",
		zap.String("request_id", requestid.Get(c)),
		zap.String("message", req.Message),
	)

	ans, err := h.service.Answer(c.Request.Context(), req.Message)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.String(http.StatusOK, ans.Text)
}

// HandleResolve POST /recipe/resolve，找不到時回傳 404
func (h *Handler) HandleResolve(c *gin.Context) {
	var req ResolveRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if strings.TrimSpace(req.Query) == "" && len(common.NormalizeLabels(req.Ingredients)) == 0 {
		h.respondError(c, common.ErrInvalidRequest.Wrap(common.NewValidationError("query or ingredients is required")))
		return
	}

	ans, ok := h.service.Lookup(req.Query, req.Ingredients)
	if !ok {
		h.respondError(c, common.ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, ans)
}

// HandleParse POST /recipe/parse
func (h *Handler) HandleParse(c *gin.Context) {
	var req ParseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	c.JSON(http.StatusOK, h.service.Parse(req.Text, req.DishName))
}
