package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"recipe-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrBodyTooLarge 請求體超過上限
var ErrBodyTooLarge = common.NewError("REQUEST_TOO_LARGE", "request body too large", http.StatusRequestEntityTooLarge, nil)

// BodySizeLimit 限制請求體大小的中間件
func BodySizeLimit(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxSize <= 0 {
			c.Next()
			return
		}

		// 檢查 Content-Length
		if c.Request.ContentLength > maxSize {
			common.LogWarn("Request body too large",
				zap.Int64("content_length", c.Request.ContentLength),
				zap.Int64("max_size", maxSize),
				zap.String("client_ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			err := ErrBodyTooLarge.Wrap(fmt.Errorf("limit is %d bytes", maxSize))
			c.AbortWithStatusJSON(err.Status, err.Response(true))
			return
		}

		// 未帶 Content-Length 的請求在讀取時截斷
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)

		c.Next()
	}
}

// IsBodyTooLarge 判斷讀取請求體時是否因超過上限而失敗
func IsBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
