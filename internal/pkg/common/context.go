package common

import "context"

type contextKey string

const requestIDKey contextKey = "request_id"

// ContextWithRequestID 將請求 ID 放入 context，供下游日誌使用
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext 取出請求 ID，不存在時回傳空字串
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
