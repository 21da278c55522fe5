package common

import (
	"errors"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap 讓 errors.Is / errors.As 能穿透到原始錯誤
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is 以錯誤代碼比對，讓 Wrap 後的錯誤仍能與預定義錯誤比較
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap 以同樣代碼與狀態包裝底層錯誤
func (e *CustomError) Wrap(err error) *CustomError {
	return &CustomError{Code: e.Code, Message: e.Message, Status: e.Status, Err: err}
}

// Response 轉為 API 錯誤響應，debug 為 true 時附上底層錯誤
func (e *CustomError) Response(debug bool) ErrorResponse {
	resp := ErrorResponse{Code: e.Code, Message: e.Message}
	if debug && e.Err != nil {
		resp.Details = e.Err.Error()
	}
	return resp
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// AsCustomError 取出錯誤鏈中的 CustomError，找不到時視為內部錯誤
func AsCustomError(err error) *CustomError {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce
	}
	return ErrInternalError.Wrap(err)
}

// ValidationError 表示驗證錯誤
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return &ValidationError{message: message}
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// 預定義錯誤代碼
const (
	ErrCodeInvalidRequest  = "INVALID_REQUEST"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS"
	ErrCodeInternalError   = "INTERNAL_ERROR"
	ErrCodeUnavailable     = "SERVICE_UNAVAILABLE"
	ErrCodeGatewayTimeout  = "GATEWAY_TIMEOUT"
	ErrCodeAIService       = "AI_SERVICE_ERROR"
	ErrCodeInvalidImage    = "INVALID_IMAGE_FORMAT"
	ErrCodeImageTooLarge   = "INVALID_IMAGE_SIZE"
	ErrCodeNothingDetected = "NOTHING_DETECTED"
	ErrCodeLowConfidence   = "LOW_CONFIDENCE"
	ErrCodeQueueFull       = "QUEUE_FULL"
)

// 預定義錯誤
var (
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "invalid request", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "no matching recipe", http.StatusNotFound, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "too many requests", http.StatusTooManyRequests, nil)
	ErrInternalError   = NewError(ErrCodeInternalError, "internal server error", http.StatusInternalServerError, nil)
	ErrUnavailable     = NewError(ErrCodeUnavailable, "service temporarily unavailable", http.StatusServiceUnavailable, nil)
	ErrGatewayTimeout  = NewError(ErrCodeGatewayTimeout, "upstream timeout", http.StatusGatewayTimeout, nil)

	// 業務錯誤
	ErrAIServiceError  = NewError(ErrCodeAIService, "AI service error", http.StatusBadGateway, nil)
	ErrInvalidImage    = NewError(ErrCodeInvalidImage, "invalid image format", http.StatusBadRequest, nil)
	ErrImageTooLarge   = NewError(ErrCodeImageTooLarge, "image exceeds size limit", http.StatusBadRequest, nil)
	ErrNothingDetected = NewError(ErrCodeNothingDetected, "nothing recognised in image", http.StatusUnprocessableEntity, nil)
	ErrLowConfidence   = NewError(ErrCodeLowConfidence, "low confidence in classification", http.StatusBadRequest, nil)
	ErrQueueFull       = NewError(ErrCodeQueueFull, "generation queue is full", http.StatusServiceUnavailable, nil)
	ErrCacheMiss       = errors.New("cache miss")
	ErrCacheFull       = errors.New("cache is full")
	ErrQueueClosed     = errors.New("queue is closed")
)
